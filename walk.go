package qwalk

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BasisStates is the number of readout configurations of the position wires.
const BasisStates = 16

// Distribution is the marginal over the position wires, wire 1 most significant.
type Distribution [BasisStates]float64

// Sum returns the total probability.
func (d Distribution) Sum() float64 {
	return floats.Sum(d[:])
}

// AnglePair holds the coin angles of the two masses, in radians.
type AnglePair struct {
	Theta1 float64
	Theta2 float64
}

/*
Simulation is the context of a single walk. Callers own it and hand it to
Walk, which resets it before use, so nothing leaks from one step count to
the next.
*/
type Simulation struct {
	State *QuantumState
}

// NewSimulation allocates the five-wire register used by the walk.
func NewSimulation() *Simulation {
	return &Simulation{State: NewQuantumState(Wires)}
}

/*
prepare resets the register and rotates the coin by -π/2, leaving the walker
on vertex 0 with the coin in (|0⟩ + i|1⟩)/√2.
*/
func (sim *Simulation) prepare() {
	sim.State.Reset()
	sim.State.RX(CoinWire, -math.Pi/2)
}

/*
Walk runs steps coin-and-shift operators on sim and reads out the position
wires. Step s (1-based) uses the odd operator with Theta1 when s is odd and
the even operator with Theta2 when s is even. Zero steps returns the
prepared state.
*/
func Walk(sim *Simulation, angles AnglePair, steps int) (Distribution, error) {
	var dist Distribution

	if steps < 0 {
		return dist, ErrNegativeSteps
	}

	sim.prepare()

	for s := 1; s <= steps; s++ {
		StepFor(s, angles).Circuit().Apply(sim.State)
	}

	copy(dist[:], sim.State.Probabilities(PositionWires...))

	return dist, nil
}

// Probabilities walks a fresh simulation.
func Probabilities(angles AnglePair, steps int) (Distribution, error) {
	return Walk(NewSimulation(), angles, steps)
}
