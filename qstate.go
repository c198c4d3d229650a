package qwalk

import (
	"fmt"
	"math/cmplx"
)

/*
QuantumState is a dense state vector over a small register of qubits
("wires"). Wire 0 is the most significant bit of a basis index, so for five
wires the basis string |w0 w1 w2 w3 w4⟩ lives at index w0<<4 | ... | w4.

All gates mutate the vector in place and are exact permutations or 2x2
unitaries, so the norm is preserved up to floating point error.
*/
type QuantumState struct {
	Vector []complex128
	wires  int
}

// NewQuantumState returns a register of the given width in |0…0⟩.
func NewQuantumState(wires int) *QuantumState {
	if wires < 1 || wires > 30 {
		panic(fmt.Sprintf("qwalk: unsupported register width %d", wires))
	}

	qs := &QuantumState{
		Vector: make([]complex128, 1<<wires),
		wires:  wires,
	}
	qs.Vector[0] = 1

	return qs
}

// Wires returns the register width.
func (qs *QuantumState) Wires() int {
	return qs.wires
}

// Reset puts the register back into |0…0⟩.
func (qs *QuantumState) Reset() {
	for i := range qs.Vector {
		qs.Vector[i] = 0
	}
	qs.Vector[0] = 1
}

// Apply applies a single-qubit gate to wire.
func (qs *QuantumState) Apply(wire int, g Gate) {
	bit := qs.mask(wire)

	for i := range qs.Vector {
		if i&bit != 0 {
			continue
		}

		j := i | bit
		a0, a1 := qs.Vector[i], qs.Vector[j]
		qs.Vector[i] = g[0][0]*a0 + g[0][1]*a1
		qs.Vector[j] = g[1][0]*a0 + g[1][1]*a1
	}
}

// RX rotates wire by theta radians about the X axis.
func (qs *QuantumState) RX(wire int, theta float64) {
	qs.Apply(wire, RX(theta))
}

// PauliX flips wire unconditionally.
func (qs *QuantumState) PauliX(wire int) {
	qs.MultiControlledX(nil, wire)
}

// CNOT flips target iff control is 1.
func (qs *QuantumState) CNOT(control, target int) {
	qs.MultiControlledX([]int{control}, target)
}

// Toffoli flips target iff both controls are 1.
func (qs *QuantumState) Toffoli(c1, c2, target int) {
	qs.MultiControlledX([]int{c1, c2}, target)
}

/*
ControlledCNOT applies CNOT(control, target) only when c1 and c2 are both 1,
which makes it a flip of target conditioned on three wires.
*/
func (qs *QuantumState) ControlledCNOT(c1, c2, control, target int) {
	qs.MultiControlledX([]int{c1, c2, control}, target)
}

/*
MultiControlledX swaps the |…0…⟩ and |…1…⟩ amplitudes of target on every
basis state where all controls are 1. With no controls it is a plain
bit-flip.
*/
func (qs *QuantumState) MultiControlledX(controls []int, target int) {
	bit := qs.mask(target)
	ctrl := 0

	for _, c := range controls {
		m := qs.mask(c)
		if m == bit {
			panic(fmt.Sprintf("qwalk: wire %d is both control and target", c))
		}
		if ctrl&m != 0 {
			panic(fmt.Sprintf("qwalk: duplicate control wire %d", c))
		}
		ctrl |= m
	}

	for i := range qs.Vector {
		if i&bit != 0 || i&ctrl != ctrl {
			continue
		}

		j := i | bit
		qs.Vector[i], qs.Vector[j] = qs.Vector[j], qs.Vector[i]
	}
}

/*
Probabilities returns the marginal distribution over the given wires, with
the first wire as the most significant bit of the result index. Wires that
are not named are summed out.
*/
func (qs *QuantumState) Probabilities(wires ...int) []float64 {
	masks := make([]int, len(wires))
	seen := 0

	for k, w := range wires {
		masks[k] = qs.mask(w)
		if seen&masks[k] != 0 {
			panic(fmt.Sprintf("qwalk: duplicate readout wire %d", w))
		}
		seen |= masks[k]
	}

	probs := make([]float64, 1<<len(wires))

	for i, amplitude := range qs.Vector {
		idx := 0
		for _, m := range masks {
			idx <<= 1
			if i&m != 0 {
				idx |= 1
			}
		}

		p := cmplx.Abs(amplitude)
		probs[idx] += p * p
	}

	return probs
}

// Norm returns the total probability of the state, 1 for a valid state.
func (qs *QuantumState) Norm() float64 {
	var total float64

	for _, amplitude := range qs.Vector {
		p := cmplx.Abs(amplitude)
		total += p * p
	}

	return total
}

func (qs *QuantumState) mask(wire int) int {
	if wire < 0 || wire >= qs.wires {
		panic(fmt.Sprintf("qwalk: wire %d out of range [0,%d)", wire, qs.wires))
	}

	return 1 << (qs.wires - 1 - wire)
}
