package qwalk

import "fmt"

// Register layout of the walk.
const (
	Wires    = 5
	CoinWire = 0
)

// PositionWires are read out after the walk; the coin wire is summed out.
var PositionWires = []int{1, 2, 3, 4}

// OperationKind names the gate an Operation applies.
type OperationKind int

const (
	OpRX OperationKind = iota
	OpX
)

/*
Operation is one gate application. OpX with controls covers the whole
bit-flip family: no controls is PauliX, one is CNOT, two is Toffoli and
three is a controlled CNOT.
*/
type Operation struct {
	Kind     OperationKind
	Controls []int
	Target   int
	Angle    float64
}

func (op Operation) String() string {
	switch op.Kind {
	case OpRX:
		return fmt.Sprintf("RX(%g)[%d]", op.Angle, op.Target)
	default:
		return fmt.Sprintf("X%v[%d]", op.Controls, op.Target)
	}
}

// Apply runs the operation against state.
func (op Operation) Apply(state *QuantumState) {
	switch op.Kind {
	case OpRX:
		state.RX(op.Target, op.Angle)
	case OpX:
		state.MultiControlledX(op.Controls, op.Target)
	default:
		panic(fmt.Sprintf("qwalk: unknown operation kind %d", op.Kind))
	}
}

// Circuit is an ordered gate sequence.
type Circuit struct {
	Ops []Operation
}

// Apply runs every operation in order.
func (c *Circuit) Apply(state *QuantumState) {
	for _, op := range c.Ops {
		op.Apply(state)
	}
}

// Len returns the number of operations.
func (c *Circuit) Len() int {
	return len(c.Ops)
}

func rx(wire int, theta float64) Operation {
	return Operation{Kind: OpRX, Target: wire, Angle: theta}
}

func x(target int, controls ...int) Operation {
	return Operation{Kind: OpX, Controls: controls, Target: target}
}

/*
shift is the conditional move of the walker: CNOT(0,3), the doubly controlled
CNOT(0,1) gated on wires 2 and 3, then Toffoli(0,3 → 2). Which gates appear
follows from how vertices are laid out over the four position wires.
*/
func shift() []Operation {
	return []Operation{
		x(3, 0),
		x(1, 2, 3, 0),
		x(2, 0, 3),
	}
}

/*
OddStep is the coin-and-shift operator used on odd step indices. The coin is
rotated by 2θ, then the shift runs with the coin inverted so that it moves
the |0⟩ coin component, and wire 4 flips the sublattice.
*/
func OddStep(theta float64) *Circuit {
	ops := []Operation{rx(CoinWire, 2*theta), x(CoinWire)}
	ops = append(ops, shift()...)
	ops = append(ops, x(CoinWire), x(4))

	return &Circuit{Ops: ops}
}

/*
EvenStep is the operator used on even step indices. Its shift block is the
odd shift in reverse order and acts on the |1⟩ coin component directly.
*/
func EvenStep(theta float64) *Circuit {
	s := shift()
	ops := []Operation{rx(CoinWire, 2*theta)}

	for i := len(s) - 1; i >= 0; i-- {
		ops = append(ops, s[i])
	}

	ops = append(ops, x(4))

	return &Circuit{Ops: ops}
}

// Parity selects the operator of a step.
type Parity int

const (
	Odd Parity = iota
	Even
)

func (p Parity) String() string {
	if p == Even {
		return "even"
	}
	return "odd"
}

// Step is a tagged step operator: its parity and the coin angle it uses.
type Step struct {
	Parity Parity
	Angle  float64
}

// StepFor returns the operator for the 1-based step index.
func StepFor(index int, angles AnglePair) Step {
	if index%2 == 0 {
		return Step{Parity: Even, Angle: angles.Theta2}
	}

	return Step{Parity: Odd, Angle: angles.Theta1}
}

// Circuit builds the gate sequence of the step.
func (s Step) Circuit() *Circuit {
	if s.Parity == Even {
		return EvenStep(s.Angle)
	}

	return OddStep(s.Angle)
}
