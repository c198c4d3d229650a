package qwalk

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func TestGate(t *testing.T) {
	Convey("Given the single-qubit gates", t, func() {
		Convey("RX should be unitary for any angle", func() {
			for _, theta := range []float64{0, math.Pi / 4, -math.Pi / 2, 1.234, 2 * math.Pi} {
				So(RX(theta).IsUnitary(tolerance), ShouldBeTrue)
			}
		})

		Convey("RX(π) should act as -iX", func() {
			g := RX(math.Pi)
			So(real(g[0][1]), ShouldAlmostEqual, 0, tolerance)
			So(imag(g[0][1]), ShouldAlmostEqual, -1, tolerance)
			So(real(g[0][0]), ShouldAlmostEqual, 0, tolerance)
		})

		Convey("PauliX should be its own inverse", func() {
			So(PauliX.IsUnitary(tolerance), ShouldBeTrue)
			So(PauliX.Mul(PauliX), ShouldResemble, Identity)
		})

		Convey("A non-unitary matrix should be rejected", func() {
			So(Gate{{1, 1}, {0, 1}}.IsUnitary(tolerance), ShouldBeFalse)
		})
	})
}

func TestQuantumState(t *testing.T) {
	Convey("Given a fresh five-wire register", t, func() {
		qs := NewQuantumState(5)

		So(qs.Wires(), ShouldEqual, 5)
		So(qs.Vector, ShouldHaveLength, 32)
		So(qs.Vector[0], ShouldEqual, complex(1, 0))

		Convey("PauliX on wire 0 should set the most significant bit", func() {
			qs.PauliX(0)
			So(qs.Vector[16], ShouldEqual, complex(1, 0))
			So(qs.Vector[0], ShouldEqual, complex(0, 0))
		})

		Convey("PauliX on wire 4 should set the least significant bit", func() {
			qs.PauliX(4)
			So(qs.Vector[1], ShouldEqual, complex(1, 0))
		})

		Convey("CNOT should only flip when the control is set", func() {
			qs.CNOT(0, 3)
			So(qs.Vector[0], ShouldEqual, complex(1, 0))

			qs.PauliX(0)
			qs.CNOT(0, 3)
			So(qs.Vector[0b10010], ShouldEqual, complex(1, 0))
		})

		Convey("Toffoli should need both controls", func() {
			qs.PauliX(0)
			qs.Toffoli(0, 3, 2)
			So(qs.Vector[0b10000], ShouldEqual, complex(1, 0))

			qs.PauliX(3)
			qs.Toffoli(0, 3, 2)
			So(qs.Vector[0b10110], ShouldEqual, complex(1, 0))
		})

		Convey("ControlledCNOT should need all three controls", func() {
			qs.PauliX(0)
			qs.PauliX(2)
			qs.ControlledCNOT(2, 3, 0, 1)
			So(qs.Vector[0b10100], ShouldEqual, complex(1, 0))

			qs.PauliX(3)
			qs.ControlledCNOT(2, 3, 0, 1)
			So(qs.Vector[0b11110], ShouldEqual, complex(1, 0))
		})

		Convey("RX(-π/2) on the coin should give (|0⟩ + i|1⟩)/√2", func() {
			qs.RX(0, -math.Pi/2)
			So(real(qs.Vector[0]), ShouldAlmostEqual, 1/math.Sqrt2, tolerance)
			So(imag(qs.Vector[16]), ShouldAlmostEqual, 1/math.Sqrt2, tolerance)
			So(qs.Norm(), ShouldAlmostEqual, 1, tolerance)
		})

		Convey("Probabilities should marginalise the unnamed wires", func() {
			qs.RX(0, 1.1)
			qs.RX(2, 0.4)

			probs := qs.Probabilities(1, 2, 3, 4)
			So(probs, ShouldHaveLength, 16)

			p2 := math.Pow(math.Sin(0.2), 2)
			So(probs[0], ShouldAlmostEqual, 1-p2, tolerance)
			So(probs[0b0100], ShouldAlmostEqual, p2, tolerance)

			coin := qs.Probabilities(0)
			So(coin[1], ShouldAlmostEqual, math.Pow(math.Sin(0.55), 2), tolerance)
		})

		Convey("Probabilities should follow the order of the named wires", func() {
			qs.PauliX(4)
			So(qs.Probabilities(4, 0)[0b10], ShouldAlmostEqual, 1, tolerance)
			So(qs.Probabilities(0, 4)[0b01], ShouldAlmostEqual, 1, tolerance)
		})

		Convey("Reset should return to the ground state", func() {
			qs.RX(1, 0.7)
			qs.PauliX(3)
			qs.Reset()
			So(qs.Vector[0], ShouldEqual, complex(1, 0))
			So(qs.Norm(), ShouldAlmostEqual, 1, tolerance)
		})

		Convey("Malformed wire indices should panic", func() {
			So(func() { qs.PauliX(5) }, ShouldPanic)
			So(func() { qs.PauliX(-1) }, ShouldPanic)
			So(func() { qs.CNOT(2, 2) }, ShouldPanic)
			So(func() { qs.MultiControlledX([]int{1, 1}, 2) }, ShouldPanic)
			So(func() { qs.Probabilities(1, 1) }, ShouldPanic)
		})
	})

	Convey("Given an unsupported register width", t, func() {
		So(func() { NewQuantumState(0) }, ShouldPanic)
	})
}
