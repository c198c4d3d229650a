package qwalk

import (
	"math"
	"math/cmplx"
)

/*
Gate is a single-qubit unitary in the computational basis.

	[ g[0][0]  g[0][1] ]   acting on   [ |0⟩ amplitude ]
	[ g[1][0]  g[1][1] ]               [ |1⟩ amplitude ]
*/
type Gate [2][2]complex128

// PauliX flips |0⟩ and |1⟩.
var PauliX = Gate{
	{0, 1},
	{1, 0},
}

// Identity leaves a qubit untouched.
var Identity = Gate{
	{1, 0},
	{0, 1},
}

/*
RX is a rotation of theta radians about the X axis of the Bloch sphere.

	RX(θ) = [ cos θ/2     -i sin θ/2 ]
	        [ -i sin θ/2  cos θ/2    ]
*/
func RX(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))

	return Gate{
		{c, s},
		{s, c},
	}
}

// Dagger returns the conjugate transpose.
func (g Gate) Dagger() Gate {
	return Gate{
		{cmplx.Conj(g[0][0]), cmplx.Conj(g[1][0])},
		{cmplx.Conj(g[0][1]), cmplx.Conj(g[1][1])},
	}
}

// Mul returns the matrix product g·h.
func (g Gate) Mul(h Gate) Gate {
	var out Gate

	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			out[r][c] = g[r][0]*h[0][c] + g[r][1]*h[1][c]
		}
	}

	return out
}

// IsUnitary reports whether g·g† is the identity within tol.
func (g Gate) IsUnitary(tol float64) bool {
	p := g.Mul(g.Dagger())

	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if cmplx.Abs(p[r][c]-Identity[r][c]) > tol {
				return false
			}
		}
	}

	return true
}
