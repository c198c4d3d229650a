package qwalk

import "gonum.org/v1/gonum/floats"

// Path graph bounds.
const (
	Vertices  = 15
	MinVertex = -7
	MaxVertex = 7
)

// VertexDistribution is indexed by vertex - MinVertex, so index 0 is vertex -7.
type VertexDistribution [Vertices]float64

// Sum returns the total probability.
func (v VertexDistribution) Sum() float64 {
	return floats.Sum(v[:])
}

// At returns the probability at the signed vertex.
func (v VertexDistribution) At(vertex int) float64 {
	return v[vertex-MinVertex]
}

// VertexIndex returns the output slot a basis index lands on, or -1 when the
// basis configuration has no vertex.
func VertexIndex(basis int) int {
	switch {
	case basis >= 0 && basis < 4:
		return basis + 7
	case basis >= 4 && basis < 8, basis >= 12 && basis < 15:
		return basis - 1
	case basis > 8 && basis < 12:
		return basis - 9
	default:
		return -1
	}
}

/*
OrderStates relabels the basis distribution onto the path graph. Basis
indices 8 and 15 have no vertex and are dropped, and vertex +7 is never
written. Both dropped configurations stay empty until the walker reaches the
edge of the register.
*/
func OrderStates(dist Distribution) VertexDistribution {
	var out VertexDistribution

	for i, p := range dist {
		if j := VertexIndex(i); j >= 0 {
			out[j] += p
		}
	}

	return out
}
