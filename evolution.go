package qwalk

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/mat"
)

/*
Table is the evolution of the walker: one row per step count, one column per
vertex from -7 to +7.
*/
type Table struct {
	data *mat.Dense
}

// NewTable returns a zeroed table for steps rows.
func NewTable(steps int) *Table {
	return &Table{data: mat.NewDense(steps, Vertices, nil)}
}

// Steps returns the number of rows.
func (t *Table) Steps() int {
	r, _ := t.data.Dims()
	return r
}

// Set stores the distribution after step steps.
func (t *Table) Set(step int, row VertexDistribution) {
	t.data.SetRow(step, row[:])
}

// Row returns the distribution after step steps.
func (t *Table) Row(step int) VertexDistribution {
	var row VertexDistribution
	mat.Row(row[:], step, t.data)
	return row
}

// At returns the probability of vertex after step steps.
func (t *Table) At(step, vertex int) float64 {
	return t.data.At(step, vertex-MinVertex)
}

// Rows returns the table keyed by step index.
func (t *Table) Rows() map[int][]float64 {
	rows := make(map[int][]float64, t.Steps())
	for step := 0; step < t.Steps(); step++ {
		row := t.Row(step)
		rows[step] = append([]float64(nil), row[:]...)
	}
	return rows
}

// Max returns the largest probability in the table.
func (t *Table) Max() float64 {
	return mat.Max(t.data)
}

type tableDocument struct {
	Vertices []int             `yaml:"vertices"`
	Steps    map[int][]float64 `yaml:"steps"`
}

// MarshalYAML writes the vertex labels alongside the rows.
func (t *Table) MarshalYAML() (any, error) {
	labels := make([]int, 0, Vertices)
	for v := MinVertex; v <= MaxVertex; v++ {
		labels = append(labels, v)
	}

	return tableDocument{Vertices: labels, Steps: t.Rows()}, nil
}

// Evolve walks step counts 0..steps-1 and assembles the evolution table.
// With a nil pool every walk runs in order on the calling goroutine.
func Evolve(ctx context.Context, q *Q, angles AnglePair, steps int) (*Table, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: evolution needs at least one step, got %d", ErrInvalidConfig, steps)
	}

	table := NewTable(steps)

	if q == nil {
		for step := 0; step < steps; step++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			row, err := walkVertices(angles, step)
			if err != nil {
				return nil, err
			}
			table.Set(step, row)
		}

		return table, nil
	}

	runID := uuid.NewString()
	results := make([]chan QuantumValue, steps)

	for step := 0; step < steps; step++ {
		step := step
		results[step] = q.Schedule(fmt.Sprintf("%s/step-%d", runID, step), func() (any, error) {
			return walkVertices(angles, step)
		})
	}

	for step, ch := range results {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case value := <-ch:
			if value.Error != nil {
				return nil, fmt.Errorf("step %d: %w", step, value.Error)
			}

			row, ok := value.Value.(VertexDistribution)
			if !ok {
				return nil, fmt.Errorf("step %d: unexpected result type %T", step, value.Value)
			}
			table.Set(step, row)
		}
	}

	errnie.Info("evolution %s complete: %d steps, theta1=%g theta2=%g", runID, steps, angles.Theta1, angles.Theta2)

	return table, nil
}

func walkVertices(angles AnglePair, steps int) (VertexDistribution, error) {
	dist, err := Probabilities(angles, steps)
	if err != nil {
		return VertexDistribution{}, err
	}

	return OrderStates(dist), nil
}
