package qwalk

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

// piOverFour is the reference (π/4, π/4) evolution, one row per step.
var piOverFour = [DefaultSteps]map[int]float64{
	{0: 1},
	{-1: 1},
	{-2: 0.5, 0: 0.5},
	{-3: 0.25, -1: 0.5, 1: 0.25},
	{-4: 0.125, -2: 0.625, 0: 0.125, 2: 0.125},
	{-5: 0.0625, -3: 0.625, -1: 0.125, 1: 0.125, 3: 0.0625},
}

func shouldMatchReference(table *Table) {
	So(table.Steps(), ShouldEqual, DefaultSteps)

	for step, row := range piOverFour {
		for v := MinVertex; v <= MaxVertex; v++ {
			So(table.At(step, v), ShouldAlmostEqual, row[v], tolerance)
		}
	}
}

func TestEvolve(t *testing.T) {
	angles := AnglePair{Theta1: math.Pi / 4, Theta2: math.Pi / 4}

	Convey("Given an evolution without a pool", t, func() {
		table, err := Evolve(context.Background(), nil, angles, DefaultSteps)
		So(err, ShouldBeNil)

		Convey("It should match the reference run", func() {
			shouldMatchReference(table)
		})

		Convey("Step 0 should be the walker on vertex 0", func() {
			So(table.Row(0).At(0), ShouldAlmostEqual, 1, tolerance)
		})

		Convey("The last step should conserve probability", func() {
			So(table.Row(5).Sum(), ShouldAlmostEqual, 1, tolerance)
		})

		Convey("Rows should be keyed by step index", func() {
			rows := table.Rows()
			So(rows, ShouldHaveLength, DefaultSteps)
			for step := 0; step < DefaultSteps; step++ {
				So(rows[step], ShouldHaveLength, Vertices)
			}
			So(table.Max(), ShouldAlmostEqual, 1, tolerance)
		})

		Convey("It should encode as YAML with vertex labels", func() {
			data, err := yaml.Marshal(table)
			So(err, ShouldBeNil)

			var doc struct {
				Vertices []int             `yaml:"vertices"`
				Steps    map[int][]float64 `yaml:"steps"`
			}
			So(yaml.Unmarshal(data, &doc), ShouldBeNil)
			So(doc.Vertices, ShouldHaveLength, Vertices)
			So(doc.Vertices[0], ShouldEqual, MinVertex)
			So(doc.Steps[2][5], ShouldAlmostEqual, 0.5, tolerance)
		})
	})

	Convey("Given an evolution on a worker pool", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		q := NewQ(ctx, 3, NewConfig())

		Reset(func() {
			q.Close()
			cancel()
		})

		table, err := Evolve(ctx, q, angles, DefaultSteps)
		So(err, ShouldBeNil)

		Convey("It should match the serial run", func() {
			shouldMatchReference(table)

			serial, err := Evolve(ctx, nil, angles, DefaultSteps)
			So(err, ShouldBeNil)
			for step := 0; step < DefaultSteps; step++ {
				So(table.Row(step), ShouldResemble, serial.Row(step))
			}
		})

		Convey("It should record one job per step", func() {
			So(q.Metrics().ExportMetrics()["jobs"], ShouldEqual, int64(DefaultSteps))
		})

		Convey("Longer evolutions should still conserve probability before the edge", func() {
			long, err := Evolve(ctx, q, AnglePair{0.3, 1.1}, 7)
			So(err, ShouldBeNil)
			So(long.Steps(), ShouldEqual, 7)
			So(long.Row(6).Sum(), ShouldAlmostEqual, 1, tolerance)
		})
	})

	Convey("Given invalid evolution requests", t, func() {
		Convey("Zero steps should be rejected", func() {
			_, err := Evolve(context.Background(), nil, angles, 0)
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("A cancelled context should abort", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := Evolve(ctx, nil, angles, DefaultSteps)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
