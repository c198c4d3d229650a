package qwalk

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

// Renderer consumes a finished evolution table.
type Renderer interface {
	Render(table *Table) error
}

// tableGrid adapts a Table to plotter.GridXYZ: columns are vertices, rows are steps.
type tableGrid struct {
	table *Table
}

func (g tableGrid) Dims() (c, r int)   { return Vertices, g.table.Steps() }
func (g tableGrid) Z(c, r int) float64 { return g.table.data.At(r, c) }
func (g tableGrid) X(c int) float64    { return float64(c + MinVertex) }
func (g tableGrid) Y(r int) float64    { return float64(r) }

/*
HeatmapRenderer draws the table as a PDF heatmap with step 0 on the top row
and a palette legend on the right.
*/
type HeatmapRenderer struct {
	Path   string
	Title  string
	Width  vg.Length
	Height vg.Length
	Colors int
}

func NewHeatmapRenderer(path string) *HeatmapRenderer {
	return &HeatmapRenderer{
		Path:   path,
		Title:  "Dirac cellular automaton",
		Width:  18 * vg.Centimeter,
		Height: 10 * vg.Centimeter,
		Colors: 12,
	}
}

/*
Render writes the heatmap to r.Path. The document is built in memory first,
so a failed render leaves no file behind.
*/
func (r *HeatmapRenderer) Render(table *Table) error {
	var buf bytes.Buffer

	if err := r.WriteTo(&buf, table); err != nil {
		return err
	}

	if err := os.WriteFile(r.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write heatmap %s: %w", r.Path, err)
	}

	return nil
}

// WriteTo renders the heatmap as PDF onto w.
func (r *HeatmapRenderer) WriteTo(w io.Writer, table *Table) error {
	if table == nil || table.Steps() == 0 {
		return fmt.Errorf("render heatmap: empty table")
	}

	pal := palette.Heat(r.Colors, 1)
	h := plotter.NewHeatMap(tableGrid{table: table}, pal)
	h.Min = 0
	if h.Max <= h.Min {
		h.Max = h.Min + 1
	}

	p := plot.New()
	p.Title.Text = r.Title
	p.X.Label.Text = "vertex"
	p.Y.Label.Text = "step"
	p.X.Padding = 0
	p.Y.Padding = 0
	p.X.Tick.Marker = vertexTicks()
	p.Y.Tick.Marker = stepTicks(table.Steps())
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(h)

	legend := plot.NewLegend()
	legend.Top = true
	thumbs := plotter.PaletteThumbnailers(pal)
	for i := len(thumbs) - 1; i >= 0; i-- {
		label := ""
		switch i {
		case 0:
			label = strconv.FormatFloat(h.Min, 'g', 2, 64)
		case len(thumbs) - 1:
			label = strconv.FormatFloat(h.Max, 'g', 2, 64)
		}
		legend.Add(label, thumbs[i])
	}

	canvas := vgpdf.New(r.Width, r.Height)
	dc := draw.New(canvas)

	rect := legend.Rectangle(dc)
	legendWidth := rect.Max.X - rect.Min.X
	legend.Draw(dc)

	dc = draw.Crop(dc, 0, -legendWidth-vg.Millimeter, 0, 0)
	p.Draw(dc)

	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("render heatmap: %w", err)
	}

	return nil
}

func vertexTicks() plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, 0, Vertices)
	for v := MinVertex; v <= MaxVertex; v++ {
		ticks = append(ticks, plot.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks
}

func stepTicks(steps int) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, 0, steps)
	for s := 0; s < steps; s++ {
		ticks = append(ticks, plot.Tick{Value: float64(s), Label: strconv.Itoa(s)})
	}
	return ticks
}
