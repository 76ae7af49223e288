package cloudfit

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// gridXYZ adapts a Grid to the plotter heat map interface, with columns on
// the plot x axis and rows on the plot y axis.
type gridXYZ struct {
	g *Grid
}

func (d gridXYZ) Dims() (c, r int)   { return d.g.Cols(), d.g.Rows() }
func (d gridXYZ) Z(c, r int) float64 { return d.g.At(r, c) }
func (d gridXYZ) X(c int) float64    { return float64(c) }
func (d gridXYZ) Y(r int) float64    { return float64(r) }

// SaveFigure renders the four-panel fit diagnostic to a PNG file: data and
// model heat maps on a shared color scale, and integrated line cuts along
// both axes comparing data points against the model curve.
func SaveFigure(res *FitResult, path string) error {
	lo := math.Min(res.DataImg.Min(), res.ModelImg.Min())
	hi := math.Max(res.DataImg.Max(), res.ModelImg.Max())
	pal := palette.Heat(12, 1)

	dataPlot := heatMapPlot("Data", res.DataImg, lo, hi, pal)
	modelPlot := heatMapPlot("Fit", res.ModelImg, lo, hi, pal)
	for _, p := range []*plot.Plot{dataPlot, modelPlot} {
		guides, err := centerGuides(res)
		if err != nil {
			return err
		}
		p.Add(guides...)
	}

	sx := res.Param(ParamSX).Val
	sy := res.Param(ParamSY).Val
	xCutPlot, err := lineCutPlot("Row line cut", res, 0, sy)
	if err != nil {
		return err
	}
	yCutPlot, err := lineCutPlot("Column line cut", res, 1, sx)
	if err != nil {
		return err
	}

	img := vgimg.New(8*vg.Inch, 8*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadX: vg.Millimeter, PadY: vg.Millimeter,
		PadTop: vg.Millimeter, PadBottom: vg.Millimeter,
		PadLeft: vg.Millimeter, PadRight: vg.Millimeter,
	}
	plots := [][]*plot.Plot{
		{dataPlot, xCutPlot},
		{yCutPlot, modelPlot},
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cloudfit: saving figure: %w", err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("cloudfit: saving figure: %w", err)
	}
	return nil
}

func heatMapPlot(title string, g *Grid, lo, hi float64, pal palette.Palette) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Horizontal Position"
	p.Y.Label.Text = "Vertical Position"
	hm := plotter.NewHeatMap(gridXYZ{g: g}, pal)
	hm.Min = lo
	hm.Max = hi
	p.Add(hm)
	return p
}

// centerGuides builds dashed guide lines through the fitted center.
func centerGuides(res *FitResult) ([]plot.Plotter, error) {
	x0 := res.Param(ParamX0).Val
	y0 := res.Param(ParamY0).Val
	rows := float64(res.DataImg.Rows())
	cols := float64(res.DataImg.Cols())

	vert, err := plotter.NewLine(plotter.XYs{{X: y0, Y: 0}, {X: y0, Y: rows}})
	if err != nil {
		return nil, err
	}
	horiz, err := plotter.NewLine(plotter.XYs{{X: 0, Y: x0}, {X: cols, Y: x0}})
	if err != nil {
		return nil, err
	}
	vert.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	horiz.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	return []plot.Plotter{vert, horiz}, nil
}

// lineCutPlot integrates the data and model images along the given axis
// (0 sums each row, 1 sums each column), scales by the Gaussian norm of the
// transverse width, and plots data points against the model curve.
func lineCutPlot(title string, res *FitResult, axis int, transverseSigma float64) (*plot.Plot, error) {
	norm := math.Sqrt(2 * math.Pi * transverseSigma * transverseSigma)
	if norm == 0 {
		norm = 1
	}

	dataCut := integrate(res.DataImg, axis, norm)
	modelCut := integrate(res.ModelImg, axis, norm)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Position"
	p.Y.Label.Text = "Integrated Intensity"

	pts, err := plotter.NewScatter(dataCut)
	if err != nil {
		return nil, err
	}
	pts.GlyphStyle.Radius = vg.Points(2)
	line, err := plotter.NewLine(modelCut)
	if err != nil {
		return nil, err
	}
	p.Add(pts, line)
	return p, nil
}

func integrate(g *Grid, axis int, norm float64) plotter.XYs {
	var n int
	if axis == 0 {
		n = g.Rows()
	} else {
		n = g.Cols()
	}
	out := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		var s float64
		if axis == 0 {
			for j := 0; j < g.Cols(); j++ {
				s += g.At(i, j)
			}
		} else {
			for j := 0; j < g.Rows(); j++ {
				s += g.At(j, i)
			}
		}
		out[i] = plotter.XY{X: float64(i), Y: s / norm}
	}
	return out
}
