package cloudfit

import "math"

// Grid is a dense row-major float64 image grid. Values may be negative after
// upstream background subtraction.
type Grid struct {
	rows, cols int
	data       []float64
}

// NewGrid creates a zero-filled rows x cols grid.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, ErrEmptyImage
	}
	return &Grid{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// GridFromRows copies a slice of rows into a new grid. All rows must have the
// same non-zero length.
func GridFromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyImage
	}
	cols := len(rows[0])
	g, err := NewGrid(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, ErrRaggedImage
		}
		copy(g.data[i*cols:(i+1)*cols], row)
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// At returns the value at row i, column j.
func (g *Grid) At(i, j int) float64 { return g.data[i*g.cols+j] }

// Set stores v at row i, column j.
func (g *Grid) Set(i, j int, v float64) { g.data[i*g.cols+j] = v }

// Data returns the backing row-major slice.
func (g *Grid) Data() []float64 { return g.data }

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{rows: g.rows, cols: g.cols, data: make([]float64, len(g.data))}
	copy(out.data, g.data)
	return out
}

// Sum returns the integrated pixel value.
func (g *Grid) Sum() float64 {
	var s float64
	for _, v := range g.data {
		s += v
	}
	return s
}

// Min returns the smallest pixel value.
func (g *Grid) Min() float64 {
	m := math.Inf(1)
	for _, v := range g.data {
		if v < m {
			m = v
		}
	}
	return m
}

// downsampledDims returns the grid dimensions after shrinking by zoom,
// never below 1x1.
func downsampledDims(g *Grid, zoom float64) (rows, cols int) {
	rows = int(math.Round(float64(g.rows) / zoom))
	cols = int(math.Round(float64(g.cols) / zoom))
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

// Max returns the largest pixel value.
func (g *Grid) Max() float64 {
	m := math.Inf(-1)
	for _, v := range g.data {
		if v > m {
			m = v
		}
	}
	return m
}
