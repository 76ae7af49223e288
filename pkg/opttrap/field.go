package opttrap

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Box is an axis-aligned sampling volume.
type Box struct {
	Min, Max Vec3
}

// CenteredBox returns a box spanning ±half along every axis.
func CenteredBox(half float64) Box {
	return Box{Min: Vec3{-half, -half, -half}, Max: Vec3{half, half, half}}
}

// Field3D is a scalar field sampled on a regular grid over a box.
type Field3D struct {
	box  Box
	n    [3]int
	data []float64
}

// SampleField evaluates f on a regular n[0] x n[1] x n[2] grid spanning box,
// endpoints included.
func SampleField(f func(x, y, z float64) float64, box Box, n [3]int) (*Field3D, error) {
	for _, steps := range n {
		if steps < 2 {
			return nil, ErrBadSteps
		}
	}
	fld := &Field3D{box: box, n: n, data: make([]float64, n[0]*n[1]*n[2])}
	for i := 0; i < n[0]; i++ {
		for j := 0; j < n[1]; j++ {
			for k := 0; k < n[2]; k++ {
				x, y, z := fld.Coord(i, j, k)
				fld.data[fld.index(i, j, k)] = f(x, y, z)
			}
		}
	}
	return fld, nil
}

func (f *Field3D) index(i, j, k int) int { return (i*f.n[1]+j)*f.n[2] + k }

// Dims returns the grid point count per axis.
func (f *Field3D) Dims() [3]int { return f.n }

// Step returns the grid spacing along the given axis.
func (f *Field3D) Step(axis int) float64 {
	return (f.box.Max[axis] - f.box.Min[axis]) / float64(f.n[axis]-1)
}

// Coord returns the position of grid point (i, j, k).
func (f *Field3D) Coord(i, j, k int) (x, y, z float64) {
	return f.box.Min[0] + float64(i)*f.Step(0),
		f.box.Min[1] + float64(j)*f.Step(1),
		f.box.Min[2] + float64(k)*f.Step(2)
}

// At returns the sampled value at grid point (i, j, k).
func (f *Field3D) At(i, j, k int) float64 { return f.data[f.index(i, j, k)] }

// Max returns the largest sampled value.
func (f *Field3D) Max() float64 {
	m := math.Inf(-1)
	for _, v := range f.data {
		if v > m {
			m = v
		}
	}
	return m
}

// Min returns the smallest sampled value.
func (f *Field3D) Min() float64 {
	m := math.Inf(1)
	for _, v := range f.data {
		if v < m {
			m = v
		}
	}
	return m
}

// Add accumulates other into f. Both fields must share box and grid.
func (f *Field3D) Add(other *Field3D) error {
	if f.box != other.box || f.n != other.n {
		return ErrBoxMismatch
	}
	for i, v := range other.data {
		f.data[i] += v
	}
	return nil
}

// nearestIndex maps a position to the closest grid indices.
func (f *Field3D) nearestIndex(p Vec3) [3]int {
	var idx [3]int
	for a := 0; a < 3; a++ {
		idx[a] = int(math.Round((p[a] - f.box.Min[a]) / f.Step(a)))
	}
	return idx
}

// HessianAt estimates the 3x3 Hessian of the field at the grid point nearest
// to p by central finite differences. The point must sit at least one grid
// step inside the box.
func (f *Field3D) HessianAt(p Vec3) (*mat.SymDense, error) {
	c := f.nearestIndex(p)
	for a := 0; a < 3; a++ {
		if c[a] < 1 || c[a] > f.n[a]-2 {
			return nil, ErrBoundaryPoint
		}
	}
	at := func(di, dj, dk int) float64 {
		return f.At(c[0]+di, c[1]+dj, c[2]+dk)
	}
	h := [3]float64{f.Step(0), f.Step(1), f.Step(2)}
	center := at(0, 0, 0)

	hess := mat.NewSymDense(3, nil)
	// Diagonal second differences.
	hess.SetSym(0, 0, (at(1, 0, 0)-2*center+at(-1, 0, 0))/(h[0]*h[0]))
	hess.SetSym(1, 1, (at(0, 1, 0)-2*center+at(0, -1, 0))/(h[1]*h[1]))
	hess.SetSym(2, 2, (at(0, 0, 1)-2*center+at(0, 0, -1))/(h[2]*h[2]))
	// Mixed partials from the four-corner stencil.
	hess.SetSym(0, 1, (at(1, 1, 0)-at(1, -1, 0)-at(-1, 1, 0)+at(-1, -1, 0))/(4*h[0]*h[1]))
	hess.SetSym(0, 2, (at(1, 0, 1)-at(1, 0, -1)-at(-1, 0, 1)+at(-1, 0, -1))/(4*h[0]*h[2]))
	hess.SetSym(1, 2, (at(0, 1, 1)-at(0, 1, -1)-at(0, -1, 1)+at(0, -1, -1))/(4*h[1]*h[2]))
	return hess, nil
}
