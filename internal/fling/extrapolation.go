// SPDX-License-Identifier: Unlicense OR MIT

// Package fling fits a short history of drag samples to a quadratic and
// extrapolates a release velocity from it, the numerical core behind
// ScrollView's momentum scrolling (spec.md §4.H).
package fling

import "math"

// matrix is a dense row-major matrix of float32s.
type matrix struct {
	rows, cols int
	data       []float32
}

func newMatrix(rows, cols int) *matrix {
	return &matrix{rows: rows, cols: cols, data: make([]float32, rows*cols)}
}

func identity(n int) *matrix {
	m := newMatrix(n, n)
	for i := 0; i < n; i++ {
		m.set(i, i, 1)
	}
	return m
}

func (m *matrix) at(r, c int) float32    { return m.data[r*m.cols+c] }
func (m *matrix) set(r, c int, v float32) { m.data[r*m.cols+c] = v }

func (m *matrix) transpose() *matrix {
	t := newMatrix(m.cols, m.rows)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			t.set(c, r, m.at(r, c))
		}
	}
	return t
}

func (m *matrix) mul(o *matrix) *matrix {
	if m.cols != o.rows {
		panic("fling: mismatched matrix dimensions")
	}
	out := newMatrix(m.rows, o.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < o.cols; c++ {
			var sum float32
			for k := 0; k < m.cols; k++ {
				sum += m.at(r, k) * o.at(k, c)
			}
			out.set(r, c, sum)
		}
	}
	return out
}

func (m *matrix) approxEqual(o *matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	const eps = 1e-2
	for i := range m.data {
		d := m.data[i] - o.data[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}

// decomposeQR factors A (m x n, m >= n) into an orthogonal Q (m x m) and
// an upper-trapezoidal R, via Householder reflections, returning R's
// transpose so callers needing R can transpose it back. ok is false if A
// has a zero column and no decomposition exists.
func decomposeQR(A *matrix) (Q, Rt *matrix, ok bool) {
	m, n := A.rows, A.cols
	R := &matrix{rows: m, cols: n, data: append([]float32(nil), A.data...)}
	Qm := identity(m)

	limit := n
	if m-1 < limit {
		limit = m - 1
	}
	for k := 0; k < limit; k++ {
		var norm float64
		for i := k; i < m; i++ {
			v := float64(R.at(i, k))
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return nil, nil, false
		}
		alpha := -norm
		if R.at(k, k) < 0 {
			alpha = norm
		}
		v := make([]float64, m)
		v[k] = float64(R.at(k, k)) - alpha
		for i := k + 1; i < m; i++ {
			v[i] = float64(R.at(i, k))
		}
		var vnorm float64
		for i := k; i < m; i++ {
			vnorm += v[i] * v[i]
		}
		if vnorm == 0 {
			continue
		}

		for c := 0; c < n; c++ {
			var dot float64
			for i := k; i < m; i++ {
				dot += v[i] * float64(R.at(i, c))
			}
			factor := 2 * dot / vnorm
			for i := k; i < m; i++ {
				R.set(i, c, R.at(i, c)-float32(factor*v[i]))
			}
		}
		for r := 0; r < m; r++ {
			var dot float64
			for i := k; i < m; i++ {
				dot += float64(Qm.at(r, i)) * v[i]
			}
			factor := 2 * dot / vnorm
			for i := k; i < m; i++ {
				Qm.set(r, i, Qm.at(r, i)-float32(factor*v[i]))
			}
		}
	}
	return Qm, R.transpose(), true
}

// coefficients are [c0, c1, c2] of the fitted quadratic c0 + c1*x + c2*x^2.
type coefficients [3]float32

func (c coefficients) approxEqual(o coefficients) bool {
	const eps = 1e-2
	for i := range c {
		d := c[i] - o[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}

func (c coefficients) eval(x float32) float32 {
	return c[0] + c[1]*x + c[2]*x*x
}

func (c coefficients) derivativeAt(x float32) float32 {
	return c[1] + 2*c[2]*x
}

// polyFit least-squares fits a quadratic through (X[i], Y[i]) via QR
// decomposition of the Vandermonde matrix, solving R*c = Qᵀy by back
// substitution. It requires at least 3 samples.
func polyFit(X, Y []float32) (coefficients, bool) {
	n := len(X)
	if n < 3 {
		return coefficients{}, false
	}
	A := newMatrix(n, 3)
	for i, x := range X {
		A.set(i, 0, 1)
		A.set(i, 1, x)
		A.set(i, 2, x*x)
	}
	Q, Rt, ok := decomposeQR(A)
	if !ok {
		return coefficients{}, false
	}
	R := Rt.transpose()
	Qt := Q.transpose()

	qty := make([]float32, 3)
	for r := 0; r < 3; r++ {
		var sum float32
		for i := 0; i < n; i++ {
			sum += Qt.at(r, i) * Y[i]
		}
		qty[r] = sum
	}

	var c coefficients
	for i := 2; i >= 0; i-- {
		sum := qty[i]
		for j := i + 1; j < 3; j++ {
			sum -= R.at(i, j) * c[j]
		}
		diag := R.at(i, i)
		if diag == 0 {
			return coefficients{}, false
		}
		c[i] = sum / diag
	}
	return c, true
}

// Sample is one timestamped position observation along a single axis.
type Sample struct {
	T float32 // seconds since an arbitrary epoch, monotonically increasing
	X float32
}

// Extrapolation fits the tail of a drag's sample history to a quadratic
// and reports the instantaneous velocity at release, the input
// ScrollView's momentum phase needs to seed its decay animation
// (spec.md §4.H).
type Extrapolation struct {
	samples []Sample
}

// NewExtrapolation creates an empty Extrapolation.
func NewExtrapolation() *Extrapolation {
	return &Extrapolation{}
}

// Reset discards sample history, called when a new drag gesture begins.
func (e *Extrapolation) Reset() {
	e.samples = e.samples[:0]
}

// SampleTailWindow bounds how far back in time (in seconds) samples
// contribute to the fit; older samples are discarded on push, so a drag
// that pauses before release doesn't bias the estimate.
const SampleTailWindow = 0.1

// Push records a new (t, x) observation, evicting samples older than
// SampleTailWindow relative to t.
func (e *Extrapolation) Push(t, x float32) {
	e.samples = append(e.samples, Sample{T: t, X: x})
	cutoff := t - SampleTailWindow
	i := 0
	for i < len(e.samples) && e.samples[i].T < cutoff {
		i++
	}
	if i > 0 {
		e.samples = append(e.samples[:0], e.samples[i:]...)
	}
}

// Velocity fits the sample history to a quadratic and returns its slope
// at the most recent sample, i.e. the estimated release velocity in
// units/second. ok is false with fewer than 3 samples or a degenerate
// fit (e.g. all samples at the same time).
func (e *Extrapolation) Velocity() (v float32, ok bool) {
	if len(e.samples) < 3 {
		return 0, false
	}
	t0 := e.samples[0].T
	xs := make([]float32, len(e.samples))
	ys := make([]float32, len(e.samples))
	for i, s := range e.samples {
		xs[i] = s.T - t0
		ys[i] = s.X
	}
	c, ok := polyFit(xs, ys)
	if !ok {
		return 0, false
	}
	last := xs[len(xs)-1]
	return c.derivativeAt(last), true
}
