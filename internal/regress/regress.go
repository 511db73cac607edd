// Package regress provides the least-squares fit primitives the prediction
// models are built on. Linear fits go through gonum/stat; polynomial fits
// solve the Vandermonde-expanded design matrix with gonum/mat.
package regress

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

// Point is one (x, y) observation.
type Point struct {
	X float64
	Y float64
}

// LinearFit is the result of an ordinary least-squares degree-1 fit.
type LinearFit struct {
	Slope     float64
	Intercept float64
	R2        float64
}

// Predict evaluates the fitted line at x.
func (f LinearFit) Predict(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// PolynomialFit is the result of a least-squares polynomial fit.
// Coefficients are in ascending power order: c0 + c1*x + c2*x^2 + ...
type PolynomialFit struct {
	Coefficients []float64
	R2           float64
}

// Predict evaluates the fitted polynomial at x via Horner's method.
func (f PolynomialFit) Predict(x float64) float64 {
	y := 0.0
	for i := len(f.Coefficients) - 1; i >= 0; i-- {
		y = y*x + f.Coefficients[i]
	}
	return y
}

// FitLinear performs ordinary least-squares regression over the points.
// It fails with domain.ErrDegenerateFit when fewer than 2 points are given
// or all x values are identical.
func FitLinear(points []Point) (LinearFit, error) {
	if len(points) < 2 {
		return LinearFit{}, fmt.Errorf("%w: need at least 2 points, have %d", domain.ErrDegenerateFit, len(points))
	}
	if countDistinctX(points) < 2 {
		return LinearFit{}, fmt.Errorf("%w: zero variance in x", domain.ErrDegenerateFit)
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	fit := LinearFit{Slope: slope, Intercept: intercept}
	fit.R2 = rSquared(points, fit.Predict)
	return fit, nil
}

// FitPolynomial performs a least-squares fit of the given degree. It fails
// with domain.ErrDegenerateFit when fewer than degree+1 distinct x values
// are present or the design matrix is rank-deficient.
func FitPolynomial(points []Point, degree int) (PolynomialFit, error) {
	if degree < 1 {
		return PolynomialFit{}, fmt.Errorf("invalid polynomial degree %d", degree)
	}
	if countDistinctX(points) < degree+1 {
		return PolynomialFit{}, fmt.Errorf("%w: degree %d needs %d distinct x values", domain.ErrDegenerateFit, degree, degree+1)
	}

	// Vandermonde design matrix: row i = [1, x_i, x_i^2, ..., x_i^degree].
	a := mat.NewDense(len(points), degree+1, nil)
	b := mat.NewVecDense(len(points), nil)
	for i, p := range points {
		v := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, v)
			v *= p.X
		}
		b.SetVec(i, p.Y)
	}

	var coef mat.VecDense
	if err := coef.SolveVec(a, b); err != nil {
		return PolynomialFit{}, fmt.Errorf("%w: %v", domain.ErrDegenerateFit, err)
	}

	fit := PolynomialFit{Coefficients: make([]float64, degree+1)}
	for j := 0; j <= degree; j++ {
		fit.Coefficients[j] = coef.AtVec(j)
	}
	fit.R2 = rSquared(points, fit.Predict)
	return fit, nil
}

// rSquared computes 1 - SSres/SStot against the fitted predict function.
// Defined as 0 for a constant series (SStot == 0) to avoid division by zero.
func rSquared(points []Point, predict func(float64) float64) float64 {
	var meanY float64
	for _, p := range points {
		meanY += p.Y
	}
	meanY /= float64(len(points))

	var ssTot, ssRes float64
	for _, p := range points {
		dy := p.Y - meanY
		ssTot += dy * dy
		res := p.Y - predict(p.X)
		ssRes += res * res
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func countDistinctX(points []Point) int {
	seen := make(map[float64]struct{}, len(points))
	for _, p := range points {
		seen[p.X] = struct{}{}
	}
	return len(seen)
}
