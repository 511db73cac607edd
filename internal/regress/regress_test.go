package regress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

func TestFitLinear(t *testing.T) {
	t.Run("exact line", func(t *testing.T) {
		points := []Point{{0, 1}, {1, 3}, {2, 5}, {3, 7}}
		fit, err := FitLinear(points)
		require.NoError(t, err)

		assert.InDelta(t, 2.0, fit.Slope, 1e-9)
		assert.InDelta(t, 1.0, fit.Intercept, 1e-9)
		assert.InDelta(t, 1.0, fit.R2, 1e-9)
		assert.InDelta(t, 21.0, fit.Predict(10), 1e-9)
	})

	t.Run("noisy line keeps R2 below 1", func(t *testing.T) {
		points := []Point{{0, 1.1}, {1, 2.9}, {2, 5.2}, {3, 6.8}}
		fit, err := FitLinear(points)
		require.NoError(t, err)

		assert.Greater(t, fit.R2, 0.9)
		assert.Less(t, fit.R2, 1.0)
	})

	t.Run("constant y gives zero slope and zero R2", func(t *testing.T) {
		points := []Point{{0, 26.0}, {1, 26.0}, {2, 26.0}}
		fit, err := FitLinear(points)
		require.NoError(t, err)

		assert.InDelta(t, 0.0, fit.Slope, 1e-9)
		assert.InDelta(t, 26.0, fit.Intercept, 1e-9)
		assert.Equal(t, 0.0, fit.R2)
	})

	t.Run("too few points", func(t *testing.T) {
		_, err := FitLinear([]Point{{1, 2}})
		require.ErrorIs(t, err, domain.ErrDegenerateFit)
	})

	t.Run("zero x variance", func(t *testing.T) {
		_, err := FitLinear([]Point{{5, 1}, {5, 2}, {5, 3}})
		require.ErrorIs(t, err, domain.ErrDegenerateFit)
	})
}

func TestFitPolynomial(t *testing.T) {
	t.Run("exact parabola", func(t *testing.T) {
		// y = 2 + 0.5x + 0.25x^2
		f := func(x float64) float64 { return 2 + 0.5*x + 0.25*x*x }
		var points []Point
		for x := 0.0; x < 10; x++ {
			points = append(points, Point{x, f(x)})
		}

		fit, err := FitPolynomial(points, 2)
		require.NoError(t, err)
		require.Len(t, fit.Coefficients, 3)

		assert.InDelta(t, 2.0, fit.Coefficients[0], 1e-6)
		assert.InDelta(t, 0.5, fit.Coefficients[1], 1e-6)
		assert.InDelta(t, 0.25, fit.Coefficients[2], 1e-6)
		assert.InDelta(t, 1.0, fit.R2, 1e-9)
		assert.InDelta(t, f(12), fit.Predict(12), 1e-6)
	})

	t.Run("constant y gives zero R2", func(t *testing.T) {
		points := []Point{{0, 26}, {1, 26}, {2, 26}, {3, 26}}
		fit, err := FitPolynomial(points, 2)
		require.NoError(t, err)

		assert.Equal(t, 0.0, fit.R2)
		assert.InDelta(t, 26.0, fit.Predict(7), 1e-6)
	})

	t.Run("too few distinct x values", func(t *testing.T) {
		_, err := FitPolynomial([]Point{{0, 1}, {0, 2}, {1, 3}}, 2)
		require.ErrorIs(t, err, domain.ErrDegenerateFit)
	})

	t.Run("invalid degree", func(t *testing.T) {
		_, err := FitPolynomial([]Point{{0, 1}, {1, 2}}, 0)
		require.Error(t, err)
	})
}

func TestPolynomialPredictHorner(t *testing.T) {
	fit := PolynomialFit{Coefficients: []float64{1, -2, 3}}
	// 1 - 2*2 + 3*4 = 9
	assert.InDelta(t, 9.0, fit.Predict(2), 1e-12)
}
