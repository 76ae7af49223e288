package cloudfit_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudfit/pkg/cloudfit"
)

// synthetic renders a noiseless model image on a rows x cols grid.
func synthetic(t *testing.T, p cloudfit.ModelParams, rows, cols int) *cloudfit.Grid {
	t.Helper()
	g, err := cloudfit.NewGrid(rows, cols)
	require.NoError(t, err)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			g.Set(i, j, p.Eval(float64(i), float64(j)))
		}
	}
	return g
}

func TestFitGaussian2D_RecoversKnownParams(t *testing.T) {
	truth := cloudfit.ModelParams{
		X0: 32, Y0: 32, SX: 5, SY: 8, Amp: 100, Offset: 10, Angle: 20,
	}
	img := synthetic(t, truth, 64, 64)

	res, err := cloudfit.FitGaussian2D(img, nil)
	require.NoError(t, err)

	assert.InDelta(t, truth.X0, res.Param(cloudfit.ParamX0).Val, 1e-3)
	assert.InDelta(t, truth.Y0, res.Param(cloudfit.ParamY0).Val, 1e-3)
	assert.InDelta(t, truth.SX, res.Param(cloudfit.ParamSX).Val, 1e-2)
	assert.InDelta(t, truth.SY, res.Param(cloudfit.ParamSY).Val, 1e-2)
	assert.InDelta(t, truth.Amp, res.Param(cloudfit.ParamAmp).Val, 0.1)
	assert.InDelta(t, truth.Offset, res.Param(cloudfit.ParamOffset).Val, 1e-2)
	assert.InDelta(t, truth.Angle, res.Param(cloudfit.ParamAngle).Val, 0.02)
	assert.InDelta(t, 0, res.Param(cloudfit.ParamXSlope).Val, 1e-3)
	assert.InDelta(t, 0, res.Param(cloudfit.ParamYSlope).Val, 1e-3)

	// Noiseless data leaves essentially no residual variance.
	for _, k := range res.Keys {
		assert.Less(t, res.Param(k).Std, 0.1, "std of %s", k)
	}

	// The model image reproduces the data.
	for i := 0; i < img.Rows(); i += 7 {
		for j := 0; j < img.Cols(); j += 7 {
			assert.InDelta(t, img.At(i, j), res.ModelImg.At(i, j), 0.1)
		}
	}
}

// TestFitGaussian2D_AngleAmbiguity feeds the same physical ellipse in its
// two equivalent parameterizations (theta, sx, sy) and (theta+90, sy, sx);
// both fits must land on the same canonical result.
func TestFitGaussian2D_AngleAmbiguity(t *testing.T) {
	a := cloudfit.ModelParams{X0: 32, Y0: 32, SX: 5, SY: 8, Amp: 100, Offset: 10, Angle: 20}
	b := cloudfit.ModelParams{X0: 32, Y0: 32, SX: 8, SY: 5, Amp: 100, Offset: 10, Angle: 110}

	imgA := synthetic(t, a, 64, 64)
	imgB := synthetic(t, b, 64, 64)
	// The two parameterizations describe the same intensity pattern.
	for i := 0; i < 64; i += 5 {
		for j := 0; j < 64; j += 5 {
			require.InDelta(t, imgA.At(i, j), imgB.At(i, j), 1e-9)
		}
	}

	resA, err := cloudfit.FitGaussian2D(imgA, nil)
	require.NoError(t, err)
	resB, err := cloudfit.FitGaussian2D(imgB, nil)
	require.NoError(t, err)

	assert.InDelta(t, resA.Param(cloudfit.ParamAngle).Val, resB.Param(cloudfit.ParamAngle).Val, 0.05)
	assert.InDelta(t, resA.Param(cloudfit.ParamSX).Val, resB.Param(cloudfit.ParamSX).Val, 0.05)
	assert.InDelta(t, resA.Param(cloudfit.ParamSY).Val, resB.Param(cloudfit.ParamSY).Val, 0.05)
}

func TestFitGaussian2D_AngleWindow(t *testing.T) {
	truth := cloudfit.ModelParams{X0: 20, Y0: 24, SX: 4, SY: 7, Amp: 80, Offset: 5, Angle: 75}
	img := synthetic(t, truth, 48, 48)

	for _, offset := range []float64{0, 45, -30} {
		cfg := cloudfit.NewFitConfig()
		cfg.AngleOffset = offset
		res, err := cloudfit.FitGaussian2D(img, cfg)
		require.NoError(t, err)
		angle := res.Param(cloudfit.ParamAngle).Val
		assert.GreaterOrEqual(t, angle, offset-45)
		assert.Less(t, angle, offset+45)
	}
}

func TestFitGaussian2D_FixedParams(t *testing.T) {
	truth := cloudfit.ModelParams{X0: 16, Y0: 16, SX: 3, SY: 5, Amp: 40, Offset: 2}
	img := synthetic(t, truth, 32, 32)

	cfg := cloudfit.NewFitConfig()
	cfg.FixAngle = true
	cfg.FixSlope = true
	res, err := cloudfit.FitGaussian2D(img, cfg)
	require.NoError(t, err)

	assert.Equal(t, []cloudfit.Param{
		cloudfit.ParamX0, cloudfit.ParamY0, cloudfit.ParamSX,
		cloudfit.ParamSY, cloudfit.ParamAmp, cloudfit.ParamOffset,
	}, res.Keys)
	_, hasAngle := res.Params[cloudfit.ParamAngle]
	assert.False(t, hasAngle)
	_, hasSlope := res.Params[cloudfit.ParamXSlope]
	assert.False(t, hasSlope)

	assert.InDelta(t, truth.SX, res.Param(cloudfit.ParamSX).Val, 1e-2)
	assert.InDelta(t, truth.SY, res.Param(cloudfit.ParamSY).Val, 1e-2)
}

func TestFitGaussian2D_DegenerateImage(t *testing.T) {
	img, err := cloudfit.NewGrid(32, 32)
	require.NoError(t, err)

	// All-zero input takes the fallback guess path and still completes.
	res, fitErr := cloudfit.FitGaussian2D(img, nil)
	require.NoError(t, fitErr)
	require.NotNil(t, res)
	assert.Equal(t, 0.0, res.NSum)
	for _, k := range res.Keys {
		assert.False(t, math.IsNaN(res.Param(k).Val), "value of %s", k)
	}
}

func TestFitGaussian2D_Idempotent(t *testing.T) {
	truth := cloudfit.ModelParams{X0: 20, Y0: 22, SX: 4, SY: 6, Amp: 60, Offset: 8, Angle: -10}
	img := synthetic(t, truth, 48, 48)

	res1, err := cloudfit.FitGaussian2D(img, nil)
	require.NoError(t, err)
	res2, err := cloudfit.FitGaussian2D(img, nil)
	require.NoError(t, err)

	require.Equal(t, res1.Keys, res2.Keys)
	for _, k := range res1.Keys {
		assert.Equal(t, res1.Param(k).Val, res2.Param(k).Val, "value of %s", k)
		assert.Equal(t, res1.Param(k).Std, res2.Param(k).Std, "std of %s", k)
	}
}

func TestFitGaussian2D_DerivedTotals(t *testing.T) {
	truth := cloudfit.ModelParams{X0: 24, Y0: 24, SX: 4, SY: 5, Amp: 50, Offset: 3}
	img := synthetic(t, truth, 48, 48)

	res, err := cloudfit.FitGaussian2D(img, nil)
	require.NoError(t, err)

	amp := res.Param(cloudfit.ParamAmp).Val
	sx := res.Param(cloudfit.ParamSX).Val
	sy := res.Param(cloudfit.ParamSY).Val
	offset := res.Param(cloudfit.ParamOffset).Val

	assert.Equal(t, amp*2*math.Pi*sx*sy, res.NGauss)
	assert.Equal(t, img.Sum(), res.NSum)
	assert.Equal(t, res.NSum-offset, res.NSumBGSubtract)
}

func TestFitGaussian2D_Downsampled(t *testing.T) {
	truth := cloudfit.ModelParams{X0: 32, Y0: 30, SX: 6, SY: 9, Amp: 90, Offset: 12}
	img := synthetic(t, truth, 64, 64)

	cfg := cloudfit.NewFitConfig()
	cfg.Zoom = 2
	res, err := cloudfit.FitGaussian2D(img, cfg)
	require.NoError(t, err)

	// Downsampling trades precision for speed: resampling shifts the
	// effective pixel centers by up to (zoom-1)/2, so results stay within
	// a pixel of truth in original-image units rather than exact.
	assert.InDelta(t, truth.X0, res.Param(cloudfit.ParamX0).Val, 1.0)
	assert.InDelta(t, truth.Y0, res.Param(cloudfit.ParamY0).Val, 1.0)
	assert.InDelta(t, truth.SX, res.Param(cloudfit.ParamSX).Val, 0.5)
	assert.InDelta(t, truth.SY, res.Param(cloudfit.ParamSY).Val, 0.5)
}

func TestFitGaussian2D_InvalidConfig(t *testing.T) {
	img := synthetic(t, cloudfit.ModelParams{X0: 8, Y0: 8, SX: 2, SY: 2, Amp: 10}, 16, 16)

	cfg := cloudfit.NewFitConfig()
	cfg.Zoom = 0.5
	_, err := cloudfit.FitGaussian2D(img, cfg)
	assert.ErrorIs(t, err, cloudfit.ErrBadZoom)

	cfg = cloudfit.NewFitConfig()
	cfg.ConfLevel = 1.5
	_, err = cloudfit.FitGaussian2D(img, cfg)
	assert.ErrorIs(t, err, cloudfit.ErrBadConfLevel)

	_, err = cloudfit.FitGaussian2D(nil, nil)
	assert.ErrorIs(t, err, cloudfit.ErrEmptyImage)
}
