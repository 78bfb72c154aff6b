package property_test

import (
	"math"
	"testing"
	"time"

	"github.com/delaneyj/propertyparty/property"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(e property.EasingCurve, steps int) []float64 {
	out := make([]float64, 0, steps+1)
	for i := 0; i <= steps; i++ {
		out = append(out, float64(e.Apply(float32(i)/float32(steps))))
	}
	return out
}

func TestEasingEndpoints(t *testing.T) {
	curves := []property.EasingCurve{
		property.Linear,
		property.Ease,
		property.EaseIn,
		property.EaseOut,
		property.EaseInOut,
		property.EaseInElastic,
		property.EaseOutElastic,
		property.EaseInOutElastic,
		property.EaseInBounce,
		property.EaseOutBounce,
		property.EaseInOutBounce,
		property.CubicBezier(0.1, 0.7, 1.0, 0.1),
	}
	approx := cmpopts.EquateApprox(0, 1e-4)
	for _, e := range curves {
		t.Run(e.String(), func(t *testing.T) {
			got := []float64{float64(e.Apply(0)), float64(e.Apply(1))}
			if diff := cmp.Diff([]float64{0, 1}, got, approx); diff != "" {
				t.Errorf("endpoints mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinearEasing(t *testing.T) {
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if diff := cmp.Diff(want, sample(property.Linear, 4)); diff != "" {
		t.Errorf("linear mismatch (-want +got):\n%s", diff)
	}
}

func TestCubicBezierEasing(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-3)

	// a linear control polygon is the identity
	line := property.CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	if diff := cmp.Diff(sample(property.Linear, 8), sample(line, 8), approx); diff != "" {
		t.Errorf("linear bezier mismatch (-want +got):\n%s", diff)
	}

	// ease-in-out is point symmetric around the middle
	s := sample(property.EaseInOut, 10)
	mirrored := make([]float64, len(s))
	for i, v := range s {
		mirrored[len(s)-1-i] = 1 - v
	}
	if diff := cmp.Diff(s, mirrored, approx); diff != "" {
		t.Errorf("ease-in-out is not symmetric (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 0.5, property.EaseInOut.Apply(0.5), 1e-3)

	// ease-in starts slow, ease-out starts fast
	assert.Less(t, property.EaseIn.Apply(0.25), float32(0.25))
	assert.Greater(t, property.EaseOut.Apply(0.25), float32(0.25))
	for i := 1; i < len(s); i++ {
		assert.GreaterOrEqual(t, s[i], s[i-1], "monotonic at %d", i)
	}
}

func TestCubicBezierOutOfRangeIsLinear(t *testing.T) {
	e := property.CubicBezier(-1, 0.3, 2, 0.8)
	if diff := cmp.Diff(sample(property.Linear, 4), sample(e, 4)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBounceEasing(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-4)
	got := []float64{
		float64(property.EaseOutBounce.Apply(1 / 2.75)),
		float64(property.EaseOutBounce.Apply(2 / 2.75)),
		float64(property.EaseInOutBounce.Apply(0.5)),
	}
	want := []float64{1, 1, 0.5}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("bounce mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 1-property.EaseOutBounce.Apply(0.7), property.EaseInBounce.Apply(0.3), 1e-6)
}

func TestElasticOvershoots(t *testing.T) {
	var lo, hi float32
	for _, v := range sample(property.EaseOutElastic, 100) {
		hi = max(hi, float32(v))
	}
	for _, v := range sample(property.EaseInElastic, 100) {
		lo = min(lo, float32(v))
	}
	assert.Greater(t, hi, float32(1))
	assert.Less(t, lo, float32(0))
}

func TestEasingNames(t *testing.T) {
	assert.Equal(t, "linear", property.Linear.String())
	assert.Equal(t, "cubic-bezier(0.42, 0, 0.58, 1)", property.EaseInOut.String())
	assert.Equal(t, "ease-in-out-bounce", property.EaseInOutBounce.String())
}

func TestIntegerInterpolation(t *testing.T) {
	interp, err := property.InterpolatorFor[int]()
	require.NoError(t, err)
	assert.Equal(t, 150, interp(100, 200, 0.5))
	assert.Equal(t, 1, interp(0, 3, 0.4), "steps are rounded")
	assert.Equal(t, -1, interp(0, -3, 0.4))
	assert.Equal(t, 210, interp(100, 200, 1.1), "overshoot is kept")

	u8, err := property.InterpolatorFor[uint8]()
	require.NoError(t, err)
	assert.Equal(t, uint8(255), u8(0, 255, 1.5), "clamped at the top")
	assert.Equal(t, uint8(0), u8(10, 255, -0.5), "clamped at zero")

	i8, err := property.InterpolatorFor[int8]()
	require.NoError(t, err)
	assert.Equal(t, int8(math.MinInt8), i8(0, -100, 2))
}

func TestFloatInterpolation(t *testing.T) {
	f32, err := property.InterpolatorFor[float32]()
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f32(1, 2, 0.5))

	f64, err := property.InterpolatorFor[float64]()
	require.NoError(t, err)
	assert.InDelta(t, -0.25, f64(0, -1, 0.25), 1e-9)
}

func TestDurationInterpolation(t *testing.T) {
	interp, err := property.InterpolatorFor[time.Duration]()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, interp(time.Second, 2*time.Second, 0.5))
}

func TestCompositeInterpolation(t *testing.T) {
	colors, err := property.InterpolatorFor[property.Color]()
	require.NoError(t, err)
	got := colors(property.RGBA(0, 0, 0, 0), property.RGBA(255, 255, 255, 255), 2)
	assert.Equal(t, property.RGBA(255, 255, 255, 255), got, "channels are clamped")
	assert.Equal(t, "#ff000080", property.RGBA(255, 0, 0, 128).String())

	sizes, err := property.InterpolatorFor[property.Size]()
	require.NoError(t, err)
	want := property.Size{Width: 15, Height: 30}
	if diff := cmp.Diff(want, sizes(property.Size{Width: 10, Height: 20}, property.Size{Width: 20, Height: 40}, 0.5)); diff != "" {
		t.Errorf("size mismatch (-want +got):\n%s", diff)
	}
}
