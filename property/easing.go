package property

import (
	"fmt"
	"math"
)

type easingKind uint8

const (
	easeLinear easingKind = iota
	easeCubicBezier
	easeInElastic
	easeOutElastic
	easeInOutElastic
	easeInBounce
	easeOutBounce
	easeInOutBounce
)

// EasingCurve maps the progress of an animation, between 0 and 1, to the
// interpolation factor. The zero value is Linear.
type EasingCurve struct {
	kind   easingKind
	bezier [4]float32
}

var (
	Linear           = EasingCurve{}
	Ease             = CubicBezier(0.25, 0.1, 0.25, 1)
	EaseIn           = CubicBezier(0.42, 0, 1, 1)
	EaseOut          = CubicBezier(0, 0, 0.58, 1)
	EaseInOut        = CubicBezier(0.42, 0, 0.58, 1)
	EaseInElastic    = EasingCurve{kind: easeInElastic}
	EaseOutElastic   = EasingCurve{kind: easeOutElastic}
	EaseInOutElastic = EasingCurve{kind: easeInOutElastic}
	EaseInBounce     = EasingCurve{kind: easeInBounce}
	EaseOutBounce    = EasingCurve{kind: easeOutBounce}
	EaseInOutBounce  = EasingCurve{kind: easeInOutBounce}
)

// CubicBezier is the curve from (0,0) to (1,1) with control points (a,b)
// and (c,d), as in CSS.
func CubicBezier(a, b, c, d float32) EasingCurve {
	return EasingCurve{kind: easeCubicBezier, bezier: [4]float32{a, b, c, d}}
}

func (e EasingCurve) String() string {
	switch e.kind {
	case easeLinear:
		return "linear"
	case easeCubicBezier:
		return fmt.Sprintf("cubic-bezier(%g, %g, %g, %g)", e.bezier[0], e.bezier[1], e.bezier[2], e.bezier[3])
	case easeInElastic:
		return "ease-in-elastic"
	case easeOutElastic:
		return "ease-out-elastic"
	case easeInOutElastic:
		return "ease-in-out-elastic"
	case easeInBounce:
		return "ease-in-bounce"
	case easeOutBounce:
		return "ease-out-bounce"
	case easeInOutBounce:
		return "ease-in-out-bounce"
	default:
		return "unknown"
	}
}

// Apply returns the eased value of t.
func (e EasingCurve) Apply(t float32) float32 {
	switch e.kind {
	case easeCubicBezier:
		a, c := e.bezier[0], e.bezier[2]
		if (a < 0 || a > 1) && (c < 0 || c > 1) {
			return t
		}
		return float32(bezierY(e.bezier, solveBezierX(e.bezier, float64(t))))

	case easeInElastic:
		if t == 0 || t == 1 {
			return t
		}
		const c4 = 2 * math.Pi / 3
		v := float64(t)
		return float32(-math.Pow(2, 10*v-10) * math.Sin((v*10-10.75)*c4))

	case easeOutElastic:
		if t == 0 || t == 1 {
			return t
		}
		const c4 = 2 * math.Pi / 3
		v := float64(t)
		return float32(math.Pow(2, -10*v)*math.Sin((v*10-0.75)*c4) + 1)

	case easeInOutElastic:
		if t == 0 || t == 1 {
			return t
		}
		const c5 = 2 * math.Pi / 4.5
		v := float64(t)
		if v < 0.5 {
			return float32(-(math.Pow(2, 20*v-10) * math.Sin((20*v-11.125)*c5)) / 2)
		}
		return float32((math.Pow(2, -20*v+10)*math.Sin((20*v-11.125)*c5))/2 + 1)

	case easeInBounce:
		return 1 - outBounce(1-t)
	case easeOutBounce:
		return outBounce(t)
	case easeInOutBounce:
		if t < 0.5 {
			return (1 - outBounce(1-2*t)) / 2
		}
		return (1 + outBounce(2*t-1)) / 2

	default:
		return t
	}
}

func outBounce(t float32) float32 {
	const (
		n1 = 7.5625
		d1 = 2.75
	)
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

func bezierCoord(p1, p2, t float64) float64 {
	u := 1 - t
	return 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t
}

func bezierX(p [4]float32, t float64) float64 {
	return bezierCoord(float64(p[0]), float64(p[2]), t)
}

func bezierY(p [4]float32, t float64) float64 {
	return bezierCoord(float64(p[1]), float64(p[3]), t)
}

func bezierDX(p [4]float32, t float64) float64 {
	p1, p2 := float64(p[0]), float64(p[2])
	u := 1 - t
	return 3*u*u*p1 + 6*u*t*(p2-p1) + 3*t*t*(1-p2)
}

// solveBezierX finds the curve parameter whose x is x, Newton first and
// bisection when the slope is too flat.
func solveBezierX(p [4]float32, x float64) float64 {
	const epsilon = 1e-6
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	t := x
	for i := 0; i < 8; i++ {
		dx := bezierX(p, t) - x
		if math.Abs(dx) < epsilon {
			return t
		}
		d := bezierDX(p, t)
		if math.Abs(d) < epsilon {
			break
		}
		t -= dx / d
		if t < 0 || t > 1 {
			break
		}
	}
	lo, hi := 0.0, 1.0
	t = x
	for i := 0; i < 64 && lo < hi; i++ {
		v := bezierX(p, t)
		if math.Abs(v-x) < epsilon {
			return t
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}
