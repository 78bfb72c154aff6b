package property

import (
	"fmt"
	"math"
)

// Color is a straight alpha RGBA color with 8 bits per channel.
type Color struct {
	R, G, B, A uint8
}

func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) Interpolate(to Color, t float32) Color {
	return Color{
		R: lerpChannel(c.R, to.R, t),
		G: lerpChannel(c.G, to.G, t),
		B: lerpChannel(c.B, to.B, t),
		A: lerpChannel(c.A, to.A, t),
	}
}

func lerpChannel(from, to uint8, t float32) uint8 {
	v := math.Round(float64(lerp32(float32(from), float32(to), t)))
	return uint8(min(max(v, 0), 255))
}

type Point struct {
	X, Y float32
}

func (p Point) Interpolate(to Point, t float32) Point {
	return Point{X: lerp32(p.X, to.X, t), Y: lerp32(p.Y, to.Y, t)}
}

type Size struct {
	Width, Height float32
}

func (s Size) Interpolate(to Size, t float32) Size {
	return Size{Width: lerp32(s.Width, to.Width, t), Height: lerp32(s.Height, to.Height, t)}
}
