package compose

// Color is an optional RGBA presentation tag a node may carry, adapted
// from gotio/color.go's Color — purely a display hint, never consulted by
// projection math.
type Color struct {
	R, G, B, A float64
}

// NewColor constructs a Color.
func NewColor(r, g, b, a float64) *Color {
	return &Color{R: r, G: g, B: b, A: a}
}
