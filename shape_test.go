package sketchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectangleNormalized(t *testing.T) {
	want := Rectangle{X0: -0.5, Y0: -0.5, X1: 0.5, Y1: 0.5, Fill: White, Border: Black}

	corners := [][2]Point{
		{Pt(-0.5, -0.5), Pt(0.5, 0.5)},
		{Pt(0.5, 0.5), Pt(-0.5, -0.5)},
		{Pt(-0.5, 0.5), Pt(0.5, -0.5)},
		{Pt(0.5, -0.5), Pt(-0.5, 0.5)},
	}
	for _, c := range corners {
		got := RectFromPoints(c[0], c[1], White, Black).Normalized()
		assert.Equal(t, want, got, "drag %v -> %v", c[0], c[1])
	}
}

func TestRectangleNormalizedKeepsInput(t *testing.T) {
	r := Rectangle{X0: 1, Y0: 1, X1: 0, Y1: 0}
	_ = r.Normalized()
	assert.Equal(t, float32(1), r.X0)
}

func TestRectangleEmpty(t *testing.T) {
	assert.True(t, Rectangle{X0: 0.2, Y0: 0.2, X1: 0.2, Y1: 0.2}.Empty())
	assert.True(t, Rectangle{X0: 0, Y0: 0, X1: 0.3, Y1: 0}.Empty())
	assert.False(t, Rectangle{X0: 0.3, Y0: 0.1, X1: 0, Y1: 0}.Empty())
	assert.InDelta(t, 0.3, Rectangle{X0: 0.3, X1: 0}.Width(), 1e-6)
}

func TestCircleBounds(t *testing.T) {
	b := Circle{X: 0.1, Y: -0.1, Radius: 0.3}.Bounds()
	assert.InDelta(t, -0.2, b.X0, 1e-6)
	assert.InDelta(t, -0.4, b.Y0, 1e-6)
	assert.InDelta(t, 0.4, b.X1, 1e-6)
	assert.InDelta(t, 0.2, b.Y1, 1e-6)
}

func TestShapeVariants(t *testing.T) {
	shapes := []Shape{Rectangle{}, Circle{}, BackgroundGrid{}}
	kinds := make([]string, 0, len(shapes))
	for _, s := range shapes {
		switch s.(type) {
		case Rectangle:
			kinds = append(kinds, "rect")
		case Circle:
			kinds = append(kinds, "circle")
		case BackgroundGrid:
			kinds = append(kinds, "grid")
		}
	}
	assert.Equal(t, []string{"rect", "circle", "grid"}, kinds)
}
