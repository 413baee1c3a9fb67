package popup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnchor(t *testing.T) {
	got := Anchor(Rect{Left: 100, Top: 200, Width: 40, Height: 16}, Viewport{Width: 1024, Height: 768, ScrollX: 5, ScrollY: 300})
	assert.Equal(t, Placement{Left: 105, Top: 490, Arrow: ArrowDown}, got)
}

func TestAdjust(t *testing.T) {
	viewport := Viewport{Width: 1000, Height: 800, ScrollY: 50}
	selection := Rect{Left: 900, Top: 30, Width: 50, Height: 20}

	tests := []struct {
		name     string
		current  Placement
		measured Rect
		want     Placement
	}{
		{
			name:     "fits in the viewport",
			current:  Placement{Left: 100, Top: 450, Arrow: ArrowDown},
			measured: Rect{Left: 100, Top: 300, Width: 300, Height: 150},
			want:     Placement{Left: 100, Top: 450, Arrow: ArrowDown},
		},
		{
			name:     "overflows the right edge",
			current:  Placement{Left: 900, Top: 450, Arrow: ArrowDown},
			measured: Rect{Left: 900, Top: 300, Width: 300, Height: 150},
			want:     Placement{Left: 680, Top: 450, Arrow: ArrowDown},
		},
		{
			name:     "too close to the top flips below the selection",
			current:  Placement{Left: 100, Top: 70, Arrow: ArrowDown},
			measured: Rect{Left: 100, Top: -130, Width: 300, Height: 150},
			want:     Placement{Left: 100, Top: 110, Arrow: ArrowUp},
		},
		{
			name:     "both corrections",
			current:  Placement{Left: 900, Top: 70, Arrow: ArrowDown},
			measured: Rect{Left: 900, Top: 5, Width: 300, Height: 150},
			want:     Placement{Left: 680, Top: 110, Arrow: ArrowUp},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Adjust(tc.current, tc.measured, selection, viewport))
		})
	}
}
