package popup

const (
	// AnchorMargin is the gap between the selection and the popup.
	AnchorMargin = 10
	// EdgeMargin is the minimum distance kept from the viewport edges.
	EdgeMargin = 20
)

// Arrow is the side of the popup the pointer arrow is drawn on.
type Arrow string

const (
	ArrowDown Arrow = "down"
	ArrowUp   Arrow = "up"
)

// Rect is a rectangle in viewport coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

type Viewport struct {
	Width   float64
	Height  float64
	ScrollX float64
	ScrollY float64
}

// Placement is the popup position in page coordinates.
type Placement struct {
	Left  float64
	Top   float64
	Arrow Arrow
}

// Anchor places the popup above the selection, offset by the scroll position.
func Anchor(selection Rect, viewport Viewport) Placement {
	return Placement{
		Left:  selection.Left + viewport.ScrollX,
		Top:   selection.Top + viewport.ScrollY - AnchorMargin,
		Arrow: ArrowDown,
	}
}

// Adjust corrects an anchored placement once the popup has been measured.
// A popup overflowing the right edge is shifted left, and one too close to the
// top is moved below the selection with the arrow flipped up.
func Adjust(current Placement, measured Rect, selection Rect, viewport Viewport) Placement {
	next := current
	if measured.Right() > viewport.Width-EdgeMargin {
		next.Left = viewport.ScrollX + viewport.Width - measured.Width - EdgeMargin
	}
	if measured.Top < EdgeMargin {
		next.Top = selection.Bottom() + viewport.ScrollY + AnchorMargin
		next.Arrow = ArrowUp
	}
	return next
}
