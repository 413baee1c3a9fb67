package popup

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Selection is the text the user selected and where it is on screen.
type Selection struct {
	Text string
	Rect Rect
}

// Node identifies an event target in the host document.
type Node string

// Element is the popup as mounted into the host document.
type Element struct {
	ID      string
	Left    float64
	Top     float64
	Arrow   Arrow
	Visible bool
	HTML    template.HTML
}

// Document is the host page the controller draws into.
type Document interface {
	// Selection returns the current selection, or false when nothing is selected.
	Selection() (Selection, bool)
	Viewport() Viewport
	Mount(el *Element)
	Update(el *Element)
	Remove(el *Element)
	// Measure returns the rendered bounds of a mounted element in viewport coordinates.
	Measure(el *Element) Rect
	// Contains reports whether target is inside the element's subtree.
	Contains(el *Element, target Node) bool
}

// MemoryDocument is a headless Document. Popups have a fixed rendered size.
// A popup with a down arrow is drawn above its anchor, so its measured top is
// its anchor minus its height.
type MemoryDocument struct {
	mu        sync.Mutex
	selection *Selection
	viewport  Viewport
	size      Rect
	mounted   []Element
}

func NewMemoryDocument(viewport Viewport, popupWidth float64, popupHeight float64) *MemoryDocument {
	return &MemoryDocument{
		viewport: viewport,
		size:     Rect{Width: popupWidth, Height: popupHeight},
	}
}

// Select replaces the current selection. An empty text clears it.
func (d *MemoryDocument) Select(text string, rect Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if text == "" {
		d.selection = nil
		return
	}
	d.selection = &Selection{Text: text, Rect: rect}
}

func (d *MemoryDocument) Scroll(x float64, y float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.viewport.ScrollX = x
	d.viewport.ScrollY = y
}

func (d *MemoryDocument) Selection() (Selection, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.selection == nil {
		return Selection{}, false
	}
	return *d.selection, true
}

func (d *MemoryDocument) Viewport() Viewport {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.viewport
}

func (d *MemoryDocument) Mount(el *Element) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.mounted = append(d.mounted, *el)
}

func (d *MemoryDocument) Update(el *Element) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.indexLocked(el.ID); i >= 0 {
		d.mounted[i] = *el
	}
}

func (d *MemoryDocument) Remove(el *Element) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if i := d.indexLocked(el.ID); i >= 0 {
		d.mounted = append(d.mounted[:i], d.mounted[i+1:]...)
	}
}

func (d *MemoryDocument) Measure(el *Element) Rect {
	d.mu.Lock()
	defer d.mu.Unlock()

	top := el.Top - d.viewport.ScrollY
	if el.Arrow != ArrowUp {
		top -= d.size.Height
	}
	return Rect{
		Left:   el.Left - d.viewport.ScrollX,
		Top:    top,
		Width:  d.size.Width,
		Height: d.size.Height,
	}
}

// Contains treats the element ID as the root of a path, so "popup-1/button"
// is inside "popup-1".
func (d *MemoryDocument) Contains(el *Element, target Node) bool {
	return string(target) == el.ID || strings.HasPrefix(string(target), el.ID+"/")
}

// Elements returns copies of the mounted popups in mount order.
func (d *MemoryDocument) Elements() []Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]Element(nil), d.mounted...)
}

// HTML returns the markup of every mounted popup.
func (d *MemoryDocument) HTML() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var sb strings.Builder
	for _, el := range d.mounted {
		class := "smart-translator-popup"
		if el.Visible {
			class += " show"
		}
		fmt.Fprintf(&sb, "<div id=%q class=%q data-arrow=%q style=\"left: %.0fpx; top: %.0fpx;\">\n%s\n</div>\n",
			el.ID, class, el.Arrow, el.Left, el.Top, el.HTML)
	}
	return sb.String()
}

func (d *MemoryDocument) indexLocked(id string) int {
	for i, el := range d.mounted {
		if el.ID == id {
			return i
		}
	}
	return -1
}
