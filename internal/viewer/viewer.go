// Package viewer is the pan and zoom state machine of the full-screen photo
// viewer. It knows nothing about rendering; callers feed it input events
// and paint State.
package viewer

import "math"

const (
	// MinScale and MaxScale bound the zoom factor.
	MinScale = 0.5
	MaxScale = 5.0
	// ZoomSensitivity converts a zoom delta (wheel units) to a scale change.
	ZoomSensitivity = 0.001
)

// State is a snapshot of the viewer for rendering.
type State struct {
	Open    bool     `json:"open"`
	Photos  []string `json:"photos"`
	Index   int      `json:"index"`
	Photo   string   `json:"photo,omitempty"`
	Scale   float64  `json:"scale"`
	OffsetX float64  `json:"offset_x"`
	OffsetY float64  `json:"offset_y"`
	Panning bool     `json:"panning"`
}

// Viewer holds the state of one visitor's viewer. The zero value is a
// closed viewer. It is not safe for concurrent use.
type Viewer struct {
	open    bool
	photos  []string
	index   int
	scale   float64
	offsetX float64
	offsetY float64
	panning bool
	anchorX float64
	anchorY float64
}

// New returns a closed viewer.
func New() *Viewer { return &Viewer{} }

// IsOpen reports whether the viewer is showing a photo.
func (v *Viewer) IsOpen() bool { return v.open }

// Open shows photos starting at index, which wraps around the set. An empty
// set leaves the viewer closed.
func (v *Viewer) Open(photos []string, index int) {
	if len(photos) == 0 {
		v.Close()
		return
	}
	v.photos = append([]string(nil), photos...)
	v.open = true
	v.index = wrap(index, len(v.photos))
	v.resetView()
}

// Next moves to the following photo, wrapping to the first.
func (v *Viewer) Next() { v.step(1) }

// Prev moves to the preceding photo, wrapping to the last.
func (v *Viewer) Prev() { v.step(-1) }

func (v *Viewer) step(delta int) {
	if !v.open {
		return
	}
	v.index = wrap(v.index+delta, len(v.photos))
	v.resetView()
}

// Zoom changes the scale by delta*ZoomSensitivity, clamped to
// [MinScale, MaxScale]. The offset is kept. Non-finite deltas are ignored.
func (v *Viewer) Zoom(delta float64) {
	if !v.open || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	v.scale = clamp(v.scale+delta*ZoomSensitivity, MinScale, MaxScale)
}

// Wheel applies a mouse-wheel event; scrolling down (positive deltaY)
// zooms out.
func (v *Viewer) Wheel(deltaY float64) { v.Zoom(-deltaY) }

// PanStart anchors a drag at the pointer position.
func (v *Viewer) PanStart(x, y float64) {
	if !v.open {
		return
	}
	v.panning = true
	v.anchorX = x - v.offsetX
	v.anchorY = y - v.offsetY
}

// PanMove moves the photo with the pointer. It is ignored unless a drag
// is in progress.
func (v *Viewer) PanMove(x, y float64) {
	if !v.open || !v.panning {
		return
	}
	v.offsetX = x - v.anchorX
	v.offsetY = y - v.anchorY
}

// PanEnd finishes a drag.
func (v *Viewer) PanEnd() { v.panning = false }

// Close hides the viewer and forgets its photos.
func (v *Viewer) Close() { *v = Viewer{} }

// State returns a snapshot of the viewer.
func (v *Viewer) State() State {
	if !v.open {
		return State{Scale: 1}
	}
	return State{
		Open:    true,
		Photos:  append([]string(nil), v.photos...),
		Index:   v.index,
		Photo:   v.photos[v.index],
		Scale:   v.scale,
		OffsetX: v.offsetX,
		OffsetY: v.offsetY,
		Panning: v.panning,
	}
}

func (v *Viewer) resetView() {
	v.scale = 1
	v.offsetX, v.offsetY = 0, 0
	v.panning = false
	v.anchorX, v.anchorY = 0, 0
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
