package viewer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var photos = []string{"images/A_I_1_1.jpg", "images/A_I_1_2.jpg", "images/A_I_1_3.jpg"}

func TestNextWrapsAround(t *testing.T) {
	v := New()
	v.Open(photos, 0)
	for i := 0; i < 3; i++ {
		v.Next()
	}
	assert.Equal(t, 0, v.State().Index)

	v.Prev()
	assert.Equal(t, 2, v.State().Index)
	assert.Equal(t, photos[2], v.State().Photo)
}

func TestOpenWrapsIndex(t *testing.T) {
	v := New()
	v.Open(photos, 4)
	assert.Equal(t, 1, v.State().Index)
	v.Open(photos, -1)
	assert.Equal(t, 2, v.State().Index)
}

func TestOpenResetsView(t *testing.T) {
	v := New()
	v.Open(photos, 0)
	v.Zoom(500)
	v.PanStart(10, 10)
	v.PanMove(40, 30)

	v.Open(photos, 1)
	s := v.State()
	assert.Equal(t, 1.0, s.Scale)
	assert.Zero(t, s.OffsetX)
	assert.Zero(t, s.OffsetY)
	assert.False(t, s.Panning)
}

func TestZoomClamps(t *testing.T) {
	v := New()
	v.Open(photos, 0)

	v.Zoom(10000)
	assert.Equal(t, MaxScale, v.State().Scale)

	v.Zoom(-10000)
	assert.Equal(t, MinScale, v.State().Scale)

	v.Zoom(500)
	assert.InDelta(t, 1.0, v.State().Scale, 1e-9)
}

func TestZoomIgnoresNonFiniteDelta(t *testing.T) {
	v := New()
	v.Open(photos, 0)
	v.Zoom(500)

	for _, d := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		v.Zoom(d)
		v.Wheel(d)
		assert.InDelta(t, 1.5, v.State().Scale, 1e-9, "delta %v", d)
	}
}

func TestWheelZoomsOutOnScrollDown(t *testing.T) {
	v := New()
	v.Open(photos, 0)
	v.Wheel(100)
	assert.InDelta(t, 0.9, v.State().Scale, 1e-9)
	v.Wheel(-300)
	assert.InDelta(t, 1.2, v.State().Scale, 1e-9)
}

func TestNavigationResetsZoomAndOffset(t *testing.T) {
	v := New()
	v.Open(photos, 0)
	v.Zoom(2000)
	v.PanStart(0, 0)
	v.PanMove(15, -5)
	v.PanEnd()

	v.Next()
	s := v.State()
	assert.Equal(t, 1.0, s.Scale)
	assert.Zero(t, s.OffsetX)
	assert.Zero(t, s.OffsetY)
}

func TestPanTracksAnchor(t *testing.T) {
	v := New()
	v.Open(photos, 0)

	v.PanStart(100, 100)
	v.PanMove(130, 90)
	s := v.State()
	assert.True(t, s.Panning)
	assert.Equal(t, 30.0, s.OffsetX)
	assert.Equal(t, -10.0, s.OffsetY)
	v.PanEnd()

	// A second drag continues from the current offset.
	v.PanStart(0, 0)
	v.PanMove(5, 5)
	s = v.State()
	assert.Equal(t, 35.0, s.OffsetX)
	assert.Equal(t, -5.0, s.OffsetY)

	v.PanEnd()
	v.PanMove(500, 500)
	assert.Equal(t, 35.0, v.State().OffsetX)
}

func TestPanMoveBeforeStartIsIgnored(t *testing.T) {
	v := New()
	v.Open(photos, 0)
	v.PanMove(50, 50)
	s := v.State()
	assert.Zero(t, s.OffsetX)
	assert.Zero(t, s.OffsetY)
	assert.False(t, s.Panning)
}

func TestClosedViewerIgnoresInput(t *testing.T) {
	v := New()
	v.Next()
	v.Prev()
	v.Zoom(1000)
	v.PanStart(1, 1)
	v.PanMove(5, 5)

	s := v.State()
	assert.False(t, s.Open)
	assert.Equal(t, 1.0, s.Scale)
	assert.Zero(t, s.OffsetX)
}

func TestClose(t *testing.T) {
	v := New()
	v.Open(photos, 2)
	v.Close()
	assert.False(t, v.IsOpen())

	v.Next()
	assert.False(t, v.State().Open)
}

func TestOpenEmptySetStaysClosed(t *testing.T) {
	v := New()
	v.Open(nil, 0)
	assert.False(t, v.IsOpen())
}

func TestStateIsACopy(t *testing.T) {
	v := New()
	v.Open(photos, 0)
	s := v.State()
	require.Len(t, s.Photos, 3)
	s.Photos[0] = "changed"
	assert.Equal(t, photos[0], v.State().Photos[0])
}
