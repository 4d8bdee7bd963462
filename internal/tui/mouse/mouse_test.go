package mouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	tests := []struct {
		name   string
		x, y   int
		expect bool
	}{
		{"inside", 15, 30, true},
		{"top-left corner", 10, 20, true},
		{"right edge exclusive", 40, 30, false},
		{"bottom edge exclusive", 15, 60, false},
		{"left of rect", 9, 30, false},
		{"above rect", 15, 19, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, r.Contains(tt.x, tt.y))
		})
	}

	assert.False(t, Rect{X: 5, Y: 5, W: 0, H: 10}.Contains(5, 5), "zero width")
}

func TestHitMap(t *testing.T) {
	hm := NewHitMap()
	hm.Add("bottom", Rect{X: 0, Y: 0, W: 20, H: 20}, "bottom-data")
	hm.AddRect("top", 5, 5, 10, 10, "top-data")

	r := hm.Test(7, 7)
	require.NotNil(t, r)
	assert.Equal(t, "top", r.ID, "the last added region wins")
	assert.Equal(t, "top-data", r.Data)

	r = hm.Test(2, 2)
	require.NotNil(t, r)
	assert.Equal(t, "bottom", r.ID)
	assert.Nil(t, hm.Test(50, 50))

	regions := hm.Regions()
	regions[0].ID = "mutated"
	assert.Equal(t, "bottom", hm.Regions()[0].ID, "Regions returns a copy")

	hm.Clear()
	assert.Nil(t, hm.Test(7, 7))
}

func TestHandlerDoubleClick(t *testing.T) {
	now := time.Unix(0, 0)
	h := NewHandler()
	h.SetClock(func() time.Time { return now })
	h.HitMap.Add("card", Rect{X: 0, Y: 0, W: 10, H: 4}, 0)
	h.HitMap.Add("card", Rect{X: 10, Y: 0, W: 10, H: 4}, 1)

	assert.False(t, h.HandleClick(1, 1).IsDoubleClick)
	now = now.Add(100 * time.Millisecond)
	assert.True(t, h.HandleClick(2, 2).IsDoubleClick)
	now = now.Add(100 * time.Millisecond)
	assert.False(t, h.HandleClick(2, 2).IsDoubleClick, "the click after a double starts over")

	now = now.Add(100 * time.Millisecond)
	assert.False(t, h.HandleClick(12, 1).IsDoubleClick, "another card is a new first click")

	now = now.Add(time.Second)
	res := h.HandleClick(12, 1)
	assert.False(t, res.IsDoubleClick, "clicks further apart than the window")
	require.NotNil(t, res.Region)
	assert.Equal(t, 1, res.Region.Data)

	assert.Nil(t, h.HandleClick(50, 50).Region)
}
