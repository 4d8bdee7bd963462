// Package mouse maps terminal click coordinates to named screen regions
// and tells single clicks from double clicks.
package mouse

import "time"

// DefaultDoubleClick is the click gap used when none is configured
const DefaultDoubleClick = 400 * time.Millisecond

// Rect is a screen area; the right and bottom edges are exclusive
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a clickable area with an identifier and optional payload
type Region struct {
	ID   string
	Rect Rect
	Data interface{}
}

// HitMap holds the regions drawn by the last render
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region. Later regions win where regions overlap.
func (h *HitMap) Add(id string, r Rect, data interface{}) {
	h.regions = append(h.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect is Add with the rectangle spelled out
func (h *HitMap) AddRect(id string, x, y, w, hgt int, data interface{}) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: hgt}, data)
}

// Test returns the topmost region containing (x, y), or nil
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear drops every region, call it before re-rendering
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns a copy of the registered regions
func (h *HitMap) Regions() []Region {
	out := make([]Region, len(h.regions))
	copy(out, h.regions)
	return out
}

// ClickResult describes a handled click
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler tracks clicks against a hit map
type Handler struct {
	HitMap *HitMap
	// Window is the longest gap between the clicks of a double-click
	Window time.Duration

	now       func() time.Time
	lastID    string
	lastData  interface{}
	lastClick time.Time
}

// NewHandler returns a handler with the default double-click window
func NewHandler() *Handler {
	return &Handler{
		HitMap: NewHitMap(),
		Window: DefaultDoubleClick,
		now:    time.Now,
	}
}

// SetClock replaces the time source
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}

// HandleClick resolves a click. A second click on the same region and
// payload within Window is a double click; the click after a double click
// starts over.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	if region == nil {
		h.reset()
		return ClickResult{}
	}

	now := h.now()
	double := !h.lastClick.IsZero() &&
		h.lastID == region.ID &&
		h.lastData == region.Data &&
		now.Sub(h.lastClick) <= h.Window

	if double {
		h.reset()
	} else {
		h.lastID = region.ID
		h.lastData = region.Data
		h.lastClick = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

func (h *Handler) reset() {
	h.lastID = ""
	h.lastData = nil
	h.lastClick = time.Time{}
}
