package entity

// Rect is an axis-aligned bounding box in world pixels
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two rects share interior area.
// Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Right returns the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Body represents the physical body of an entity.
// X, Y is the top-left corner of the AABB. Velocity is in pixels per tick.
type Body struct {
	X, Y   float64
	VX, VY float64
	W, H   float64

	// Grounded is recomputed by every vertical collision pass
	Grounded bool
}

// NewBody creates a body at rest
func NewBody(x, y, w, h float64) Body {
	return Body{X: x, Y: y, W: w, H: h}
}

// AABB returns the bounding box of the body
func (b *Body) AABB() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Left returns the left edge
func (b *Body) Left() float64 { return b.X }

// Right returns the right edge
func (b *Body) Right() float64 { return b.X + b.W }

// Top returns the top edge
func (b *Body) Top() float64 { return b.Y }

// Bottom returns the bottom edge
func (b *Body) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal midpoint
func (b *Body) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical midpoint
func (b *Body) CenterY() float64 { return b.Y + b.H/2 }

// Resize changes the body height while keeping the feet anchored
func (b *Body) Resize(w, h float64) {
	b.Y += b.H - h
	b.X += (b.W - w) / 2
	b.W = w
	b.H = h
}

// Stop zeroes the velocity
func (b *Body) Stop() {
	b.VX = 0
	b.VY = 0
}
