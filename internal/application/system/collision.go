package system

import (
	"github.com/younwookim/tilerunner/internal/domain/entity"
	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

// edgeEpsilon keeps an edge that exactly touches a tile boundary out of the
// next tile when sampling a leading edge
const edgeEpsilon = 0.001

// Contact reports what a body touched during one resolution
type Contact struct {
	HitWallLeft  bool
	HitWallRight bool
	HitCeiling   bool
	Grounded     bool

	// Struck lists the distinct ceiling tiles hit while moving up
	Struck []entity.TileRef
}

// HitWall returns true if either horizontal side was blocked
func (c Contact) HitWall() bool {
	return c.HitWallLeft || c.HitWallRight
}

// CeilingFunc is invoked once per struck ceiling tile, inside the vertical pass
type CeilingFunc func(col, row int)

// CollisionResolver moves bodies through the tile grid one axis at a time
type CollisionResolver struct {
	grid  *entity.TileGrid
	inset float64
}

// NewCollisionResolver creates a resolver over the stage grid
func NewCollisionResolver(cfg *config.PhysicsConfig, grid *entity.TileGrid) *CollisionResolver {
	return &CollisionResolver{
		grid:  grid,
		inset: cfg.Collision.EdgeInset,
	}
}

// Grid returns the grid the resolver collides against
func (r *CollisionResolver) Grid() *entity.TileGrid {
	return r.grid
}

// Resolve integrates the body's velocity and pushes it out of solid tiles.
// The horizontal pass runs first; body.Grounded is recomputed by the vertical pass.
func (r *CollisionResolver) Resolve(body *entity.Body, onCeiling CeilingFunc) Contact {
	var c Contact
	r.moveX(body, &c)
	r.moveY(body, &c, onCeiling)
	return c
}

// moveX applies vx and snaps the leading edge out of walls
func (r *CollisionResolver) moveX(body *entity.Body, c *Contact) {
	body.X += body.VX
	if body.VX == 0 {
		return
	}

	ts := float64(r.grid.TileSize())
	rowStart, rowEnd := r.span(body.Y, body.H)

	if body.VX > 0 {
		col := r.grid.TileIndexOf(body.X + body.W - edgeEpsilon)
		if r.anySolidInColumn(col, rowStart, rowEnd) {
			body.X = float64(col)*ts - body.W
			body.VX = 0
			c.HitWallRight = true
		}
		return
	}

	col := r.grid.TileIndexOf(body.X)
	if r.anySolidInColumn(col, rowStart, rowEnd) {
		body.X = float64(col+1) * ts
		body.VX = 0
		c.HitWallLeft = true
	}
}

// moveY applies vy, lands on floors or bonks ceilings
func (r *CollisionResolver) moveY(body *entity.Body, c *Contact, onCeiling CeilingFunc) {
	body.Grounded = false
	body.Y += body.VY

	ts := float64(r.grid.TileSize())
	colStart, colEnd := r.span(body.X, body.W)

	if body.VY >= 0 {
		row := r.grid.TileIndexOf(body.Y + body.H)
		if r.anySolidInRow(row, colStart, colEnd) {
			body.Y = float64(row)*ts - body.H
			body.VY = 0
			body.Grounded = true
			c.Grounded = true
		}
		return
	}

	row := r.grid.TileIndexOf(body.Y)
	for col := colStart; col <= colEnd; col++ {
		if r.grid.IsSolid(col, row) {
			c.Struck = append(c.Struck, entity.TileRef{Col: col, Row: row})
		}
	}
	if len(c.Struck) == 0 {
		return
	}

	body.Y = float64(row+1) * ts
	body.VY = 0
	c.HitCeiling = true

	if onCeiling != nil {
		for _, ref := range c.Struck {
			onCeiling(ref.Col, ref.Row)
		}
	}
}

// span returns the tile indices covered by [start+inset, start+size-inset]
func (r *CollisionResolver) span(start, size float64) (int, int) {
	lo := start + r.inset
	hi := start + size - r.inset - edgeEpsilon
	if hi < lo {
		mid := start + size/2
		lo, hi = mid, mid
	}
	return r.grid.TileIndexOf(lo), r.grid.TileIndexOf(hi)
}

func (r *CollisionResolver) anySolidInColumn(col, rowStart, rowEnd int) bool {
	for row := rowStart; row <= rowEnd; row++ {
		if r.grid.IsSolid(col, row) {
			return true
		}
	}
	return false
}

func (r *CollisionResolver) anySolidInRow(row, colStart, colEnd int) bool {
	for col := colStart; col <= colEnd; col++ {
		if r.grid.IsSolid(col, row) {
			return true
		}
	}
	return false
}

func sign(x float64) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
