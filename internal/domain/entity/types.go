package entity

import "math"

// EntityID is a stable handle for a spawned entity
type EntityID uint64

// TileCode identifies a cell's type in the TileGrid
type TileCode int

const (
	TileEmpty TileCode = iota
	TileGround
	TileBrick
	TileQuestionCoin
	TileQuestionPowerUp
	TileUsed
	TilePipeTopLeft
	TilePipeTopRight
	TilePipeLeft
	TilePipeRight
	TileSolid
	TileCoinVisible

	tileCodeCount
)

// TileTraits holds the static properties of a tile code
type TileTraits struct {
	Name  string
	Solid bool
}

var tileTraits = [tileCodeCount]TileTraits{
	TileEmpty:           {Name: "empty"},
	TileGround:          {Name: "ground", Solid: true},
	TileBrick:           {Name: "brick", Solid: true},
	TileQuestionCoin:    {Name: "question_coin", Solid: true},
	TileQuestionPowerUp: {Name: "question_powerup", Solid: true},
	TileUsed:            {Name: "used", Solid: true},
	TilePipeTopLeft:     {Name: "pipe_top_left", Solid: true},
	TilePipeTopRight:    {Name: "pipe_top_right", Solid: true},
	TilePipeLeft:        {Name: "pipe_left", Solid: true},
	TilePipeRight:       {Name: "pipe_right", Solid: true},
	TileSolid:           {Name: "solid", Solid: true},
	TileCoinVisible:     {Name: "coin"},
}

// Traits returns the traits of the code. Unknown codes behave as empty.
func (c TileCode) Traits() TileTraits {
	if c < 0 || c >= tileCodeCount {
		return tileTraits[TileEmpty]
	}
	return tileTraits[c]
}

// String returns the tile code name
func (c TileCode) String() string {
	if c < 0 || c >= tileCodeCount {
		return "unknown"
	}
	return tileTraits[c].Name
}

// IsSolid reports whether bodies collide with this code
func (c TileCode) IsSolid() bool {
	return c.Traits().Solid
}

// ParseTileCode maps a tile name back to its code
func ParseTileCode(name string) (TileCode, bool) {
	for code, traits := range tileTraits {
		if traits.Name == name {
			return TileCode(code), true
		}
	}
	return TileEmpty, false
}

// TileRef addresses a single grid cell
type TileRef struct {
	Col, Row int
}

// TileGrid is the mutable tile layer of a stage.
// Cells are stored row-major.
type TileGrid struct {
	cols, rows int
	tileSize   int
	cells      []TileCode
}

// NewTileGrid creates an empty grid
func NewTileGrid(cols, rows, tileSize int) *TileGrid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &TileGrid{
		cols:     cols,
		rows:     rows,
		tileSize: tileSize,
		cells:    make([]TileCode, cols*rows),
	}
}

// Cols returns the grid width in tiles
func (g *TileGrid) Cols() int { return g.cols }

// Rows returns the grid height in tiles
func (g *TileGrid) Rows() int { return g.rows }

// TileSize returns the edge length of a tile in pixels
func (g *TileGrid) TileSize() int { return g.tileSize }

// PixelWidth returns the level width in pixels
func (g *TileGrid) PixelWidth() float64 { return float64(g.cols * g.tileSize) }

// PixelHeight returns the level height in pixels
func (g *TileGrid) PixelHeight() float64 { return float64(g.rows * g.tileSize) }

// Get returns the tile at the given tile coordinates.
// Columns outside the grid are open space, rows below it are ground.
func (g *TileGrid) Get(col, row int) TileCode {
	if col < 0 || col >= g.cols || row < 0 {
		return TileEmpty
	}
	if row >= g.rows {
		return TileGround
	}
	return g.cells[row*g.cols+col]
}

// Set writes a tile. Out of range writes are ignored.
func (g *TileGrid) Set(col, row int, code TileCode) {
	if !g.InBounds(col, row) {
		return
	}
	g.cells[row*g.cols+col] = code
}

// InBounds reports whether the cell is stored in the grid
func (g *TileGrid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// IsSolid checks if the tile at tile coordinates is solid
func (g *TileGrid) IsSolid(col, row int) bool {
	return g.Get(col, row).IsSolid()
}

// IsSolidAt checks if the tile under the world point is solid
func (g *TileGrid) IsSolidAt(x, y float64) bool {
	return g.IsSolid(g.TileIndexOf(x), g.TileIndexOf(y))
}

// TileIndexOf converts a world coordinate to a tile index.
// Every grid/world conversion in the engine goes through TileIndex.
func (g *TileGrid) TileIndexOf(v float64) int {
	return TileIndex(v, g.tileSize)
}

// TileIndex converts a pixel coordinate to a tile index for the tile size,
// flooring so negative coordinates land in negative tiles
func TileIndex(v float64, tileSize int) int {
	return int(math.Floor(v / float64(tileSize)))
}

// Count returns how many cells hold the code
func (g *TileGrid) Count(code TileCode) int {
	n := 0
	for _, c := range g.cells {
		if c == code {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid
func (g *TileGrid) Clone() *TileGrid {
	cells := make([]TileCode, len(g.cells))
	copy(cells, g.cells)
	return &TileGrid{cols: g.cols, rows: g.rows, tileSize: g.tileSize, cells: cells}
}

// Column returns a copy of one column, top to bottom
func (g *TileGrid) Column(col int) []TileCode {
	out := make([]TileCode, g.rows)
	for row := range out {
		out[row] = g.Get(col, row)
	}
	return out
}
