package session

import (
	"github.com/younwookim/tilerunner/internal/application/state"
	"github.com/younwookim/tilerunner/internal/application/system"
	"github.com/younwookim/tilerunner/internal/domain/entity"
)

// RuntimeState is the session-wide game state. Score, coins and lives carry
// across stages; everything is reset on a new game.
type RuntimeState struct {
	State        state.GameState
	Score        int
	Coins        int
	Lives        int
	TimeLeft     int
	StageIndex   int
	StageID      string
	StageName    string
	CameraOffset float64
	Completed    bool
	HighScore    int
}

// AvatarView is the drawable avatar pose
type AvatarView struct {
	X, Y, W, H   float64
	Form         entity.Form
	State        entity.AvatarState
	Facing       int
	Grounded     bool
	Invulnerable bool
	// Blink toggles while invulnerable so the sink can flash the sprite
	Blink bool
}

// HostileView is the drawable pose of one hostile
type HostileView struct {
	ID         entity.EntityID
	Kind       entity.HostileKind
	X, Y, W, H float64
	Dir        int
	Squished   bool
	Aggro      bool
}

// EffectView is the drawable pose of one effect
type EffectView struct {
	Kind       entity.EffectKind
	X, Y, W, H float64
	Value      int
	Tile       entity.TileRef
}

// Snapshot is a read-only copy of everything the presentation sink draws.
// It shares no memory with the running world.
type Snapshot struct {
	RuntimeState

	Tick     int
	TileSize int
	Rows     int
	GoalX    float64
	LevelW   float64

	// FirstCol is the grid column of Columns[0]
	FirstCol int
	Columns  [][]entity.TileCode

	Avatar   AvatarView
	Hostiles []HostileView
	Effects  []EffectView
}

// Tile returns the snapshot tile at a grid cell, EMPTY outside the copied columns
func (s *Snapshot) Tile(col, row int) entity.TileCode {
	i := col - s.FirstCol
	if i < 0 || i >= len(s.Columns) || row < 0 || row >= len(s.Columns[i]) {
		return entity.TileEmpty
	}
	return s.Columns[i][row]
}

// snapshotWorld copies the visible part of a world into snap
func snapshotWorld(snap *Snapshot, w *system.World) {
	grid := w.Grid
	ts := grid.TileSize()
	snap.TileSize = ts
	snap.Rows = grid.Rows()
	snap.GoalX = w.Avatars.GoalX()
	snap.LevelW = grid.PixelWidth()

	first := grid.TileIndexOf(w.Camera.Offset())
	last := grid.TileIndexOf(w.Camera.Right())
	if first < 0 {
		first = 0
	}
	if last >= grid.Cols() {
		last = grid.Cols() - 1
	}
	snap.FirstCol = first
	for col := first; col <= last; col++ {
		snap.Columns = append(snap.Columns, grid.Column(col))
	}

	a := w.Avatar
	snap.Avatar = AvatarView{
		X:            a.X,
		Y:            a.Y,
		W:            a.W,
		H:            a.H,
		Form:         a.Form,
		State:        a.State,
		Facing:       a.Facing,
		Grounded:     a.Grounded,
		Invulnerable: a.IsInvulnerable(),
		Blink:        a.IsInvulnerable() && (a.Invulnerable.Remaining()/4)%2 == 0,
	}

	for _, h := range w.Entities.Hostiles.Items() {
		if h.Removed {
			continue
		}
		snap.Hostiles = append(snap.Hostiles, HostileView{
			ID:       h.ID,
			Kind:     h.Kind,
			X:        h.X,
			Y:        h.Y,
			W:        h.W,
			H:        h.H,
			Dir:      h.Dir,
			Squished: h.Squished,
			Aggro:    h.Aggro,
		})
	}

	for _, e := range w.Entities.Effects.Items() {
		if e.Dead {
			continue
		}
		snap.Effects = append(snap.Effects, EffectView{
			Kind:  e.Kind,
			X:     e.X,
			Y:     e.Y,
			W:     e.W,
			H:     e.H,
			Value: e.Value,
			Tile:  e.Tile,
		})
	}
}
