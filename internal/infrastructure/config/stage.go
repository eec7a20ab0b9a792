package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/tilerunner/internal/domain/entity"
)

// ErrInvalidStage is wrapped by every stage validation failure
var ErrInvalidStage = errors.New("invalid stage")

// DefaultTileSize is used when a stage does not set one
const DefaultTileSize = 32

// StageConfig is the root config for stage files (JSON, YAML, or imported TMX)
type StageConfig struct {
	ID          string             `json:"id" yaml:"id" jsonschema:"title=Stage id,minLength=1,required"`
	Name        string             `json:"name" yaml:"name" jsonschema:"description=Display name shown on the HUD"`
	TileSize    int                `json:"tileSize,omitempty" yaml:"tileSize,omitempty" jsonschema:"minimum=1,description=Tile edge in pixels (default 32)"`
	Tiles       []string           `json:"tiles" yaml:"tiles" jsonschema:"required,minItems=1,description=Rows of legend characters top to bottom"`
	Legend      map[string]string  `json:"legend,omitempty" yaml:"legend,omitempty" jsonschema:"description=Overrides and additions to the default character legend"`
	PlayerSpawn TilePosition       `json:"playerSpawn" yaml:"playerSpawn" jsonschema:"required"`
	GoalCol     int                `json:"goalCol" yaml:"goalCol" jsonschema:"required,minimum=0,description=Flagpole column"`
	TimeLimit   int                `json:"timeLimit,omitempty" yaml:"timeLimit,omitempty" jsonschema:"minimum=0"`
	FallDeathY  float64            `json:"fallDeathY,omitempty" yaml:"fallDeathY,omitempty" jsonschema:"description=Fatal fall line in pixels (default and maximum level height)"`
	Enemies     []EnemySpawnConfig `json:"enemies,omitempty" yaml:"enemies,omitempty"`
}

// TilePosition addresses a cell in tile units
type TilePosition struct {
	Col int `json:"col" yaml:"col"`
	Row int `json:"row" yaml:"row"`
}

type EnemySpawnConfig struct {
	Type        string `json:"type" yaml:"type" jsonschema:"enum=walker,enum=charger,enum=spiker"`
	Col         int    `json:"col" yaml:"col"`
	Row         int    `json:"row" yaml:"row"`
	FacingRight bool   `json:"facingRight,omitempty" yaml:"facingRight,omitempty"`
}

// DefaultLegend maps stage characters to tile names
var DefaultLegend = map[string]string{
	".": "empty",
	" ": "empty",
	"#": "ground",
	"B": "brick",
	"?": "question_coin",
	"P": "question_powerup",
	"U": "used",
	"[": "pipe_top_left",
	"]": "pipe_top_right",
	"{": "pipe_left",
	"}": "pipe_right",
	"X": "solid",
	"o": "coin",
}

// legendChar returns the default character for a tile code
func legendChar(code entity.TileCode) string {
	switch code {
	case entity.TileEmpty:
		return "."
	case entity.TileGround:
		return "#"
	case entity.TileBrick:
		return "B"
	case entity.TileQuestionCoin:
		return "?"
	case entity.TileQuestionPowerUp:
		return "P"
	case entity.TileUsed:
		return "U"
	case entity.TilePipeTopLeft:
		return "["
	case entity.TilePipeTopRight:
		return "]"
	case entity.TilePipeLeft:
		return "{"
	case entity.TilePipeRight:
		return "}"
	case entity.TileSolid:
		return "X"
	case entity.TileCoinVisible:
		return "o"
	}
	return "."
}

// EffectiveTileSize returns the tile size, falling back to the default
func (s *StageConfig) EffectiveTileSize() int {
	if s.TileSize <= 0 {
		return DefaultTileSize
	}
	return s.TileSize
}

// Cols returns the width of the widest row
func (s *StageConfig) Cols() int {
	cols := 0
	for _, row := range s.Tiles {
		if n := len([]rune(row)); n > cols {
			cols = n
		}
	}
	return cols
}

// Rows returns the number of tile rows
func (s *StageConfig) Rows() int {
	return len(s.Tiles)
}

// Lookup resolves a legend character to a tile code
func (s *StageConfig) Lookup(ch string) (entity.TileCode, bool) {
	name, ok := s.Legend[ch]
	if !ok {
		name, ok = DefaultLegend[ch]
	}
	if !ok {
		return entity.TileEmpty, false
	}
	return entity.ParseTileCode(name)
}

// BuildGrid decodes the tile rows. Short rows are padded with empty cells.
func (s *StageConfig) BuildGrid() (*entity.TileGrid, error) {
	grid := entity.NewTileGrid(s.Cols(), s.Rows(), s.EffectiveTileSize())
	for row, line := range s.Tiles {
		for col, r := range []rune(line) {
			code, ok := s.Lookup(string(r))
			if !ok {
				return nil, fmt.Errorf("%w: stage %s: unknown tile %q at col %d row %d", ErrInvalidStage, s.ID, r, col, row)
			}
			grid.Set(col, row, code)
		}
	}
	return grid, nil
}

// Validate checks the stage for structural errors
func (s *StageConfig) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidStage)
	}
	if len(s.Tiles) == 0 {
		return fmt.Errorf("%w: stage %s has no tiles", ErrInvalidStage, s.ID)
	}
	if s.TileSize < 0 {
		return fmt.Errorf("%w: stage %s has negative tile size", ErrInvalidStage, s.ID)
	}
	if _, err := s.BuildGrid(); err != nil {
		return err
	}

	cols, rows := s.Cols(), s.Rows()
	if s.PlayerSpawn.Col < 0 || s.PlayerSpawn.Col >= cols || s.PlayerSpawn.Row < 0 || s.PlayerSpawn.Row >= rows {
		return fmt.Errorf("%w: stage %s: player spawn (%d,%d) outside %dx%d grid",
			ErrInvalidStage, s.ID, s.PlayerSpawn.Col, s.PlayerSpawn.Row, cols, rows)
	}
	if s.GoalCol <= s.PlayerSpawn.Col || s.GoalCol >= cols {
		return fmt.Errorf("%w: stage %s: goal column %d must be right of spawn and inside the grid", ErrInvalidStage, s.ID, s.GoalCol)
	}
	if s.TimeLimit < 0 {
		return fmt.Errorf("%w: stage %s: negative time limit", ErrInvalidStage, s.ID)
	}
	for i, e := range s.Enemies {
		if _, ok := entity.ParseHostileKind(e.Type); !ok {
			return fmt.Errorf("%w: stage %s: enemy %d has unknown type %q", ErrInvalidStage, s.ID, i, e.Type)
		}
		if e.Col < 0 || e.Col >= cols || e.Row < 0 || e.Row >= rows {
			return fmt.Errorf("%w: stage %s: enemy %d outside grid", ErrInvalidStage, s.ID, i)
		}
	}
	return nil
}

// StageIndex is the root config for stages/index.json
type StageIndex struct {
	Stages []string `json:"stages"`
}
