package config

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/younwookim/tilerunner/internal/domain/entity"
)

// TMX import conventions:
//   - the tile layer named "tiles" (or the first tile layer) holds the grid,
//     each tileset tile carries a "tile" string property naming its code
//   - the object group "markers" holds point objects named "player", "goal",
//     "stage" (properties "name", "timeLimit") and one object per enemy, named
//     after its kind, with an optional "facingRight" bool property
const (
	tmxTileLayer    = "tiles"
	tmxMarkerGroup  = "markers"
	tmxTileProperty = "tile"
)

// LoadTMX imports a Tiled map as a stage
func LoadTMX(fsys fs.FS, tmxPath string) (*StageConfig, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth != levelMap.TileHeight {
		return nil, fmt.Errorf("%w: %s: tiles must be square, got %dx%d",
			ErrInvalidStage, tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	cfg := &StageConfig{
		ID:       strings.TrimSuffix(path.Base(tmxPath), path.Ext(tmxPath)),
		TileSize: levelMap.TileWidth,
	}

	layer := findTileLayer(levelMap)
	if layer == nil {
		return nil, fmt.Errorf("%w: %s has no tile layer", ErrInvalidStage, tmxPath)
	}

	rows := make([]string, levelMap.Height)
	for y := 0; y < levelMap.Height; y++ {
		var sb strings.Builder
		for x := 0; x < levelMap.Width; x++ {
			code := entity.TileEmpty
			tile := layer.Tiles[y*levelMap.Width+x]
			if !tile.IsNil() {
				code, err = tmxTileCode(tile)
				if err != nil {
					return nil, fmt.Errorf("%w: %s: col %d row %d: %v", ErrInvalidStage, tmxPath, x, y, err)
				}
			}
			sb.WriteString(legendChar(code))
		}
		rows[y] = sb.String()
	}
	cfg.Tiles = rows

	toTile := func(v float64) int { return entity.TileIndex(v, levelMap.TileWidth) }

	for _, og := range levelMap.ObjectGroups {
		if og.Name != tmxMarkerGroup {
			continue
		}
		for _, o := range og.Objects {
			switch o.Name {
			case "player":
				cfg.PlayerSpawn = TilePosition{Col: toTile(o.X), Row: toTile(o.Y)}
			case "goal":
				cfg.GoalCol = toTile(o.X)
			case "stage":
				cfg.Name = o.Properties.GetString("name")
				cfg.TimeLimit = o.Properties.GetInt("timeLimit")
			default:
				if _, ok := entity.ParseHostileKind(o.Name); !ok {
					return nil, fmt.Errorf("%w: %s: unknown marker %q", ErrInvalidStage, tmxPath, o.Name)
				}
				cfg.Enemies = append(cfg.Enemies, EnemySpawnConfig{
					Type:        o.Name,
					Col:         toTile(o.X),
					Row:         toTile(o.Y),
					FacingRight: o.Properties.GetBool("facingRight"),
				})
			}
		}
	}

	return cfg, nil
}

func findTileLayer(m *tiled.Map) *tiled.Layer {
	for _, layer := range m.Layers {
		if layer.Name == tmxTileLayer {
			return layer
		}
	}
	if len(m.Layers) > 0 {
		return m.Layers[0]
	}
	return nil
}

func tmxTileCode(tile *tiled.LayerTile) (entity.TileCode, error) {
	tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
	if err != nil {
		return entity.TileEmpty, fmt.Errorf("tile %d has no tileset entry", tile.ID)
	}
	name := tilesetTile.Properties.GetString(tmxTileProperty)
	code, ok := entity.ParseTileCode(name)
	if !ok {
		return entity.TileEmpty, fmt.Errorf("tile %d has unknown %q property %q", tile.ID, tmxTileProperty, name)
	}
	return code, nil
}
