package config

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilerunner/internal/domain/entity"
)

const testStageJSON = `{
  "id": "w1",
  "name": "World 1",
  "tiles": [
    "........",
    "...?B...",
    "........",
    "########"
  ],
  "playerSpawn": {"col": 1, "row": 2},
  "goalCol": 6,
  "timeLimit": 200,
  "enemies": [{"type": "walker", "col": 5, "row": 2}]
}`

const testStageYAML = `
id: w2
name: World 2
tileSize: 16
legend:
  "=": solid
tiles:
  - "......"
  - "..o..."
  - "==####"
playerSpawn: {col: 0, row: 1}
goalCol: 5
enemies:
  - {type: spiker, col: 4, row: 1, facingRight: true}
`

const testStageTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="6" height="3" tilewidth="32" tileheight="32" infinite="0" nextlayerid="3" nextobjectid="5">
 <tileset firstgid="1" name="blocks" tilewidth="32" tileheight="32" tilecount="2" columns="2">
  <tile id="0">
   <properties>
    <property name="tile" value="ground"/>
   </properties>
  </tile>
  <tile id="1">
   <properties>
    <property name="tile" value="brick"/>
   </properties>
  </tile>
 </tileset>
 <layer id="1" name="tiles" width="6" height="3">
  <data encoding="csv">
0,0,0,2,0,0,
0,0,0,0,0,0,
1,1,1,1,1,1
</data>
 </layer>
 <objectgroup id="2" name="markers">
  <object id="1" name="player" x="40" y="40">
   <point/>
  </object>
  <object id="2" name="goal" x="170" y="40">
   <point/>
  </object>
  <object id="3" name="walker" x="130" y="40">
   <point/>
  </object>
  <object id="4" name="stage" x="0" y="0">
   <properties>
    <property name="name" value="Imported"/>
    <property name="timeLimit" type="int" value="120"/>
   </properties>
   <point/>
  </object>
 </objectgroup>
</map>
`

func createTestFS() fstest.MapFS {
	return fstest.MapFS{
		"physics.json":      {Data: []byte(`{"physics": {"gravity": 0.6}, "session": {"lives": 5}}`)},
		"stages/w1.json":    {Data: []byte(testStageJSON)},
		"stages/w2.yaml":    {Data: []byte(testStageYAML)},
		"stages/w3.tmx":     {Data: []byte(testStageTMX)},
		"stages/index.json": {Data: []byte(`{"stages": ["w1", "w2", "w3"]}`)},
	}
}

func TestLoader_LoadPhysics(t *testing.T) {
	loader := NewFSLoader(createTestFS(), "configs")

	cfg, err := loader.LoadPhysics()
	require.NoError(t, err)

	assert.Equal(t, 0.6, cfg.Physics.Gravity)
	assert.Equal(t, 5, cfg.Session.Lives)

	// Omitted fields keep their defaults
	def := DefaultPhysics()
	assert.Equal(t, def.Physics.MaxFallSpeed, cfg.Physics.MaxFallSpeed)
	assert.Equal(t, def.Jump.CoyoteFrames, cfg.Jump.CoyoteFrames)
	assert.Equal(t, def.Collision.EdgeInset, cfg.Collision.EdgeInset)
}

func TestLoader_LoadPhysics_Missing(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{}, "configs")

	_, err := loader.LoadPhysics()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoader_LoadStage_JSON(t *testing.T) {
	loader := NewFSLoader(createTestFS(), "configs")

	cfg, err := loader.LoadStage("w1")
	require.NoError(t, err)

	assert.Equal(t, "w1", cfg.ID)
	assert.Equal(t, "World 1", cfg.Name)
	assert.Equal(t, DefaultTileSize, cfg.EffectiveTileSize())
	assert.Equal(t, 8, cfg.Cols())
	assert.Equal(t, 4, cfg.Rows())
	assert.Equal(t, TilePosition{Col: 1, Row: 2}, cfg.PlayerSpawn)
	assert.Equal(t, 6, cfg.GoalCol)
	assert.Equal(t, 200, cfg.TimeLimit)
	require.Len(t, cfg.Enemies, 1)
	assert.Equal(t, "walker", cfg.Enemies[0].Type)

	grid, err := cfg.BuildGrid()
	require.NoError(t, err)
	assert.Equal(t, entity.TileQuestionCoin, grid.Get(3, 1))
	assert.Equal(t, entity.TileBrick, grid.Get(4, 1))
	assert.Equal(t, entity.TileGround, grid.Get(0, 3))
}

func TestLoader_LoadStage_YAML(t *testing.T) {
	loader := NewFSLoader(createTestFS(), "configs")

	cfg, err := loader.LoadStage("w2")
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.EffectiveTileSize())
	require.Len(t, cfg.Enemies, 1)
	assert.True(t, cfg.Enemies[0].FacingRight)

	grid, err := cfg.BuildGrid()
	require.NoError(t, err)
	assert.Equal(t, entity.TileSolid, grid.Get(0, 2), "legend override")
	assert.Equal(t, entity.TileCoinVisible, grid.Get(2, 1))
}

func TestLoader_LoadStage_TMX(t *testing.T) {
	loader := NewFSLoader(createTestFS(), "configs")

	cfg, err := loader.LoadStage("w3")
	require.NoError(t, err)

	assert.Equal(t, "w3", cfg.ID)
	assert.Equal(t, "Imported", cfg.Name)
	assert.Equal(t, 120, cfg.TimeLimit)
	assert.Equal(t, 32, cfg.TileSize)
	assert.Equal(t, TilePosition{Col: 1, Row: 1}, cfg.PlayerSpawn)
	assert.Equal(t, 5, cfg.GoalCol)
	require.Len(t, cfg.Enemies, 1)
	assert.Equal(t, EnemySpawnConfig{Type: "walker", Col: 4, Row: 1}, cfg.Enemies[0])

	grid, err := cfg.BuildGrid()
	require.NoError(t, err)
	assert.Equal(t, entity.TileBrick, grid.Get(3, 0))
	assert.Equal(t, entity.TileGround, grid.Get(5, 2))
	assert.Equal(t, entity.TileEmpty, grid.Get(0, 0))
}

func TestLoader_LoadStage_NotFound(t *testing.T) {
	loader := NewFSLoader(createTestFS(), "configs")

	_, err := loader.LoadStage("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoader_LoadIndex(t *testing.T) {
	t.Run("from index file", func(t *testing.T) {
		loader := NewFSLoader(createTestFS(), "configs")

		names, err := loader.LoadIndex()
		require.NoError(t, err)
		assert.Equal(t, []string{"w1", "w2", "w3"}, names)
	})

	t.Run("directory listing fallback", func(t *testing.T) {
		fsys := createTestFS()
		delete(fsys, "stages/index.json")
		fsys["stages/readme.txt"] = &fstest.MapFile{Data: []byte("ignored")}
		loader := NewFSLoader(fsys, "configs")

		names, err := loader.LoadIndex()
		require.NoError(t, err)
		assert.Equal(t, []string{"w1", "w2", "w3"}, names)
	})
}

func TestLoader_LoadAll(t *testing.T) {
	loader := NewFSLoader(createTestFS(), "configs")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	assert.NotNil(t, cfg.Physics)
	assert.Len(t, cfg.Stages, 3)
}

func TestCatalog(t *testing.T) {
	loader := NewFSLoader(createTestFS(), "configs")
	catalog := NewCatalog(loader, []string{"w1", "w2"})

	assert.Equal(t, 2, catalog.Count())
	assert.Equal(t, "w2", catalog.Name(1))
	assert.Equal(t, "", catalog.Name(5))

	cfg, err := catalog.Load(1)
	require.NoError(t, err)
	assert.Equal(t, "w2", cfg.ID)

	_, err = catalog.Load(2)
	assert.True(t, errors.Is(err, ErrInvalidStage))
}

func TestLoader_EmbeddedConfigs(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Stages)

	for _, name := range cfg.Stages {
		_, err := loader.LoadStage(name)
		assert.NoError(t, err, name)
	}
}
