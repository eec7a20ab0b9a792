package main

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilerunner/internal/application/replay"
	"github.com/younwookim/tilerunner/internal/application/session"
	"github.com/younwookim/tilerunner/internal/application/state"
	"github.com/younwookim/tilerunner/internal/application/system"
	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

// createBundledMachine creates a machine over the embedded configs
func createBundledMachine(t *testing.T) *session.Machine {
	t.Helper()
	opts := &options{}
	cfg, catalog, err := opts.loadGame()
	require.NoError(t, err)
	return session.NewMachine(cfg.Physics, catalog)
}

// runCmd executes the root command and returns stdout
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

// SimulationResult contains the results of a replay simulation
type SimulationResult struct {
	VYValues      []float64
	Positions     []struct{ X, Y float64 }
	FinalFrame    int
	VYFluctuation bool
}

// simulateWithReplay runs the machine on replayed inputs, sampling the avatar
func simulateWithReplay(t *testing.T, replayer *replay.Replayer, m *session.Machine) SimulationResult {
	t.Helper()
	result := SimulationResult{
		VYValues:  make([]float64, 0, replayer.TotalFrames()),
		Positions: make([]struct{ X, Y float64 }, 0, replayer.TotalFrames()),
	}

	for {
		input, ok := replayer.GetInput()
		if !ok {
			break
		}
		require.NoError(t, m.Tick(input))

		a := m.World().Avatar
		result.VYValues = append(result.VYValues, a.VY)
		result.Positions = append(result.Positions, struct{ X, Y float64 }{a.X, a.Y})
		result.FinalFrame = replayer.CurrentFrame()
	}

	for _, vy := range result.VYValues {
		if vy != result.VYValues[0] {
			result.VYFluctuation = true
			break
		}
	}
	return result
}

func TestReplayIdleAvatar_VelocityStability(t *testing.T) {
	m := createBundledMachine(t)
	require.NoError(t, m.NewGame(0))
	startY := m.World().Avatar.Y

	result := simulateWithReplay(t, replay.NewReplayer(replay.CreateTestReplayData(120, 0)), m)

	t.Logf("Simulated %d frames", result.FinalFrame)
	assert.Equal(t, 120, result.FinalFrame)
	assert.False(t, result.VYFluctuation, "VY should not fluctuate when the avatar is idle on ground")
	assert.Equal(t, 0.0, result.VYValues[len(result.VYValues)-1], "Final VY should be 0")
	for i, p := range result.Positions {
		require.Equal(t, startY, p.Y, "frame %d", i)
	}
}

func TestBundledStages_Load(t *testing.T) {
	loader, err := (&options{}).loader()
	require.NoError(t, err)
	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"1-1", "1-2", "1-3"}, cfg.Stages)

	for _, name := range cfg.Stages {
		stage, err := loader.LoadStage(name)
		require.NoError(t, err, name)
		assert.Len(t, stage.Tiles, cfg.Physics.Display.ScreenHeight/stage.EffectiveTileSize(), "%s fills the screen height", name)
		_, err = system.LoadStage(cfg.Physics, stage)
		assert.NoError(t, err, name)
	}
}

func TestBundledStages_TMXImport(t *testing.T) {
	fsys, err := fs.Sub(configFS, "configs")
	require.NoError(t, err)

	stage, err := config.LoadTMX(fsys, "stages/1-3.tmx")
	require.NoError(t, err)

	assert.Equal(t, "Castle Gate", stage.Name)
	assert.Equal(t, 200, stage.TimeLimit)
	assert.Equal(t, config.TilePosition{Col: 1, Row: 11}, stage.PlayerSpawn)
	assert.Equal(t, 37, stage.GoalCol)
	assert.Len(t, stage.Enemies, 3)
}

func TestCheckCmd(t *testing.T) {
	out, err := runCmd(t, "check")

	require.NoError(t, err)
	assert.Contains(t, out, "ok   1-1")
	assert.Contains(t, out, "ok   1-2")
	assert.Contains(t, out, "ok   1-3")
	assert.Contains(t, out, "80x14 tiles, 5 hostiles, 4 coins, 4 ? blocks")
}

func TestCheckCmd_InvalidStage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "physics.json", `{}`)
	writeFile(t, dir, "stages/index.json", `{"stages": ["good", "bad"]}`)
	writeFile(t, dir, "stages/good.json", `{"id": "good", "tiles": ["...", "###"], "playerSpawn": {"col": 0, "row": 0}, "goalCol": 2}`)
	writeFile(t, dir, "stages/bad.json", `{"id": "bad", "tiles": ["..~", "###"], "playerSpawn": {"col": 0, "row": 0}, "goalCol": 2}`)

	out, err := runCmd(t, "check", "--configs", dir)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidStage)
	assert.Contains(t, out, "ok   good")
	assert.Contains(t, out, "FAIL bad")
}

func TestSchemaCmd(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"stage schema", []string{"schema"}, "playerSpawn"},
		{"physics schema", []string{"schema", "--physics"}, "session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, tt.args...)
			require.NoError(t, err)

			var schema map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &schema))
			props, ok := schema["properties"].(map[string]any)
			require.True(t, ok, "expanded schema has top-level properties")
			assert.Contains(t, props, tt.field)
		})
	}
}

func TestSchemaCmd_LedgeLookaheadDescription(t *testing.T) {
	out, err := runCmd(t, "schema", "--physics")
	require.NoError(t, err)
	assert.Contains(t, out, "full tile-width probe")
}

func TestReplayCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	rec := replay.NewRecorder(replay.TitleStart, "")
	rec.RecordFrame(system.InputState{StartPressed: true})
	for i := 0; i < 59; i++ {
		rec.RecordFrame(system.InputState{Right: true})
	}
	require.NoError(t, rec.Save(path))

	t.Run("plays every frame", func(t *testing.T) {
		out, err := runCmd(t, "replay", path)
		require.NoError(t, err)
		assert.Contains(t, out, "tick:     60")
		assert.Contains(t, out, "state:    "+state.StatePlaying.String())
		assert.Contains(t, out, "stage:    1-1 (index 0)")
	})

	t.Run("stops early", func(t *testing.T) {
		out, err := runCmd(t, "replay", path, "--frames", "10")
		require.NoError(t, err)
		assert.Contains(t, out, "tick:     10")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runCmd(t, "replay", filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"replay", "x.json", "--log-level", "loud"})

	assert.Error(t, root.Execute())
}
