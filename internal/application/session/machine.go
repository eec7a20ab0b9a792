// Package session runs a game session: stage loading, lives, the stage timer
// and the TITLE / PLAYING / DYING / STAGE_CLEAR / GAME_OVER flow.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/younwookim/tilerunner/internal/application/state"
	"github.com/younwookim/tilerunner/internal/application/system"
	"github.com/younwookim/tilerunner/internal/domain/entity"
	"github.com/younwookim/tilerunner/internal/infrastructure/config"
)

// ErrNoStages is returned when a game is started without any level data
var ErrNoStages = errors.New("no stages")

// LevelSource supplies stage data by index
type LevelSource interface {
	Count() int
	Load(i int) (*config.StageConfig, error)
}

// Option configures a Machine
type Option func(*Machine)

// WithLogger sets the logger for state transitions and stage loads
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithHighScore seeds the high score shown in snapshots
func WithHighScore(score int) Option {
	return func(m *Machine) {
		m.rs.HighScore = score
	}
}

// Machine is the stage state machine. It owns the running world and the
// runtime state and advances both by exactly one tick per Tick call.
type Machine struct {
	physics *config.PhysicsConfig
	levels  LevelSource
	logger  *log.Logger

	rs    RuntimeState
	world *system.World
	tick  int

	timeTicks int // ticks into the current time unit
	clear     entity.Countdown

	// OnGameOver is called with the final score when a game ends
	OnGameOver func(score int)
}

// NewMachine creates a machine on the title screen
func NewMachine(cfg *config.PhysicsConfig, levels LevelSource, opts ...Option) *Machine {
	m := &Machine{
		physics: cfg,
		levels:  levels,
		logger:  log.New(io.Discard),
	}
	m.rs.State = state.StateTitle
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current high-level state
func (m *Machine) State() state.GameState {
	return m.rs.State
}

// Runtime returns a copy of the runtime state
func (m *Machine) Runtime() RuntimeState {
	return m.rs
}

// World returns the running world, nil before the first stage loads
func (m *Machine) World() *system.World {
	return m.world
}

// Ticks returns the number of ticks processed
func (m *Machine) Ticks() int {
	return m.tick
}

// NewGame resets the runtime state and loads the stage at index start
func (m *Machine) NewGame(start int) error {
	if m.levels.Count() == 0 {
		return ErrNoStages
	}
	if start < 0 || start >= m.levels.Count() {
		return fmt.Errorf("stage index %d out of range [0, %d)", start, m.levels.Count())
	}

	m.rs = RuntimeState{
		Lives:     m.physics.Session.Lives,
		HighScore: m.rs.HighScore,
	}
	m.logger.Info("new game", "stage", start, "lives", m.rs.Lives)
	return m.loadStage(start)
}

// Tick advances the session by one tick. It returns an error only when a
// stage fails to load.
func (m *Machine) Tick(in system.InputState) error {
	m.tick++

	switch m.rs.State {
	case state.StateTitle, state.StateGameOver:
		if in.StartPressed || in.JumpPressed {
			return m.NewGame(0)
		}
	case state.StatePlaying:
		m.tickPlaying(in)
	case state.StateDying:
		if m.world.Step(in, system.TickScripted) == system.SignalDeathDone {
			return m.loseLife()
		}
	case state.StateStageClear:
		m.world.Step(in, system.TickScripted)
		m.drainTime(1)
		m.clear.Tick()
		if !m.clear.Active() {
			return m.advanceStage()
		}
	}
	return nil
}

func (m *Machine) tickPlaying(in system.InputState) {
	sig := m.world.Step(in, system.TickFull)
	m.rs.CameraOffset = m.world.Camera.Offset()

	switch sig {
	case system.SignalDied:
		m.enterDying("hit")
		return
	case system.SignalFlagpoleGrabbed:
		m.enterStageClear()
		return
	}

	m.timeTicks++
	if m.timeTicks < m.physics.Session.TicksPerTimeUnit {
		return
	}
	m.timeTicks = 0
	if m.rs.TimeLeft > 0 {
		m.rs.TimeLeft--
	}
	if m.rs.TimeLeft == 0 && m.world.Kill() == system.SignalDied {
		m.enterDying("time up")
	}
}

func (m *Machine) enterDying(cause string) {
	m.setState(state.StateDying)
	m.logger.Debug("avatar died", "cause", cause, "stage", m.rs.StageID, "lives", m.rs.Lives)
}

func (m *Machine) enterStageClear() {
	m.clear.Arm(m.physics.Session.ClearFrames)
	m.setState(state.StateStageClear)
	m.logger.Info("stage clear", "stage", m.rs.StageID, "timeLeft", m.rs.TimeLeft, "score", m.rs.Score)
}

// drainTime moves up to units of remaining time into the score
func (m *Machine) drainTime(units int) {
	if units > m.rs.TimeLeft {
		units = m.rs.TimeLeft
	}
	m.rs.TimeLeft -= units
	m.addScore(units * m.physics.Session.TimeBonus)
}

func (m *Machine) loseLife() error {
	m.rs.Lives--
	if m.rs.Lives > 0 {
		m.logger.Info("life lost", "lives", m.rs.Lives)
		return m.loadStage(m.rs.StageIndex)
	}
	m.gameOver(false)
	return nil
}

func (m *Machine) advanceStage() error {
	m.drainTime(m.rs.TimeLeft)

	next := m.rs.StageIndex + 1
	if next >= m.levels.Count() {
		m.gameOver(true)
		return nil
	}
	return m.loadStage(next)
}

func (m *Machine) gameOver(completed bool) {
	m.rs.Completed = completed
	if m.rs.Score > m.rs.HighScore {
		m.rs.HighScore = m.rs.Score
	}
	m.setState(state.StateGameOver)
	m.logger.Info("game over", "score", m.rs.Score, "completed", completed)
	if m.OnGameOver != nil {
		m.OnGameOver(m.rs.Score)
	}
}

// loadStage rebuilds the world from level data and starts playing it
func (m *Machine) loadStage(i int) error {
	stage, err := m.levels.Load(i)
	if err != nil {
		return fmt.Errorf("failed to load stage %d: %w", i, err)
	}
	world, err := system.LoadStage(m.physics, stage)
	if err != nil {
		return fmt.Errorf("failed to build stage %s: %w", stage.ID, err)
	}

	world.OnScore = m.addScore
	world.OnCoin = m.addCoin
	m.world = world

	limit := stage.TimeLimit
	if limit <= 0 {
		limit = m.physics.Session.DefaultTimeLimit
	}
	m.rs.StageIndex = i
	m.rs.StageID = stage.ID
	m.rs.StageName = stage.Name
	m.rs.TimeLeft = limit
	m.rs.CameraOffset = 0
	m.timeTicks = 0
	m.clear.Clear()

	m.logger.Info("stage loaded", "index", i, "stage", stage.ID, "name", stage.Name, "hostiles", world.Entities.CountHostiles())
	m.setState(state.StatePlaying)
	return nil
}

func (m *Machine) setState(s state.GameState) {
	if m.rs.State == s {
		return
	}
	m.logger.Debug("state", "from", m.rs.State, "to", s)
	m.rs.State = s
}

func (m *Machine) addScore(points int) {
	m.rs.Score += points
}

func (m *Machine) addCoin() {
	m.rs.Coins++
	per := m.physics.Session.CoinsPerLife
	if per > 0 && m.rs.Coins >= per {
		m.rs.Coins -= per
		m.rs.Lives++
		m.logger.Info("extra life", "lives", m.rs.Lives)
	}
}

// Snapshot copies out everything the presentation sink needs
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		RuntimeState: m.rs,
		Tick:         m.tick,
	}
	if m.world != nil {
		snapshotWorld(&snap, m.world)
	}
	return snap
}
