// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/tilerunner/internal/application/replay"
	"github.com/younwookim/tilerunner/internal/application/scene"
	"github.com/younwookim/tilerunner/internal/application/session"
	"github.com/younwookim/tilerunner/internal/application/state"
	"github.com/younwookim/tilerunner/internal/application/system"
	"github.com/younwookim/tilerunner/internal/domain/entity"
	"github.com/younwookim/tilerunner/internal/infrastructure/config"
	"github.com/younwookim/tilerunner/internal/infrastructure/save"
)

// Colors for rendering
var (
	colorSky      = color.RGBA{92, 148, 252, 255}
	colorGround   = color.RGBA{200, 76, 12, 255}
	colorBrick    = color.RGBA{180, 60, 20, 255}
	colorQuestion = color.RGBA{252, 188, 60, 255}
	colorUsed     = color.RGBA{136, 100, 60, 255}
	colorPipe     = color.RGBA{0, 168, 0, 255}
	colorSolid    = color.RGBA{112, 112, 112, 255}
	colorCoin     = color.RGBA{255, 215, 0, 255}
	colorPole     = color.RGBA{220, 220, 220, 255}
	colorFlag     = color.RGBA{40, 200, 40, 255}
	colorSmall    = color.RGBA{216, 40, 0, 255}
	colorBig      = color.RGBA{160, 20, 0, 255}
	colorWalker   = color.RGBA{140, 80, 20, 255}
	colorCharger  = color.RGBA{200, 100, 100, 255}
	colorSpiker   = color.RGBA{200, 50, 50, 255}
	colorSquished = color.RGBA{90, 50, 10, 255}
	colorPowerUp  = color.RGBA{255, 80, 160, 255}
	colorFragment = color.RGBA{150, 50, 10, 255}
	colorPaused   = color.RGBA{0, 0, 0, 128}
	colorGameOver = color.RGBA{0, 0, 0, 200}
)

var tileColors = map[entity.TileCode]color.Color{
	entity.TileGround:          colorGround,
	entity.TileBrick:           colorBrick,
	entity.TileQuestionCoin:    colorQuestion,
	entity.TileQuestionPowerUp: colorQuestion,
	entity.TileUsed:            colorUsed,
	entity.TilePipeTopLeft:     colorPipe,
	entity.TilePipeTopRight:    colorPipe,
	entity.TilePipeLeft:        colorPipe,
	entity.TilePipeRight:       colorPipe,
	entity.TileSolid:           colorSolid,
}

// Options configures the scene
type Options struct {
	// Input defaults to the keyboard
	Input system.InputSource
	// StartStage begins a game at once. Negative values open the title screen.
	StartStage int
	// RecordPath enables input recording, saved on exit and on game over
	RecordPath string
	// Scores keeps the high score between runs. Optional.
	Scores *save.Store
	Logger *log.Logger
}

// Playing is the main gameplay scene. It ticks the session machine once per
// frame and draws the snapshot it copies out.
type Playing struct {
	machine *session.Machine
	input   system.InputSource
	scores  *save.Store
	logger  *log.Logger

	screenW int
	screenH int

	paused  bool
	newBest bool
	snap    session.Snapshot

	// Input recording
	recorder       *replay.Recorder
	recordFilename string
}

// New creates the scene over the given level source
func New(cfg *config.PhysicsConfig, levels session.LevelSource, opts Options) (*Playing, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	input := opts.Input
	if input == nil {
		input = system.NewKeyboardInput()
	}

	highScore := 0
	if opts.Scores != nil {
		rec, err := opts.Scores.Load()
		if err != nil {
			logger.Warn("could not load high score", "err", err)
		}
		highScore = rec.HighScore
	}

	p := &Playing{
		input:          input,
		scores:         opts.Scores,
		logger:         logger,
		screenW:        cfg.Display.ScreenWidth,
		screenH:        cfg.Display.ScreenHeight,
		recordFilename: opts.RecordPath,
	}
	p.machine = session.NewMachine(cfg, levels, session.WithLogger(logger), session.WithHighScore(highScore))
	p.machine.OnGameOver = p.onGameOver

	startIndex, startID := replay.TitleStart, ""
	if opts.StartStage >= 0 {
		if err := p.machine.NewGame(opts.StartStage); err != nil {
			return nil, err
		}
		startIndex, startID = opts.StartStage, p.machine.Runtime().StageID
	}

	if opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(startIndex, startID)
		logger.Info("recording enabled", "path", opts.RecordPath, "stage", startIndex)
	}

	p.snap = p.machine.Snapshot()
	return p, nil
}

// Machine returns the session machine the scene drives
func (p *Playing) Machine() *session.Machine {
	return p.machine
}

// Snapshot returns the last drawn snapshot
func (p *Playing) Snapshot() session.Snapshot {
	return p.snap
}

// Paused reports whether the simulation is paused
func (p *Playing) Paused() bool {
	return p.paused
}

// Update advances the game one tick (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.TogglePause()
	}
	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		p.saveRecording()
	}
	if p.paused {
		return nil, nil
	}

	return nil, p.Step(p.input.Poll())
}

// Step records and applies one tick of input
func (p *Playing) Step(in system.InputState) error {
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}
	if err := p.machine.Tick(in); err != nil {
		return err
	}
	if p.machine.State() == state.StatePlaying {
		p.newBest = false
	}
	p.snap = p.machine.Snapshot()
	return nil
}

// TogglePause freezes or resumes the simulation while playing
func (p *Playing) TogglePause() {
	if !p.machine.State().Simulating() && !p.paused {
		return
	}
	p.paused = !p.paused
	p.logger.Debug("pause", "paused", p.paused)
}

func (p *Playing) onGameOver(score int) {
	completed := p.machine.Runtime().Completed
	if p.scores != nil {
		rec, best, err := p.scores.Submit(score, completed)
		if err != nil {
			p.logger.Warn("could not save high score", "err", err)
		} else {
			p.newBest = best
			p.logger.Info("high score table", "high", rec.HighScore, "games", rec.Games)
		}
	}
	p.saveRecording()
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.logger.Error("failed to save recording", "err", err)
	} else {
		p.logger.Info("recording saved", "path", filename, "frames", p.recorder.FrameCount())
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorSky)

	snap := &p.snap
	if snap.State == state.StateTitle {
		p.drawTitle(screen)
		return
	}

	camX := snap.CameraOffset
	p.drawTiles(screen, camX)
	p.drawFlagpole(screen, camX)
	p.drawEffects(screen, camX)
	p.drawHostiles(screen, camX)
	p.drawAvatar(screen, camX)
	p.drawUI(screen)

	switch {
	case p.paused:
		p.drawPauseOverlay(screen)
	case snap.State == state.StateStageClear:
		ebitenutil.DebugPrintAt(screen, "STAGE CLEAR", p.screenW/2-33, p.screenH/3)
	case snap.State == state.StateGameOver:
		p.drawGameOverOverlay(screen)
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, camX float64) {
	snap := &p.snap
	ts := float64(snap.TileSize)

	for i, column := range snap.Columns {
		x := float64(snap.FirstCol+i)*ts - camX
		for row, code := range column {
			y := float64(row) * ts
			if code == entity.TileCoinVisible {
				ebitenutil.DrawRect(screen, x+ts/4, y+ts/8, ts/2, ts*3/4, colorCoin)
				continue
			}
			c, ok := tileColors[code]
			if !ok {
				continue
			}
			ebitenutil.DrawRect(screen, x, y, ts, ts, c)
			if code == entity.TileQuestionCoin || code == entity.TileQuestionPowerUp {
				ebitenutil.DebugPrintAt(screen, "?", int(x+ts/2)-3, int(y+ts/2)-8)
			}
		}
	}
}

func (p *Playing) drawFlagpole(screen *ebiten.Image, camX float64) {
	snap := &p.snap
	ts := float64(snap.TileSize)
	x := snap.GoalX - camX
	if x < -ts || x > float64(p.screenW) {
		return
	}
	ground := float64(snap.Rows-1) * ts
	ebitenutil.DrawRect(screen, x+ts/2-2, ts, 4, ground-ts, colorPole)
	ebitenutil.DrawRect(screen, x+ts/2-ts, ts, ts-2, ts*2/3, colorFlag)
}

func (p *Playing) drawAvatar(screen *ebiten.Image, camX float64) {
	a := p.snap.Avatar
	if a.Blink {
		return
	}

	c := colorSmall
	if a.Form == entity.FormBig {
		c = colorBig
	}
	if a.State == entity.AvatarDying {
		c = color.RGBA{255, 255, 255, 200}
	}
	ebitenutil.DrawRect(screen, a.X-camX, a.Y, a.W, a.H, c)

	// Eye on the facing side
	eyeX := a.X - camX + a.W - 8
	if a.Facing < 0 {
		eyeX = a.X - camX + 4
	}
	ebitenutil.DrawRect(screen, eyeX, a.Y+6, 4, 4, color.White)
}

func (p *Playing) drawHostiles(screen *ebiten.Image, camX float64) {
	for _, h := range p.snap.Hostiles {
		x := h.X - camX
		if x+h.W < 0 || x > float64(p.screenW) {
			continue
		}

		if h.Squished {
			ebitenutil.DrawRect(screen, x, h.Y+h.H*3/4, h.W, h.H/4, colorSquished)
			continue
		}

		var c color.Color = colorWalker
		switch h.Kind {
		case entity.HostileCharger:
			c = colorCharger
		case entity.HostileSpiker:
			c = colorSpiker
		}
		ebitenutil.DrawRect(screen, x, h.Y, h.W, h.H, c)

		if h.Kind == entity.HostileSpiker {
			for sx := x + 2; sx < x+h.W-2; sx += 8 {
				ebitenutil.DrawRect(screen, sx, h.Y-4, 4, 4, colorPole)
			}
		}
		if h.Aggro {
			ebitenutil.DebugPrintAt(screen, "!", int(x+h.W/2)-3, int(h.Y)-18)
		}
	}
}

func (p *Playing) drawEffects(screen *ebiten.Image, camX float64) {
	for _, e := range p.snap.Effects {
		x := e.X - camX
		switch e.Kind {
		case entity.EffectCoinPop:
			ebitenutil.DrawRect(screen, x, e.Y, e.W, e.H, colorCoin)
		case entity.EffectFragment:
			ebitenutil.DrawRect(screen, x, e.Y, e.W, e.H, colorFragment)
		case entity.EffectScoreText:
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", e.Value), int(x), int(e.Y))
		case entity.EffectPowerUp:
			ebitenutil.DrawRect(screen, x, e.Y, e.W, e.H, colorPowerUp)
		case entity.EffectBump:
			// The bumped tile is redrawn lifted by its offset
			ts := float64(p.snap.TileSize)
			ty := float64(e.Tile.Row) * ts
			tx := float64(e.Tile.Col)*ts - camX
			ebitenutil.DrawRect(screen, tx, ty, ts, ts, colorSky)
			ebitenutil.DrawRect(screen, tx, e.Y, ts, ts, colorUsed)
		}
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, hudLine(p.snap.RuntimeState), 8, 8)

	if p.recorder != nil && p.recorder.IsRecording() {
		ebitenutil.DebugPrintAt(screen, "REC", p.screenW-30, p.screenH-20)
	}
}

func (p *Playing) drawTitle(screen *ebiten.Image) {
	text := fmt.Sprintf("TILERUNNER\n\nPress Enter or Z to start\n\nHigh score: %06d", p.snap.HighScore)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-80, p.screenH/2-40)

	controls := "Arrows/AD: Move | Z/Space: Jump | Shift/X: Run | ESC: Pause"
	ebitenutil.DebugPrintAt(screen, controls, 8, p.screenH-20)
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorPaused)

	text := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

func (p *Playing) drawGameOverOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorGameOver)
	ebitenutil.DebugPrintAt(screen, gameOverText(p.snap.RuntimeState, p.newBest), p.screenW/2-70, p.screenH/2-40)
}

// hudLine formats the top status bar
func hudLine(rs session.RuntimeState) string {
	name := rs.StageName
	if name == "" {
		name = rs.StageID
	}
	return fmt.Sprintf("SCORE %06d   COINS x%02d   WORLD %s   TIME %03d   LIVES %d",
		rs.Score, rs.Coins, name, rs.TimeLeft, rs.Lives)
}

// gameOverText formats the end-of-game panel
func gameOverText(rs session.RuntimeState, newBest bool) string {
	title := "GAME OVER"
	if rs.Completed {
		title = "ALL STAGES CLEAR"
	}
	best := ""
	if newBest {
		best = "  NEW!"
	}
	return fmt.Sprintf("%s\n\nScore:      %06d\nHigh score: %06d%s\n\nPress Enter or Z to play again",
		title, rs.Score, rs.HighScore, best)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.logger.Debug("scene enter", "state", p.machine.State())
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
	if p.recorder != nil {
		p.recorder.Stop()
	}
}

// Layout returns the game's screen dimensions
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
