package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState holds the sampled controls for one tick
type InputState struct {
	Left         bool
	Right        bool
	Run          bool
	JumpHeld     bool
	JumpPressed  bool // went down this tick
	StartPressed bool
}

// Direction returns -1, 0 or +1. Opposing directions cancel.
func (in InputState) Direction() int {
	dir := 0
	if in.Left {
		dir--
	}
	if in.Right {
		dir++
	}
	return dir
}

// InputSource supplies one InputState per tick
type InputSource interface {
	Poll() InputState
}

// KeyboardInput samples the keyboard through ebiten
type KeyboardInput struct{}

// NewKeyboardInput creates a keyboard input source
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{}
}

var (
	leftKeys  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	runKeys   = []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight, ebiten.KeyX}
	jumpKeys  = []ebiten.Key{ebiten.KeyZ, ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW}
	startKeys = []ebiten.Key{ebiten.KeyEnter}
)

// Poll reads the current input state
func (k *KeyboardInput) Poll() InputState {
	return InputState{
		Left:         anyPressed(leftKeys),
		Right:        anyPressed(rightKeys),
		Run:          anyPressed(runKeys),
		JumpHeld:     anyPressed(jumpKeys),
		JumpPressed:  anyJustPressed(jumpKeys),
		StartPressed: anyJustPressed(startKeys),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// ScriptedInput replays a fixed list of states, then idles
type ScriptedInput struct {
	states []InputState
	pos    int
}

// NewScriptedInput creates a source that returns states in order
func NewScriptedInput(states ...InputState) *ScriptedInput {
	return &ScriptedInput{states: states}
}

// Poll returns the next scripted state
func (s *ScriptedInput) Poll() InputState {
	if s.pos >= len(s.states) {
		return InputState{}
	}
	in := s.states[s.pos]
	s.pos++
	return in
}
