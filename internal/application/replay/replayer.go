package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/tilerunner/internal/application/session"
	"github.com/younwookim/tilerunner/internal/application/system"
)

// Replayer handles input playback from recorded data.
// It is a system.InputSource that idles once the recording ends.
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file)
}

// Decode reads replay data from r
func Decode(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}
	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.Input(), true
}

// Poll implements system.InputSource
func (r *Replayer) Poll() system.InputState {
	in, _ := r.GetInput()
	return in
}

// Done reports whether every recorded frame was played
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// StageIndex returns the stage the recording started on, TitleStart if it
// started on the title screen
func (r *Replayer) StageIndex() int {
	return r.data.StageIndex
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// Run plays the recording through a fresh machine without rendering.
// maxFrames <= 0 plays every recorded frame. The final snapshot is returned.
func (r *Replayer) Run(m *session.Machine, maxFrames int) (session.Snapshot, error) {
	if r.data.StageIndex != TitleStart {
		if err := m.NewGame(r.data.StageIndex); err != nil {
			return session.Snapshot{}, err
		}
	}

	frames := r.TotalFrames() - r.frame
	if maxFrames > 0 && maxFrames < frames {
		frames = maxFrames
	}
	for i := 0; i < frames; i++ {
		if err := m.Tick(r.Poll()); err != nil {
			return m.Snapshot(), fmt.Errorf("frame %d: %w", r.frame-1, err)
		}
	}
	return m.Snapshot(), nil
}

// CreateTestReplayData creates replay data for testing (idle avatar)
func CreateTestReplayData(frames int, stageIndex int) ReplayData {
	data := ReplayData{
		Version:    FormatVersion,
		Stage:      "test",
		StageIndex: stageIndex,
		StartTime:  time.Now().Format(time.RFC3339),
		Frames:     make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{F: i}
	}

	return data
}
