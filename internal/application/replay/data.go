package replay

import "github.com/younwookim/tilerunner/internal/application/system"

// FormatVersion is written into every recording
const FormatVersion = "2.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F   int  `json:"f"`             // Frame number
	L   bool `json:"l,omitempty"`   // Left
	R   bool `json:"r,omitempty"`   // Right
	Run bool `json:"run,omitempty"` // Run
	J   bool `json:"j,omitempty"`   // JumpHeld
	JP  bool `json:"jp,omitempty"`  // JumpPressed
	St  bool `json:"st,omitempty"`  // StartPressed
}

// TitleStart is the StageIndex of a session recorded from the title screen
const TitleStart = -1

// ReplayData contains all data needed to replay a game session.
// The simulation is deterministic, so inputs and the start stage suffice.
type ReplayData struct {
	Version    string       `json:"version"`
	Stage      string       `json:"stage"`
	StageIndex int          `json:"stageIndex"`
	StartTime  string       `json:"startTime"`
	Frames     []FrameInput `json:"frames"`
}

// NewFrameInput converts a sampled input into its recorded form
func NewFrameInput(frame int, in system.InputState) FrameInput {
	return FrameInput{
		F:   frame,
		L:   in.Left,
		R:   in.Right,
		Run: in.Run,
		J:   in.JumpHeld,
		JP:  in.JumpPressed,
		St:  in.StartPressed,
	}
}

// Input converts the recorded frame back into an input state
func (fi FrameInput) Input() system.InputState {
	return system.InputState{
		Left:         fi.L,
		Right:        fi.R,
		Run:          fi.Run,
		JumpHeld:     fi.J,
		JumpPressed:  fi.JP,
		StartPressed: fi.St,
	}
}
