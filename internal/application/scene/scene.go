// Package scene defines the Scene interface for game screens.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen hosted by the game loop.
//
// The loop delegates Update and Draw to the current scene and switches
// scenes when Update returns a non-nil next scene.
type Scene interface {
	// Update advances the scene by one tick of dt seconds.
	// A non-nil next ends this scene; an error ends the run.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when the scene stops being current.
	OnExit()
}
