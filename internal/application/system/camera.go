package system

import "github.com/younwookim/tilerunner/internal/infrastructure/config"

// Camera is a horizontal follow camera that never scrolls back
type Camera struct {
	viewportW      float64
	followFraction float64
	levelW         float64
	offset         float64
}

// NewCamera creates a camera for a level of the given pixel width
func NewCamera(cfg *config.PhysicsConfig, levelW float64) *Camera {
	return &Camera{
		viewportW:      float64(cfg.Display.ScreenWidth),
		followFraction: cfg.Camera.FollowFraction,
		levelW:         levelW,
	}
}

// Follow moves the camera toward the avatar and returns the new offset.
// The offset is clamped to the level and only ever increases.
func (c *Camera) Follow(avatarX float64) float64 {
	maxOffset := c.levelW - c.viewportW
	if maxOffset < 0 {
		maxOffset = 0
	}
	target := avatarX - c.viewportW*c.followFraction
	if target < 0 {
		target = 0
	}
	if target > maxOffset {
		target = maxOffset
	}
	if target > c.offset {
		c.offset = target
	}
	return c.offset
}

// Reset returns the camera to the level start
func (c *Camera) Reset() {
	c.offset = 0
}

// Offset returns the current left edge of the view
func (c *Camera) Offset() float64 {
	return c.offset
}

// Right returns the current right edge of the view
func (c *Camera) Right() float64 {
	return c.offset + c.viewportW
}

// ViewportWidth returns the view width in pixels
func (c *Camera) ViewportWidth() float64 {
	return c.viewportW
}
