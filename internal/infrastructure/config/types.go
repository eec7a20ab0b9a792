package config

// PhysicsConfig is the root config for physics.json.
// Units are pixels and ticks; velocities are pixels per tick.
type PhysicsConfig struct {
	Display   DisplayConfig   `json:"display"`
	Physics   PhysicsSettings `json:"physics"`
	Movement  MovementConfig  `json:"movement"`
	Jump      JumpConfig      `json:"jump"`
	Collision CollisionConfig `json:"collision"`
	Avatar    AvatarConfig    `json:"avatar"`
	Hostiles  HostileConfig   `json:"hostiles"`
	Combat    CombatConfig    `json:"combat"`
	Blocks    BlockConfig     `json:"blocks"`
	Effects   EffectsConfig   `json:"effects"`
	Flagpole  FlagpoleConfig  `json:"flagpole"`
	Camera    CameraConfig    `json:"camera"`
	Session   SessionConfig   `json:"session"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

type PhysicsSettings struct {
	Gravity      float64 `json:"gravity"`
	MaxFallSpeed float64 `json:"maxFallSpeed"`
}

type MovementConfig struct {
	WalkSpeed      float64 `json:"walkSpeed"`
	RunSpeed       float64 `json:"runSpeed"`
	GroundAccel    float64 `json:"groundAccel"`
	AirAccel       float64 `json:"airAccel"`
	GroundFriction float64 `json:"groundFriction"`
	AirFriction    float64 `json:"airFriction"`
	StopThreshold  float64 `json:"stopThreshold"`
}

type JumpConfig struct {
	Velocity     float64 `json:"velocity"` // negative is up
	HoldBoost    float64 `json:"holdBoost"`
	HoldFrames   int     `json:"holdFrames"`
	CoyoteFrames int     `json:"coyoteFrames"`
	BufferFrames int     `json:"bufferFrames"`
}

type CollisionConfig struct {
	EdgeInset float64 `json:"edgeInset"`
}

type SizeConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type AvatarConfig struct {
	Small         SizeConfig `json:"small"`
	Big           SizeConfig `json:"big"`
	InvulnFrames  int        `json:"invulnFrames"`
	DyingFrames   int        `json:"dyingFrames"`
	DeathPopSpeed float64    `json:"deathPopSpeed"`
}

type HostileConfig struct {
	Size           SizeConfig `json:"size"`
	Speed          float64    `json:"speed"`
	ChargeSpeed    float64    `json:"chargeSpeed"`
	SenseRange     float64    `json:"senseRange"`
	LedgeLookahead float64    `json:"ledgeLookahead" jsonschema:"description=Ledge probe distance in pixels past the leading edge. The tile size gives a full tile-width probe. 1 turns hostiles at the last solid pixel"`
	WakeMargin     float64    `json:"wakeMargin"`
	SquishFrames   int        `json:"squishFrames"`
}

type CombatConfig struct {
	StompTolerance float64 `json:"stompTolerance"`
	StompBounce    float64 `json:"stompBounce"`
	StompScore     int     `json:"stompScore"`
	MaxChain       int     `json:"maxChain"`
	BumpKillScore  int     `json:"bumpKillScore"`
}

type BlockConfig struct {
	CoinScore    int        `json:"coinScore"`
	BrickScore   int        `json:"brickScore"`
	PowerUpScore int        `json:"powerUpScore"`
	EmergeFrames int        `json:"emergeFrames"`
	PowerUpSpeed float64    `json:"powerUpSpeed"`
	PowerUpSize  SizeConfig `json:"powerUpSize"`
}

type EffectsConfig struct {
	CoinPopFrames   int     `json:"coinPopFrames"`
	CoinPopHeight   float64 `json:"coinPopHeight"`
	FragmentFrames  int     `json:"fragmentFrames"`
	FragmentSpeedX  float64 `json:"fragmentSpeedX"`
	FragmentSpeedY  float64 `json:"fragmentSpeedY"`
	ScoreTextFrames int     `json:"scoreTextFrames"`
	ScoreTextRise   float64 `json:"scoreTextRise"`
	BumpFrames      int     `json:"bumpFrames"`
}

type FlagpoleConfig struct {
	DescentSpeed float64 `json:"descentSpeed"`
	WalkSpeed    float64 `json:"walkSpeed"`
	WalkFrames   int     `json:"walkFrames"`
}

type CameraConfig struct {
	FollowFraction float64 `json:"followFraction"`
}

type SessionConfig struct {
	Lives            int `json:"lives"`
	ClearFrames      int `json:"clearFrames"`
	TicksPerTimeUnit int `json:"ticksPerTimeUnit"`
	TimeBonus        int `json:"timeBonus"`
	CoinsPerLife     int `json:"coinsPerLife"`
	DefaultTimeLimit int `json:"defaultTimeLimit"`
}

// DefaultPhysics returns the tuning used when physics.json omits a field
func DefaultPhysics() *PhysicsConfig {
	return &PhysicsConfig{
		Display: DisplayConfig{ScreenWidth: 512, ScreenHeight: 448, Scale: 2, Framerate: 60},
		Physics: PhysicsSettings{Gravity: 0.5, MaxFallSpeed: 10},
		Movement: MovementConfig{
			WalkSpeed:      3,
			RunSpeed:       5,
			GroundAccel:    0.25,
			AirAccel:       0.15,
			GroundFriction: 0.85,
			AirFriction:    0.95,
			StopThreshold:  0.1,
		},
		Jump: JumpConfig{
			Velocity:     -10,
			HoldBoost:    0.3,
			HoldFrames:   12,
			CoyoteFrames: 6,
			BufferFrames: 6,
		},
		Collision: CollisionConfig{EdgeInset: 2},
		Avatar: AvatarConfig{
			Small:         SizeConfig{Width: 24, Height: 30},
			Big:           SizeConfig{Width: 24, Height: 60},
			InvulnFrames:  120,
			DyingFrames:   120,
			DeathPopSpeed: 10,
		},
		Hostiles: HostileConfig{
			Size:           SizeConfig{Width: 28, Height: 28},
			Speed:          1,
			ChargeSpeed:    2,
			SenseRange:     160,
			LedgeLookahead: 1,
			WakeMargin:     64,
			SquishFrames:   30,
		},
		Combat: CombatConfig{
			StompTolerance: 8,
			StompBounce:    6,
			StompScore:     100,
			MaxChain:       8,
			BumpKillScore:  100,
		},
		Blocks: BlockConfig{
			CoinScore:    200,
			BrickScore:   50,
			PowerUpScore: 1000,
			EmergeFrames: 32,
			PowerUpSpeed: 1.5,
			PowerUpSize:  SizeConfig{Width: 28, Height: 28},
		},
		Effects: EffectsConfig{
			CoinPopFrames:   30,
			CoinPopHeight:   48,
			FragmentFrames:  60,
			FragmentSpeedX:  2,
			FragmentSpeedY:  8,
			ScoreTextFrames: 45,
			ScoreTextRise:   32,
			BumpFrames:      8,
		},
		Flagpole: FlagpoleConfig{DescentSpeed: 4, WalkSpeed: 2, WalkFrames: 90},
		Camera:   CameraConfig{FollowFraction: 0.4},
		Session: SessionConfig{
			Lives:            3,
			ClearFrames:      180,
			TicksPerTimeUnit: 24,
			TimeBonus:        50,
			CoinsPerLife:     100,
			DefaultTimeLimit: 300,
		},
	}
}
