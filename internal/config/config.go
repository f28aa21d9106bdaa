package config

import "fmt"

// Config is the full parameter set for one processing run. It is built by
// the CLI (or loaded from YAML), validated once, and read-only afterwards.
type Config struct {
	InputVideo  string `yaml:"input"`
	OutputVideo string `yaml:"output"`
	EventsPath  string `yaml:"events"`

	Width      int   `yaml:"width"`
	Height     int   `yaml:"height"`
	FPS        int   `yaml:"fps"`
	DurationMs int64 `yaml:"durationMs"`

	// Recording geometry: logical screen size and the optional captured
	// sub-region, both in logical points.
	ScreenWidth  float64  `yaml:"screenWidth"`
	ScreenHeight float64  `yaml:"screenHeight"`
	Region       *RegionConfig `yaml:"region,omitempty"`

	Workers   int `yaml:"workers"`
	BatchSize int `yaml:"batchSize"`

	Cursor  CursorConfig       `yaml:"cursor"`
	Zoom    ZoomConfig         `yaml:"zoom"`
	Effects MouseEffectsConfig `yaml:"effects"`

	VideoEncoder string `yaml:"encoder"`
	Quality      int    `yaml:"quality"`

	Debug        bool   `yaml:"debug"`
	ShowStats    bool   `yaml:"showStats"`
	MetadataPath string `yaml:"metadata"`
	BuildVersion string `yaml:"-"`
}

// RegionConfig is the captured sub-rectangle of the screen, in logical
// points.
type RegionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// CursorConfig controls the synthetic cursor overlay.
type CursorConfig struct {
	Size      int     `yaml:"size"`
	Shape     string  `yaml:"shape"`
	Smoothing float64 `yaml:"smoothing"`
	Color     string  `yaml:"color"`
	SpriteDir string  `yaml:"spriteDir"`

	// Click pulse animation.
	ClickAnimationMs int64   `yaml:"clickAnimationMs"`
	ClickMinScale    float64 `yaml:"clickMinScale"`

	// Shape debounce look-ahead window.
	StabilizeWindowMs int64 `yaml:"stabilizeWindowMs"`
}

// ZoomConfig controls the zoom-follow camera. SpeedThreshold and
// FollowSpeed are empirically tuned; they are exposed here instead of being
// hard-coded so callers can override them.
type ZoomConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Level             float64 `yaml:"level"`
	TransitionSpeedMs int64   `yaml:"transitionSpeedMs"`
	Padding           float64 `yaml:"padding"`
	FollowSpeed       float64 `yaml:"followSpeed"`

	// SpeedThreshold is the cursor speed (video px/ms) above which the zoom
	// level is proportionally reduced toward 1.0.
	SpeedThreshold float64 `yaml:"speedThreshold"`
}

// MouseEffectsConfig controls the ephemeral overlays. Each effect honors
// its own enabled flag independently.
type MouseEffectsConfig struct {
	ClickCircles ClickCirclesConfig  `yaml:"clickCircles"`
	Trail        TrailConfig         `yaml:"trail"`
	Ring         HighlightRingConfig `yaml:"highlightRing"`
}

type ClickCirclesConfig struct {
	Enabled    bool    `yaml:"enabled"`
	DurationMs int64   `yaml:"durationMs"`
	MaxSize    float64 `yaml:"maxSize"`
	Color      string  `yaml:"color"`
}

type TrailConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Length    int     `yaml:"length"`
	FadeSpeed float64 `yaml:"fadeSpeed"`
	Color     string  `yaml:"color"`
}

type HighlightRingConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Size       float64 `yaml:"size"`
	PulseSpeed float64 `yaml:"pulseSpeed"`
	Color      string  `yaml:"color"`
}

// Default returns a Config with the tuned defaults applied.
func Default() *Config {
	return &Config{
		FPS:       30,
		Workers:   0, // auto
		BatchSize: 10,
		Cursor: CursorConfig{
			Size:              32,
			Shape:             "arrow",
			Smoothing:         0.5,
			Color:             "#000000",
			SpriteDir:         "assets/cursors",
			ClickAnimationMs:  300,
			ClickMinScale:     0.8,
			StabilizeWindowMs: 100,
		},
		Zoom: ZoomConfig{
			Enabled:           false,
			Level:             2.0,
			TransitionSpeedMs: 1000,
			Padding:           0.1,
			FollowSpeed:       0.8,
			SpeedThreshold:    2.0,
		},
		Effects: MouseEffectsConfig{
			ClickCircles: ClickCirclesConfig{
				Enabled:    true,
				DurationMs: 500,
				MaxSize:    48,
				Color:      "#ffcc00",
			},
			Trail: TrailConfig{
				Enabled:   false,
				Length:    8,
				FadeSpeed: 0.2,
				Color:     "#66aaff",
			},
			Ring: HighlightRingConfig{
				Enabled:    false,
				Size:       40,
				PulseSpeed: 1.0,
				Color:      "#ff6666",
			},
		},
		Quality: 0, // auto per encoder
	}
}

// Validate checks the invariants the pipeline relies on.
func (c *Config) Validate() error {
	if c.InputVideo == "" {
		return fmt.Errorf("input video path is required")
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.Zoom.Enabled {
		if c.Zoom.Level < 1.0 {
			return fmt.Errorf("zoom level must be >= 1.0, got %f", c.Zoom.Level)
		}
		if c.Zoom.TransitionSpeedMs <= 0 {
			return fmt.Errorf("zoom transition duration must be positive")
		}
	}
	if c.Cursor.Size <= 0 {
		return fmt.Errorf("cursor size must be positive, got %d", c.Cursor.Size)
	}
	if c.Cursor.ClickMinScale <= 0 || c.Cursor.ClickMinScale > 1.0 {
		return fmt.Errorf("click min scale must be in (0,1], got %f", c.Cursor.ClickMinScale)
	}
	if c.Region != nil && (c.Region.W <= 0 || c.Region.H <= 0) {
		return fmt.Errorf("recording region must have positive dimensions")
	}
	return nil
}
