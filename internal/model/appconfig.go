package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new operations
	DefaultProfile  string  `json:"default_profile"`
	DefaultSafeZ    float64 `json:"default_safe_z"`
	DefaultFeedRate float64 `json:"default_feed_rate"`
	DefaultSpindle  int     `json:"default_spindle"`

	// Application preferences
	RecentJobs []string `json:"recent_jobs"`
	Theme      string   `json:"theme"` // "light", "dark", "system"

	// AI assist
	AnthropicModel string `json:"anthropic_model"` // empty means SDK default
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultProfile:  "Haas",
		DefaultSafeZ:    0.1,
		DefaultFeedRate: 10.0,
		DefaultSpindle:  3500,
		RecentJobs:      []string{},
		Theme:           "system",
	}
}

// ApplyToPocket copies the saved defaults into pocket params.
func (c AppConfig) ApplyToPocket(p *PocketParams) {
	p.SafeZ = c.DefaultSafeZ
	p.FeedRate = c.DefaultFeedRate
	p.SpindleSpeed = c.DefaultSpindle
}

// ApplyToThread copies the saved defaults into thread mill params.
func (c AppConfig) ApplyToThread(p *ThreadMillParams) {
	p.SafeZ = c.DefaultSafeZ
	p.FeedRate = c.DefaultFeedRate
	p.SpindleSpeed = c.DefaultSpindle
}

// ApplyToDrill copies the saved defaults into drill params.
func (c AppConfig) ApplyToDrill(p *PeckDrillParams) {
	p.SafeZ = c.DefaultSafeZ
	p.FeedRate = c.DefaultFeedRate
	p.SpindleSpeed = c.DefaultSpindle
}

// AddRecentJob prepends a path to the recent jobs list, dropping duplicates
// and keeping at most max entries.
func (c *AppConfig) AddRecentJob(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path && len(recent) < max {
			recent = append(recent, p)
		}
	}
	c.RecentJobs = recent
}
