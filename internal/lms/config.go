package lms

// Config holds the HTTP client settings for live providers.
type Config struct {
	TimeoutMs       int
	MaxRetries      int
	PerPage         int
	DefaultInstance string
	LogCalls        bool
}

// DefaultConfig returns the client settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		TimeoutMs:       15000,
		MaxRetries:      2,
		PerPage:         100,
		DefaultInstance: "canvas.instructure.com",
	}
}
