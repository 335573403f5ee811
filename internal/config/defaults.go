package config

import "errors"

// defaults feeds a Config into koanf as its lowest layer.
type defaults map[string]any

func defaultsProvider(c Config) defaults {
	return defaults{
		"db_path": c.DBPath,
		"user_id": c.UserID,
		"log": map[string]any{
			"level":  c.Log.Level,
			"format": c.Log.Format,
		},
		"lms": map[string]any{
			"timeout_ms":       c.LMS.TimeoutMs,
			"max_retries":      c.LMS.MaxRetries,
			"per_page":         c.LMS.PerPage,
			"default_instance": c.LMS.DefaultInstance,
			"log_calls":        c.LMS.LogCalls,
		},
		"sync":     map[string]any{"parallel_courses": c.Sync.ParallelCourses},
		"priority": map[string]any{"panic_top_n": c.Priority.PanicTopN},
		"grades":   map[string]any{"target_percent": c.Grades.TargetPercent},
	}
}

// Read implements koanf.Provider.
func (d defaults) Read() (map[string]any, error) {
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out, nil
}

var errDefaultsBytes = errors.New("config: defaults provider does not support ReadBytes")

// ReadBytes implements koanf.Provider; defaults have no raw form.
func (d defaults) ReadBytes() ([]byte, error) {
	return nil, errDefaultsBytes
}
