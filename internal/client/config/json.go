package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/trackit/internal/flagx"
	"github.com/dmitrijs2005/trackit/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the debounce delay either as a string
// like "300ms" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL       string         `json:"base_url"`
	DebounceDelay timex.Duration `json:"debounce_delay"`
}

// parseJson overlays Config with values loaded from a JSON file located via
// the -c/-config flags. Missing flag means no JSON is loaded. Read or
// unmarshal errors panic (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.DebounceDelay.Duration != 0 {
		cfg.DebounceDelay = time.Duration(jc.DebounceDelay.Duration)
	}
}
