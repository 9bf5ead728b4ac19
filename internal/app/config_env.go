package app

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every Config env tag.
const EnvPrefix = "GOPAGES_"

// ApplyEnv overrides cfg fields whose GOPAGES_* variable is set. Unset
// variables leave the field untouched, so env sits above the config file and
// below flags.
func ApplyEnv(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
