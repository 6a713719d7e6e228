// Package config loads process configuration from the environment.
//
// All engine variables share the NBACK_ENGINE_ prefix. Commands layer
// flag.FlagSet bindings over the parsed environment so flags win.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
