package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every override variable, e.g. LANDLORD_MAX_ROUNDS.
const EnvPrefix = "LANDLORD_"

type envOverrides struct {
	StartingBalance *int   `env:"STARTING_BALANCE"`
	LapBonus        *int   `env:"LAP_BONUS"`
	MaxRounds       *int   `env:"MAX_ROUNDS"`
	Seed            *int64 `env:"SEED"`
}

// ApplyEnv overrides scalar settings from the process environment.
func ApplyEnv(g Game) (Game, error) {
	return applyEnv(g, env.Options{Prefix: EnvPrefix})
}

// ApplyEnvFrom is ApplyEnv over an explicit environment.
func ApplyEnvFrom(g Game, environ map[string]string) (Game, error) {
	return applyEnv(g, env.Options{Prefix: EnvPrefix, Environment: environ})
}

func applyEnv(g Game, opts env.Options) (Game, error) {
	var o envOverrides
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return Game{}, fmt.Errorf("parse env: %w", err)
	}
	out := g.Clone()
	if o.StartingBalance != nil {
		out.StartingBalance = *o.StartingBalance
	}
	if o.LapBonus != nil {
		out.LapBonus = *o.LapBonus
	}
	if o.MaxRounds != nil {
		out.MaxRounds = *o.MaxRounds
	}
	if o.Seed != nil {
		out.Seed = o.Seed
	}
	return out, nil
}
