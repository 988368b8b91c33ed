package fluentval

import (
	"sync"
	"sync/atomic"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EngineConfig carries the process-wide engine defaults, populated from
// environment variables. It is parsed lazily, at most once.
type EngineConfig struct {
	// CascadeMode is the default cascade mode applied to validators that do
	// not override it. Accepts "continue" or "stop_on_first_failure".
	CascadeMode string `env:"FLUENTVAL_CASCADE" envDefault:"continue"`

	// DisableRuleCache turns off the process-wide rule cache so that rule
	// definitions run on every validator construction.
	DisableRuleCache bool `env:"FLUENTVAL_DISABLE_RULE_CACHE" envDefault:"false"`
}

var (
	engineConfig     EngineConfig
	engineConfigOnce sync.Once

	// cascadeOverride holds an explicit process-wide cascade default set via
	// SetDefaultCascadeMode; it takes precedence over the environment.
	cascadeOverride atomic.Pointer[CascadeMode]
)

func loadEngineConfig() EngineConfig {
	engineConfigOnce.Do(func() {
		// The .env file is optional; absence is not an error.
		_ = godotenv.Load()
		if err := env.Parse(&engineConfig); err != nil {
			engineConfig = EngineConfig{CascadeMode: "continue"}
		}
	})
	return engineConfig
}

// DefaultCascadeMode returns the process-wide default cascade mode. The value
// is resolved lazily each time a validator's cascade mode is queried, so an
// override applies to subsequent validations of already-built validators.
func DefaultCascadeMode() CascadeMode {
	if m := cascadeOverride.Load(); m != nil {
		return *m
	}
	mode, err := ParseCascadeMode(loadEngineConfig().CascadeMode)
	if err != nil {
		return Continue
	}
	return mode
}

// SetDefaultCascadeMode overrides the process-wide default cascade mode.
// Intended for the application's composition root and tests.
func SetDefaultCascadeMode(mode CascadeMode) {
	cascadeOverride.Store(&mode)
}

// ResetDefaultCascadeMode removes a previously set override so the
// environment-configured default applies again.
func ResetDefaultCascadeMode() {
	cascadeOverride.Store(nil)
}

func ruleCacheDisabledByEnv() bool {
	return loadEngineConfig().DisableRuleCache
}
