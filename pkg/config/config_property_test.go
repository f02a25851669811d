// Property-based tests for configuration fallback. Any invalid value in the
// config file should fall back to a default rather than leave the service
// with an unusable setting.
package config

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_InvalidDurationsFallBackToDefaults(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	cacheDefaults := DefaultCacheConfig()
	jobDefaults := DefaultJobsConfig()

	properties.Property("non-positive metrics TTL falls back to default", prop.ForAll(
		func(seconds int) bool {
			cfg := &Config{
				Cache: CacheConfig{MetricsTTL: time.Duration(seconds) * time.Second},
			}
			validateAndApplyDefaults(cfg)
			return cfg.Cache.MetricsTTL == cacheDefaults.MetricsTTL
		},
		gen.IntRange(-1000, 0),
	))

	properties.Property("non-positive job intervals fall back to defaults", prop.ForAll(
		func(seconds int) bool {
			cfg := &Config{
				Jobs: JobsConfig{
					MetricsRefreshInterval: time.Duration(seconds) * time.Second,
					OverdueSweepInterval:   time.Duration(seconds) * time.Second,
				},
			}
			validateAndApplyDefaults(cfg)
			return cfg.Jobs.MetricsRefreshInterval == jobDefaults.MetricsRefreshInterval &&
				cfg.Jobs.OverdueSweepInterval == jobDefaults.OverdueSweepInterval
		},
		gen.IntRange(-1000, 0),
	))

	properties.Property("valid durations are kept", prop.ForAll(
		func(seconds int) bool {
			want := time.Duration(seconds) * time.Second
			cfg := &Config{Cache: CacheConfig{MetricsTTL: want}}
			validateAndApplyDefaults(cfg)
			return cfg.Cache.MetricsTTL == want
		},
		gen.IntRange(1, 86400),
	))

	properties.TestingRun(t)
}

func TestProperty_InvalidPortFallsBackToDefault(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("out-of-range ports fall back to 8080", prop.ForAll(
		func(port int) bool {
			cfg := &Config{Server: ServerConfig{Port: port}}
			validateAndApplyDefaults(cfg)
			return cfg.Server.Port == 8080
		},
		gen.OneGenOf(gen.IntRange(-100, 0), gen.IntRange(65536, 100000)),
	))

	properties.TestingRun(t)
}
