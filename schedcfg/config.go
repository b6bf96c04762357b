// Package schedcfg loads a declarative YAML document describing static
// post-attach task tuning (period and enabled state, by name) and
// applies it to an already-populated core.TaskRegistry. It exists for
// host-side bring-up and integration tests, where it is convenient to
// retune a fixed set of attached tasks without recompiling.
//
// Grounded on the pack's vrunq/internal/sched.Config loader: defaults
// first, YAML overrides on top. Loaded values are not clamped.
package schedcfg

import (
	"os"

	yaml "github.com/goccy/go-yaml"

	"github.com/GitMoDu/HarmonicScheduler/core"
)

// TaskTuning is one task's desired period and enabled state.
type TaskTuning struct {
	PeriodMs uint32 `yaml:"period_ms"`
	Enabled  bool   `yaml:"enabled"`
}

// Config mirrors the on-disk document: a map from task name to its
// desired tuning.
type Config struct {
	Tasks map[string]TaskTuning `yaml:"tasks"`
}

// Load reads a YAML document at path. An empty path, a missing file, or a
// malformed document all yield an empty Config rather than an error, since
// this loader is for bring-up convenience, not a hard dependency of
// startup.
func Load(path string) Config {
	cfg := Config{Tasks: map[string]TaskTuning{}}
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)
	if cfg.Tasks == nil {
		cfg.Tasks = map[string]TaskTuning{}
	}
	return cfg
}

// Apply looks up each configured task name in ids and, on a hit, pushes
// its tuning to the registry via SetPeriodAndEnabled. Names absent from
// ids or from the config are left untouched. Returns the number of
// tunings applied.
func (c Config) Apply(registry *core.TaskRegistry, ids map[string]core.TaskID) int {
	applied := 0
	for name, tuning := range c.Tasks {
		id, ok := ids[name]
		if !ok {
			continue
		}
		registry.SetPeriodAndEnabled(id, tuning.PeriodMs, tuning.Enabled)
		applied++
	}
	return applied
}
