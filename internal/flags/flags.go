// Package flags provides feature flag support for optional editor behavior.
// Flags come from the config file and may be overridden on the command line.
// Unknown flags read as disabled.
package flags

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/zjrosen/rowedit/internal/log"
)

const (
	// FlagRenderCache memoizes rendered rows between redraws.
	FlagRenderCache = "render-cache"

	// FlagWelcomeBanner draws the version banner when the document is empty.
	FlagWelcomeBanner = "welcome-banner"
)

// Known describes every flag the editor reads.
var Known = map[string]string{
	FlagRenderCache:   "memoize rendered rows between redraws",
	FlagWelcomeBanner: "show the version banner on an empty document",
}

// Registry holds feature flag state.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map. Names the editor does not know
// are kept but logged.
func New(flags map[string]bool) *Registry {
	r := &Registry{flags: make(map[string]bool, len(flags))}
	maps.Copy(r.flags, flags)
	for name := range r.flags {
		if _, ok := Known[name]; !ok {
			log.Warn(log.CatConfig, "unknown feature flag in config", "flag", name)
		}
	}
	log.Debug(log.CatConfig, "feature flags initialized", "flags", r.All())
	return r
}

// Override applies "name=value" assignments on top of the registry. A bare
// name enables the flag. Only known flags may be overridden.
func (r *Registry) Override(assignments []string) error {
	for _, a := range assignments {
		name, value, hasValue := strings.Cut(strings.TrimSpace(a), "=")
		if _, ok := Known[name]; !ok {
			return fmt.Errorf("unknown feature flag %q (known: %s)", name, strings.Join(Names(), ", "))
		}
		enabled := true
		if hasValue {
			v, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("feature flag %s: %q is not a boolean", name, value)
			}
			enabled = v
		}
		r.flags[name] = enabled
		log.Debug(log.CatConfig, "feature flag overridden", "flag", name, "enabled", enabled)
	}
	return nil
}

// Enabled reports whether the named flag is on. Unknown flags and a nil
// registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.flags[name]
}

// All returns a copy of the flag state.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}

// Names returns the known flag names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(Known))
}
