package factory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-viper/mapstructure/v2"
)

// ModuleConfig selects a pluggable implementation by type name and carries
// its free-form settings.
type ModuleConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Factory builds a T from the raw settings of a ModuleConfig.
type Factory[T any] func(map[string]any) (T, error)

// Registry maps module type names to factories. It is safe for concurrent use.
type Registry[T any] struct {
	mu sync.RWMutex
	m  map[string]Factory[T]
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{m: make(map[string]Factory[T])}
}

// Register binds name to f. Names are registered once.
func (r *Registry[T]) Register(name string, f Factory[T]) error {
	switch {
	case name == "":
		return fmt.Errorf("factory: empty module name")
	case f == nil:
		return fmt.Errorf("factory: nil constructor for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.m[name]; dup {
		return fmt.Errorf("factory: %q already registered", name)
	}
	r.m[name] = f
	return nil
}

// Create looks up cfg.Type and runs its factory on cfg.Conf.
func (r *Registry[T]) Create(cfg ModuleConfig) (T, error) {
	r.mu.RLock()
	f := r.m[cfg.Type]
	r.mu.RUnlock()
	if f == nil {
		var zero T
		return zero, fmt.Errorf("unknown module type %q (known: %v)", cfg.Type, r.Names())
	}
	return f(cfg.Conf)
}

// Names returns the registered names, sorted.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.m))
	for n := range r.m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Decode fills out from data using json tags. Strings are converted to
// numbers, booleans and durations ("5s") as needed; keys out does not
// declare are rejected so misspelt settings fail loudly.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
