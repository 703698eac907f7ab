package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilTarget is returned when Load receives a nil pointer.
var ErrNilTarget = errors.New("config target must be a non-nil pointer")

var (
	envOnce sync.Once
	cache   sync.Map // reflect.Type -> any (value copy of the parsed struct)
)

// loadEnvFiles reads .env into the process environment once.
// A missing file is fine: production takes its values from the real environment.
func loadEnvFiles() {
	envOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load parses environment variables into cfg.
// The first call for a given type parses the environment; later calls
// for the same type copy the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilTarget
	}

	key := reflect.TypeFor[T]()
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	loadEnvFiles()

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("failed to parse %s from environment: %w", key, err)
	}

	actual, _ := cache.LoadOrStore(key, parsed)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load that panics on error. Meant for process startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached configuration. Tests use it between cases
// that change the environment.
func Reset() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}
