package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu    sync.Mutex
	cache = make(map[reflect.Type]any)

	loadDotEnv sync.Once
)

// Load parses environment variables into the struct pointed to by cfg.
// Each struct type is parsed once per process; later calls for the same type
// return the cached value. cfg must be a non-nil pointer to a struct.
func Load(cfg any) error {
	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("config: expected non-nil pointer to struct, got %T", cfg)
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("config: expected pointer to struct, got %T", cfg)
	}

	loadDotEnv.Do(func() {
		// Missing .env files are fine; real config may come from the process env.
		_ = godotenv.Load()
	})

	mu.Lock()
	defer mu.Unlock()

	t := elem.Type()
	if cached, ok := cache[t]; ok {
		elem.Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}

	cache[t] = elem.Interface()
	return nil
}

// MustLoad is Load that panics on failure. Intended for application startup.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
