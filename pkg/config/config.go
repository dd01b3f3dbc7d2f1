package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/sync/singleflight"
)

var (
	ErrParsingConfig = errors.New("config: failed to parse environment")
	ErrNilPointer    = errors.New("config: nil pointer")
)

var (
	mu     sync.RWMutex
	loaded = map[reflect.Type]any{}
	group  singleflight.Group

	dotenv sync.Once
)

// Load parses the environment into v. The first successful load of a type
// is cached and later calls copy the cached value, so every part of the
// program sees the same configuration. Failed loads are not cached.
//
// On first use Load reads ".env" from the working directory when present,
// without overriding variables that are already set.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenv.Do(func() { _ = godotenv.Load() })

	typ := reflect.TypeFor[T]()
	if cached, ok := lookup(typ); ok {
		*v = cached.(T)
		return nil
	}

	res, err, _ := group.Do(typ.PkgPath()+"."+typ.String(), func() (any, error) {
		if cached, ok := lookup(typ); ok {
			return cached, nil
		}
		var cfg T
		if err := env.Parse(&cfg); err != nil {
			return nil, errors.Join(ErrParsingConfig, err)
		}
		store(typ, cfg)
		return cfg, nil
	})
	if err != nil {
		return err
	}
	*v = res.(T)
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: load %T: %v", *new(T), err))
	}
}

// Reload parses the environment into v and replaces the cached value for T.
func Reload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	store(reflect.TypeFor[T](), cfg)
	*v = cfg
	return nil
}

// Reset drops every cached configuration.
func Reset() {
	mu.Lock()
	loaded = map[reflect.Type]any{}
	mu.Unlock()
}

// LoadEnv reads .env files into the process environment, later files
// overriding earlier ones. Without arguments it reads ".env".
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

// MustLoadEnv is like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}

func lookup(typ reflect.Type) (any, bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := loaded[typ]
	return v, ok
}

func store(typ reflect.Type, v any) {
	mu.Lock()
	loaded[typ] = v
	mu.Unlock()
}
