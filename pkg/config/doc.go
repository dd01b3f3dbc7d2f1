// Package config loads typed configuration from environment variables with
// github.com/caarlos0/env/v11, optionally seeded from .env files through
// github.com/joho/godotenv.
//
//	type StorageConfig struct {
//	    Driver string `env:"STORAGE_DRIVER" envDefault:"local"`
//	    Dir    string `env:"STORAGE_DIR" envDefault:"./data/exports"`
//	}
//
//	config.MustLoadEnv(".env", ".env.local")
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Each struct type is parsed once per process and cached. Concurrent first
// loads of the same type share a single parse. A failed parse is returned
// wrapped in ErrParsingConfig and can be retried after the environment is
// fixed. Reload and Reset exist for tests.
package config
