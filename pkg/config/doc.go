// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. Every
// billing package declares its own Config struct with env tags; the binary
// loads each of them through Load:
//
//	var ledgerCfg ledger.Config
//	if err := config.Load(&ledgerCfg); err != nil {
//		return err
//	}
//
// Each configuration type is parsed once per process and cached by its fully
// qualified type name. LoadEnv merges one or more .env files into the
// environment before parsing; later files win, real environment variables
// always win. ResetCache and ForceReload exist for tests.
//
// Errors can be compared with errors.Is: ErrParsingConfig, ErrConfigNotLoaded,
// ErrNilPointer and ErrLoadingEnvFile.
package config
