// Package config loads filterkit configuration from YAML files,
// .env files, and environment variables.
//
// Lookup order is YAML file, then .env file, then process environment,
// with later sources overriding earlier ones. Environment variables use
// the FILTERKIT_ prefix with underscores for nesting, for example
// FILTERKIT_SINK_TIMEOUT or FILTERKIT_LOGGER_LEVEL.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	sink, err := httpsink.New(cfg.Sink)
package config
