// Package logger provides structured logging for filterkit packages
// using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Usage
//
//	log := logger.NewDefault("my-client")
//	log.Info("request sent", logger.Fields("uri", uri))
package logger
