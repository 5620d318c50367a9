// Package logging provides structured logging for the Bakery service.
//
// This package wraps Go's standard log/slog package so every component
// logs with the same format and default fields.
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("starting service", "port", 5555)
//	logger.Error("failed to open database", "error", err)
//
// Never log secrets such as the MQTT password or InfluxDB token.
package logging
