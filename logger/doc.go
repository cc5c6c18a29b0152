// Package logger provides structured logging using zerolog.
//
// Loggers carry a service name and an optional component tag, and accept
// structured fields as maps:
//
//	log := logger.NewDefault("fobcheck").WithComponent("storage")
//	log.Warn("bucket not found", map[string]interface{}{"bucket": "legi-info"})
package logger
