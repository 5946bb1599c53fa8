package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger. It discards output until InitLogger runs.
var Logger = zerolog.Nop()

// InitLogger configures Logger. Debug mode writes human readable console
// output, otherwise JSON lines go to stdout.
func InitLogger(level string, debug bool) {
	var output io.Writer = os.Stdout
	if debug {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if debug && lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}

	Logger = zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(lvl)

	Logger.Info().Str("level", lvl.String()).Msg("logger initialised")
}

// SetLogger replaces Logger, mainly so tests can capture output.
func SetLogger(l zerolog.Logger) {
	Logger = l
}

// LogApiRequest logs an inbound request. Callers redact headers and body
// before passing them in.
func LogApiRequest(method, url, requestID string, params, body, headers interface{}) {
	Logger.Info().
		Str("method", method).
		Str("url", url).
		Str("requestId", requestID).
		Interface("params", params).
		Interface("body", body).
		Interface("headers", headers).
		Msg("api request")
}

// LogApiResponse logs the response written for a request. Errors log at
// error level.
func LogApiResponse(method, url, requestID, tenantID string, statusCode int, responseTime time.Duration, responseBody interface{}) {
	event := Logger.Info()
	if statusCode >= 400 {
		event = Logger.Error()
	}
	event.
		Str("method", method).
		Str("url", url).
		Str("requestId", requestID).
		Str("tenantId", tenantID).
		Int("statusCode", statusCode).
		Dur("responseTime", responseTime).
		Interface("body", responseBody).
		Msg("api response")
}

// LogInfo logs message with a context map.
func LogInfo(context map[string]interface{}, message string) {
	Logger.Info().
		Interface("context", context).
		Msg(message)
}

// LogError logs err with a context map.
func LogError(err error, context map[string]interface{}, message string) {
	Logger.Error().
		Err(err).
		Interface("context", context).
		Msg(message)
}

// LogDbOperation traces a store call at debug level.
func LogDbOperation(operation string, collection string, query interface{}, result interface{}) {
	Logger.Debug().
		Str("operation", operation).
		Str("collection", collection).
		Interface("query", query).
		Interface("result", result).
		Msg("db operation")
}
