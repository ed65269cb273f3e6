package logger

import (
	"testing"

	"github.com/deppfellow/go-invoicing/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestGetPgxTraceLogLevel(t *testing.T) {
	tests := map[zerolog.Level]tracelog.LogLevel{
		zerolog.TraceLevel: tracelog.LogLevelTrace,
		zerolog.DebugLevel: tracelog.LogLevelDebug,
		zerolog.InfoLevel:  tracelog.LogLevelInfo,
		zerolog.WarnLevel:  tracelog.LogLevelWarn,
		zerolog.ErrorLevel: tracelog.LogLevelError,
		zerolog.FatalLevel: tracelog.LogLevelError,
		zerolog.Disabled:   tracelog.LogLevelNone,
	}
	for level, want := range tests {
		assert.Equal(t, int(want), GetPgxTraceLogLevel(level), level.String())
	}
}

func TestLoggerServiceWithoutLicense(t *testing.T) {
	service := NewLoggerService(config.DefaultObservabilityConfig())
	assert.Nil(t, service.GetApplication())

	var nilService *LoggerService
	assert.Nil(t, nilService.GetApplication())
	nilService.Shutdown()
}

func TestNewLoggerLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	log := NewLogger(cfg)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}
