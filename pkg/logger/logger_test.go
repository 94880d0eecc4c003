package logger_test

import (
	"context"
	"domainimpact/pkg/logger"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		level       string
		wantDebug   bool
		wantErr     bool
	}{
		{
			name:        "development defaults to debug",
			environment: logger.DevelopmentEnvironment,
			wantDebug:   true,
		},
		{
			name:        "production defaults to info",
			environment: logger.ProductionEnvironment,
		},
		{
			name:        "explicit level overrides environment default",
			environment: logger.DevelopmentEnvironment,
			level:       "warn",
		},
		{
			name:        "invalid level",
			environment: logger.ProductionEnvironment,
			level:       "loud",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(tt.environment, tt.level)
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			require.NotNil(t, l)

			ctx := logger.WithLogger(context.Background(), l)
			require.Equal(t, tt.wantDebug, logger.IsDebug(ctx))
		})
	}
}

func TestGetWithoutLoggerIsNop(t *testing.T) {
	l := logger.Get(context.Background())
	require.NotNil(t, l)
	require.NotPanics(t, func() {
		logger.Warn(context.Background(), "nobody listens")
	})
}

func TestWithLogger(t *testing.T) {
	custom, _ := zap.NewDevelopment()
	ctx := logger.WithLogger(context.Background(), custom)

	require.Equal(t, custom, logger.Get(ctx))
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	ctx = logger.WithFields(ctx, zap.String("run_id", "abc"))
	logger.Info(ctx, "detecting")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "detecting", entries[0].Message)
	require.Equal(t, "abc", entries[0].ContextMap()["run_id"])
}

func TestLoggingFunctions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	require.Equal(t, 1, logs.FilterLevelExact(zapcore.DebugLevel).Len())
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.InfoLevel).Len())
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
