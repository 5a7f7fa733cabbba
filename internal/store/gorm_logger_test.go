package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Test_GormLogger_Trace(t *testing.T) {
	fc := func() (string, int64) { return "SELECT 1", 1 }

	tests := []struct {
		name      string
		mode      gormlogger.LogLevel
		begin     time.Time
		err       error
		wantLevel zapcore.Level
		wantMsg   string
		wantNone  bool
	}{
		{"failed query", gormlogger.Info, time.Now(), errors.New("boom"), zapcore.ErrorLevel, "query failed", false},
		{"not found is not an error", gormlogger.Info, time.Now(), gorm.ErrRecordNotFound, zapcore.DebugLevel, "query", false},
		{"slow query", gormlogger.Info, time.Now().Add(-time.Minute), nil, zapcore.WarnLevel, "slow query", false},
		{"plain query", gormlogger.Info, time.Now(), nil, zapcore.DebugLevel, "query", false},
		{"plain query below info mode", gormlogger.Warn, time.Now(), nil, 0, "", true},
		{"silent", gormlogger.Silent, time.Now(), errors.New("boom"), 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			l := NewGormLogger(zap.New(core), time.Second).LogMode(tt.mode)

			l.Trace(context.Background(), tt.begin, fc, tt.err)

			if tt.wantNone {
				assert.Zero(t, logs.Len())
				return
			}

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, tt.wantMsg, entry.Message)
			assert.Equal(t, "gorm", entry.LoggerName)
			assert.Equal(t, "SELECT 1", entry.ContextMap()["sql"])
		})
	}
}

func Test_GormLogger_LogMode(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := NewGormLogger(zap.New(core), 0)

	quiet := base.LogMode(gormlogger.Error)
	quiet.Info(context.Background(), "hidden %d", 1)
	quiet.Warn(context.Background(), "hidden %d", 2)
	quiet.Error(context.Background(), "shown %d", 3)

	base.Info(context.Background(), "shown %d", 4)

	messages := make([]string, 0, logs.Len())
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{"shown 3", "shown 4"}, messages)
}
