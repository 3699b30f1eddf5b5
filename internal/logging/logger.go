// server/internal/logging/logger.go
package logging

import (
	"fmt"
	"os"
	"time"

	"global-track-api-server/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the process logger: console output plus a rotated file
// per run under the configured directory.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	runTimestamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	logFile := fmt.Sprintf("%s/global-track-api-server-%s.log", cfg.Directory, runTimestamp)

	lumberjackLogger := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB before it rolls
		MaxBackups: 7,
		MaxAge:     30, // days
		Compress:   true,
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(lumberjackLogger), zap.InfoLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.InfoLevel),
	)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return logger, nil
}
