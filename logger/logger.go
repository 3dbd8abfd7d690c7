// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package logger builds the file-backed zap logger. The terminal belongs to
// the rater, so nothing is logged to stdout or stderr.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a JSON logger writing to a rotating file at path
func New(path string, debug bool) *zap.Logger {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // Megabytes
		MaxBackups: 3,
		MaxAge:     30, // Days
		Compress:   true,
	}

	return zap.New(newCore(zapcore.AddSync(rotator), debug), zap.AddCaller())
}

func newCore(ws zapcore.WriteSyncer, debug bool) zapcore.Core {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), ws, level)
}
