package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Field = zapcore.Field

var (
	Int     = zap.Int
	Int64   = zap.Int64
	Float64 = zap.Float64
	String  = zap.String
	Time    = zap.Time
	Error   = zap.Error
	Any     = zap.Any
)
