package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log *zap.SugaredLogger

	level      = zapcore.WarnLevel
	outputPath = "stderr"
)

func init() {
	Log = build()
}

func parseLevel(l string) zapcore.Level {
	switch l {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func build() *zap.SugaredLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if outputPath == "stderr" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.TimeKey = "ts"
		config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	}
	config.Encoding = "console"
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{outputPath}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// SetLevel sets the minimum level: debug, info, warn or error. Anything
// else means warn.
func SetLevel(l string) {
	level = parseLevel(l)
	Log = build()
}

// SetOutput sends log lines to the file at path instead of stderr. The
// terminal UI owns the screen, so it logs to a file.
func SetOutput(path string) {
	if path == "" {
		path = "stderr"
	}
	outputPath = path
	Log = build()
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Log.Sync()
}
