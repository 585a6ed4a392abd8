package logger

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger создает логгер с двойным выводом: в консоль и в файл.
func NewLogger() *zap.Logger {
	if err := os.MkdirAll("./logs", 0o755); err != nil {
		panic(err)
	}

	dualConfig := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		OutputPaths:      []string{"stdout", "./logs/app.log"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}
