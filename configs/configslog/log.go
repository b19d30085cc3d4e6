package configslog

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log yapılandırılmış (structured) loglama için kullanılır.
	Log *zap.Logger = zap.NewNop()
	// SLog printf tarzı loglama için kullanılır.
	SLog *zap.SugaredLogger = Log.Sugar()
)

// InitLogger global logger'ları APP_ENV ve LOG_LEVEL değişkenlerine göre kurar.
func InitLogger() {
	InitLoggerWith(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
}

// InitLoggerWith logger'ı verilen ortam ve seviye ile kurar.
func InitLoggerWith(env, level string) {
	var cfg zap.Config
	if strings.EqualFold(env, "development") {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL %q, using %s\n", level, cfg.Level.String())
		} else {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger could not be built: %v\n", err)
		os.Exit(1)
	}
	SetLogger(logger)
}

// SetLogger global logger'ları değiştirir. Testlerde zap.NewNop() ile kullanılır.
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger tamponlanmış log kayıtlarını boşaltır.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
