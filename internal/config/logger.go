package config

import (
	"go.uber.org/zap"
)

// Log is the structured application logger, SLog its sugared form.
// Both are no-ops until InitLogger runs.
var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger builds the logger for the given APP_MODE
func InitLogger(mode string) error {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "prod" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}

	Log = l
	SLog = l.Sugar()
	return nil
}

// SyncLogger flushes buffered log entries
func SyncLogger() {
	_ = Log.Sync()
}
