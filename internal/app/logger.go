package app

import (
	"os"

	"service-lastmile/internal/config"
	"service-lastmile/internal/logx"
)

// NewLogger builds the JSON stdout logger at the configured level.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.NewJSON(os.Stdout, cfg.LogLevel)
}
