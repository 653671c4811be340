package contract

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns the diagnostic logger. When verbose is false it returns a
// no-op logger so that nothing but results reach the terminal. Logs go to
// stderr, keeping stdout clean for JSON and CSV output.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfgZap := zap.NewProductionConfig()
	cfgZap.Level.SetLevel(zapcore.DebugLevel)
	cfgZap.Encoding = "console"
	cfgZap.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfgZap.OutputPaths = []string{"stderr"}
	cfgZap.ErrorOutputPaths = []string{"stderr"}
	return cfgZap.Build()
}
