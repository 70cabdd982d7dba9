package test

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger returns a debug-level sugared logger that duplicates its
// output to stderr and the given writer, so tests can assert on the
// request URLs the client logs.
func Logger(w io.Writer) *zap.SugaredLogger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey: "message",
	})

	writer := zap.CombineWriteSyncers(zapcore.AddSync(os.Stderr), zapcore.AddSync(w))

	return zap.New(zapcore.NewCore(encoder, writer, zapcore.DebugLevel)).Sugar()
}
