package easymath

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CatchPanicOrError runs f and converts a panic into an ordinary error.
// The evaluation path relies on it to turn runtime faults into NaN.
func CatchPanicOrError(f func() error) error {
	var err error
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			var ok bool
			if err, ok = r.(error); !ok {
				err = fmt.Errorf("%v", r)
			}
		}()
		err = f()
	}()
	return err
}

// newVerboseLogger builds the logger attached to an expression in
// verbose mode.
func newVerboseLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("04:05.000")
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log.WithOptions(zap.AddStacktrace(zapcore.FatalLevel)).Sugar()
}

const license = "easymath is open source software licensed under the MIT license"

// License returns the license info of the library.
func License() string {
	return license
}
