package log

import "go.uber.org/zap"

// L is the process logger, set by Init.
var L *zap.Logger = zap.NewNop()

// Init builds the zap logger: JSON in prod, console in dev.
func Init(prod bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if prod {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	L = l
	return l, nil
}
