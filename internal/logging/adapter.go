package logging

import "go.uber.org/zap"

// Adapter exposes a zap logger through the key/value Logger interface
// used by the player package.
type Adapter struct {
	sugar *zap.SugaredLogger
}

// NewAdapter wraps l. The caller skip accounts for the adapter and the
// player's own logging helpers.
func NewAdapter(l *zap.Logger) *Adapter {
	return &Adapter{sugar: l.WithOptions(zap.AddCallerSkip(2)).Sugar()}
}

// Debug logs msg at debug level with alternating keys and values.
func (a *Adapter) Debug(msg string, keysAndValues ...interface{}) {
	a.sugar.Debugw(msg, keysAndValues...)
}

// Info logs msg at info level.
func (a *Adapter) Info(msg string, keysAndValues ...interface{}) {
	a.sugar.Infow(msg, keysAndValues...)
}

// Error logs msg at error level.
func (a *Adapter) Error(msg string, keysAndValues ...interface{}) {
	a.sugar.Errorw(msg, keysAndValues...)
}
