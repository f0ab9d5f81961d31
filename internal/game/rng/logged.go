package rng

import "go.uber.org/zap"

// Logged wraps a Source and logs every generated byte at debug level.
type Logged struct {
	src    Source
	logger *zap.Logger
}

// NewLogged creates a Logged source.
//
// Precondition: src and logger must be non-nil.
func NewLogged(src Source, logger *zap.Logger) *Logged {
	return &Logged{src: src, logger: logger}
}

// Generate draws from the wrapped source and logs the byte.
func (l *Logged) Generate() byte {
	b := l.src.Generate()
	l.logger.Debug("rng draw", zap.Uint8("output", b))
	return b
}

// State forwards to the wrapped source when it is an Inspector, else (0, 0).
func (l *Logged) State() (s, t byte) {
	if in, ok := l.src.(Inspector); ok {
		return in.State()
	}
	return 0, 0
}

// History forwards to the wrapped source when it is an Inspector, else nil.
func (l *Logged) History() []Draw {
	if in, ok := l.src.(Inspector); ok {
		return in.History()
	}
	return nil
}
