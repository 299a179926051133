package rng

import "go.uber.org/zap"

// loggedSource wraps a Source and logs every draw at debug level,
// giving an audit trail for generation and combat rolls.
type loggedSource struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedSource returns a Source that draws from src and logs each
// value to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) Source {
	return &loggedSource{src: src, logger: logger}
}

// Intn draws from the underlying source and logs the result.
func (l *loggedSource) Intn(n int) int {
	v := l.src.Intn(n)
	l.logger.Debug("rng draw",
		zap.Int("n", n),
		zap.Int("value", v),
	)
	return v
}

// Float64 draws from the underlying source and logs the result.
func (l *loggedSource) Float64() float64 {
	v := l.src.Float64()
	l.logger.Debug("rng draw",
		zap.Float64("value", v),
	)
	return v
}
