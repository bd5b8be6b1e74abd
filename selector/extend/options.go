package extend

import "github.com/MeKo-Christian/sassel/selector/weave"

// Options configures one Extend call: how deep recursive extension may
// chain before it is treated as a loop, and the weave resource limits.
type Options struct {
	MaxDepth int
	Limits   *weave.Limits
}

// Option mutates an Options value; see WithMaxDepth and WithLimits.
type Option func(*Options)

// WithMaxDepth overrides the default recursion depth used to detect
// @extend loops.
func WithMaxDepth(n int) Option {
	return func(o *Options) { o.MaxDepth = n }
}

// WithLimits overrides the weave resource limits applied while expanding.
func WithLimits(l *weave.Limits) Option {
	return func(o *Options) { o.Limits = l }
}

func defaultOptions() Options {
	return Options{MaxDepth: 100, Limits: weave.DefaultLimits}
}
