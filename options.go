package ip2loc

type options struct {
	logger  *Logger
	mmap    bool
	noIndex bool
}

// Option configures New and Open.
type Option func(*options)

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMmap makes Open map uncompressed files read-only instead of reading
// them into memory. The mapping is released by Close, so Close must not be
// called while lookups are in flight on another goroutine.
func WithMmap() Option {
	return func(o *options) {
		o.mmap = true
	}
}

// WithoutIndex makes lookups ignore the index and binary search the whole
// table.
func WithoutIndex() Option {
	return func(o *options) {
		o.noIndex = true
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: NoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
