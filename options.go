package addrange

import "github.com/go-kit/log"

// Option configures a Range at construction time.
type Option func(*options)

type options struct {
	logger    log.Logger
	looseCIDR bool
}

func defaultOptions() options {
	return options{logger: log.NewNopLogger()}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for debug records about range mutations.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLooseCIDR makes ParseCIDR accept an address with host bits set. The
// supplied address becomes the first bound and the last bound is obtained by
// setting every host bit to one. Without it such input fails with ErrUnparsableCidr.
func WithLooseCIDR() Option {
	return func(o *options) {
		o.looseCIDR = true
	}
}
