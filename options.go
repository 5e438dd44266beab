package pngimage

import (
	"github.com/pion/logging"
	"github.com/pion/pngimage/pkg/codec"
)

// DefaultMaxDecodedSize caps the decoded buffer at 1 GiB unless WithMaxDecodedSize
// says otherwise.
const DefaultMaxDecodedSize = 1 << 30

// Options stores parameters used by NewImage.
type Options struct {
	engineBuilder  codec.EngineBuilder
	loggerFactory  logging.LoggerFactory
	maxDecodedSize uint64
}

// Option is a type of NewImage functional option.
type Option func(*Options)

// WithEngine specifies the PNG read engine. The pure Go engine from
// pkg/codec/native is used by default.
func WithEngine(builder codec.EngineBuilder) Option {
	return func(o *Options) {
		o.engineBuilder = builder
	}
}

// WithLoggerFactory specifies the factory the decoder creates its logger from.
func WithLoggerFactory(factory logging.LoggerFactory) Option {
	return func(o *Options) {
		o.loggerFactory = factory
	}
}

// WithMaxDecodedSize limits the size in bytes of the decoded buffer. Images whose
// RowBytes*Height exceed it fail with ErrImageTooLarge before anything is allocated.
func WithMaxDecodedSize(n uint64) Option {
	return func(o *Options) {
		o.maxDecodedSize = n
	}
}
