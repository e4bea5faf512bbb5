package httpapi

import (
	"context"

	"github.com/rs/zerolog"
)

// defaultMaxBodyBytes bounds JSON request bodies when Options leaves it unset.
const defaultMaxBodyBytes int64 = 1 << 20

// CORSOptions configures the optional CORS middleware. Disabled by default.
type CORSOptions struct {
	Enabled        bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// Options carries everything NewMux needs besides the model.
type Options struct {
	Logger zerolog.Logger
	// MaxBodyBytes limits /chat bodies; <= 0 means 1 MiB.
	MaxBodyBytes int64
	// BaseContext is canceled on shutdown so in-flight generations stop too.
	BaseContext context.Context
	CORS        CORSOptions
}

func (o Options) maxBodyBytes() int64 {
	if o.MaxBodyBytes <= 0 {
		return defaultMaxBodyBytes
	}
	return o.MaxBodyBytes
}

func (o Options) baseContext() context.Context {
	if o.BaseContext == nil {
		return context.Background()
	}
	return o.BaseContext
}
