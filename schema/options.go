package schema

// TypeMapper maps a declared kind to an output type.
type TypeMapper func(Kind) Type

// Option configures a single synthesis call.
type Option func(*config)

type config struct {
	mapType      TypeMapper
	trailingLine bool
}

func newConfig(opts []Option) *config {
	cfg := &config{mapType: MapType}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithTypeMapper replaces MapType for one call. A nil mapper is ignored.
func WithTypeMapper(m TypeMapper) Option {
	return func(c *config) {
		if m != nil {
			c.mapType = m
		}
	}
}

// WithUnterminatedLastLine makes the description scan also consider a final
// line that has no trailing newline. By default such a line is ignored.
func WithUnterminatedLastLine() Option {
	return func(c *config) {
		c.trailingLine = true
	}
}
