package quill

import "github.com/yaklabco/qstripper/pkg/charset"

// Option configures Decode and Lint.
type Option func(*decodeConfig)

type decodeConfig struct {
	italic *bool
}

// WithItalic forces byte 0x13 to be treated as the italic toggle (true) or as
// ordinary text (false). By default italic is recognised only in PC files, the
// later format that introduced it.
func WithItalic(enabled bool) Option {
	return func(c *decodeConfig) {
		c.italic = &enabled
	}
}

func newDecodeConfig(opts []Option) decodeConfig {
	var cfg decodeConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c decodeConfig) italicFor(d charset.Dialect) bool {
	if c.italic != nil {
		return *c.italic
	}
	return d == charset.PC
}
