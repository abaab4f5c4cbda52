package loader

import (
	"github.com/rs/zerolog"

	"github.com/dshills/keychar/internal/charmap"
)

// SourceReader is re-exported for callers wiring their own sources.
type SourceReader = charmap.SourceReader

// Loader reads key character map sources and parses them under a
// declared acceptance format.
type Loader struct {
	src    SourceReader
	accept charmap.Format
	log    zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFormat sets the acceptance format. The default is FormatAny.
func WithFormat(format charmap.Format) Option {
	return func(l *Loader) { l.accept = format }
}

// WithLogger sets the loader's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// New creates a loader reading from the given source.
func New(src SourceReader, opts ...Option) *Loader {
	l := &Loader{
		src:    src,
		accept: charmap.FormatAny,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the loader's source reader, for overlay reverts.
func (l *Loader) Source() SourceReader {
	return l.src
}

// Load reads and parses the named source.
func (l *Loader) Load(name string) (*charmap.Map, error) {
	contents, err := l.src.ReadSource(name)
	if err != nil {
		l.log.Error().Err(err).Str("source", name).Msg("map source unavailable")
		return nil, err
	}
	return l.LoadContents(name, contents)
}

// LoadContents parses already-read contents under the loader's
// acceptance format.
func (l *Loader) LoadContents(name, contents string) (*charmap.Map, error) {
	m, err := charmap.Load(name, contents, l.accept)
	if err != nil {
		l.log.Error().Err(err).Str("source", name).Msg("map parse failed")
		return nil, err
	}
	l.log.Debug().
		Str("source", name).
		Stringer("type", m.KeyboardType()).
		Int("keys", len(m.KeyCodes())).
		Msg("map loaded")
	return m, nil
}
