package charmap

import "fmt"

// SourceReader re-reads named source text so an applied overlay can be
// reverted. Reading the bytes is the caller's responsibility; the map
// core never performs I/O of its own.
type SourceReader interface {
	ReadSource(name string) (string, error)
}

// Combine layers an overlay map onto this map in place. Overlay entries
// replace base entries wholesale on key code collision; remap tables are
// union-merged with overlay entries winning. The overlay must have been
// parsed in overlay format.
//
// The map must not be read concurrently while it is being combined.
func (m *Map) Combine(overlay *Map) error {
	if overlay == nil || overlay.keyboardType != KeyboardOverlay {
		return ErrNotOverlay
	}
	for code, key := range overlay.keys {
		m.keys[code] = key.clone()
	}
	for scanCode, code := range overlay.keysByScanCode {
		m.keysByScanCode[scanCode] = code
	}
	for usageCode, code := range overlay.keysByUsageCode {
		m.keysByUsageCode[usageCode] = code
	}
	for from, to := range overlay.keyRemap {
		m.keyRemap[from] = to
	}
	m.overlayApplied = true
	return nil
}

// ClearLayoutOverlay reverts all applied overlays by re-parsing the
// map's original source. If the source can no longer be read the map is
// left in its current overlaid state and ErrSourceUnavailable is
// returned.
func (m *Map) ClearLayoutOverlay(src SourceReader) error {
	if !m.overlayApplied {
		return ErrNoOverlay
	}
	contents, err := src.ReadSource(m.sourceName)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrSourceUnavailable, m.sourceName, err)
	}
	fresh, err := Load(m.sourceName, contents, FormatBase)
	if err != nil {
		return err
	}
	*m = *fresh
	return nil
}
