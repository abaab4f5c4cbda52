package loader

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/keychar/internal/charmap"
)

// Registry errors.
var (
	// ErrDeviceNotFound indicates no map is installed for the device.
	ErrDeviceNotFound = errors.New("no map installed for device")
)

// Registry holds the published key character map for each device.
//
// Readers share installed maps without locking; every mutation works on
// a clone and republishes, so a map visible to readers never changes
// underneath them.
type Registry struct {
	mu   sync.RWMutex
	maps map[int32]*charmap.Map
	log  zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		maps: make(map[int32]*charmap.Map),
		log:  log,
	}
}

// Install publishes a map for a device, replacing any previous one.
func (r *Registry) Install(deviceID int32, m *charmap.Map) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maps[deviceID] = m
	r.log.Info().
		Int32("device", deviceID).
		Str("source", m.SourceName()).
		Stringer("type", m.KeyboardType()).
		Msg("map installed")
}

// Get returns the published map for a device.
func (r *Registry) Get(deviceID int32) (*charmap.Map, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.maps[deviceID]
	return m, ok
}

// Remove unpublishes the map for a device.
func (r *Registry) Remove(deviceID int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.maps, deviceID)
}

// Devices returns the device ids with installed maps.
func (r *Registry) Devices() []int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int32, 0, len(r.maps))
	for id := range r.maps {
		ids = append(ids, id)
	}
	return ids
}

// ApplyOverlay combines an overlay onto a clone of the device's map and
// publishes the result. Concurrent readers keep the previous snapshot.
func (r *Registry) ApplyOverlay(deviceID int32, overlay *charmap.Map) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	base, ok := r.maps[deviceID]
	if !ok {
		return ErrDeviceNotFound
	}
	next := base.Clone()
	if err := next.Combine(overlay); err != nil {
		return err
	}
	r.maps[deviceID] = next
	r.log.Info().
		Int32("device", deviceID).
		Str("overlay", overlay.SourceName()).
		Msg("overlay applied")
	return nil
}

// ClearOverlay reverts all overlays on the device's map by re-parsing
// its original source and publishes the result. The published map is
// unchanged on failure.
func (r *Registry) ClearOverlay(deviceID int32, src SourceReader) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	base, ok := r.maps[deviceID]
	if !ok {
		return ErrDeviceNotFound
	}
	next := base.Clone()
	if err := next.ClearLayoutOverlay(src); err != nil {
		return err
	}
	r.maps[deviceID] = next
	r.log.Info().
		Int32("device", deviceID).
		Str("source", next.SourceName()).
		Msg("overlay cleared")
	return nil
}
