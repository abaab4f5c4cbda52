package main

import (
	"github.com/dshills/keychar/internal/charmap"
	"github.com/dshills/keychar/internal/loader"
)

// loadWithOverlays loads the base map file and combines any --overlay
// files onto it.
func loadWithOverlays(path string) (*charmap.Map, error) {
	format, err := acceptFormat()
	if err != nil {
		return nil, err
	}
	src := loader.NewFileSource(".")
	base, err := loader.New(src, loader.WithFormat(format), loader.WithLogger(log)).Load(path)
	if err != nil {
		return nil, err
	}
	overlayLoader := loader.New(src,
		loader.WithFormat(charmap.FormatOverlay), loader.WithLogger(log))
	for _, overlayPath := range flagOverlay {
		overlay, err := overlayLoader.Load(overlayPath)
		if err != nil {
			return nil, err
		}
		if err := base.Combine(overlay); err != nil {
			return nil, err
		}
	}
	return base, nil
}
