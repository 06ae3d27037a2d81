package platform

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Fixed is a Provider backed by value tables. Missing entries report
// ErrUnsupported. It is meant for tests and offline rendering.
type Fixed struct {
	Colours     map[ColourID]Colour
	Fonts       map[FontID]Font
	Metrics     map[MetricID]int
	DisplayList []Display
	DisplayErr  error
	Paths       map[PathID]string
	Options     map[string]string
	Env         []string
	EnvErr      error
	MiscValues  map[MiscID]string
	Build       *debug.BuildInfo
	Session     string

	// ResolveHostName backs FullHostName. A nil func reports ErrUnsupported.
	ResolveHostName func(ctx context.Context) (string, error)
}

var _ Provider = (*Fixed)(nil)

func (f *Fixed) Colour(id ColourID) (Colour, error) {
	if c, ok := f.Colours[id]; ok {
		return c, nil
	}
	return Colour{}, fmt.Errorf("colour %d: %w", id, ErrUnsupported)
}

func (f *Fixed) Font(id FontID) (Font, error) {
	if v, ok := f.Fonts[id]; ok {
		return v, nil
	}
	return Font{}, fmt.Errorf("font %d: %w", id, ErrUnsupported)
}

func (f *Fixed) Metric(id MetricID) (int, error) {
	if v, ok := f.Metrics[id]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("metric %d: %w", id, ErrUnsupported)
}

func (f *Fixed) Displays() ([]Display, error) {
	if f.DisplayErr != nil {
		return nil, f.DisplayErr
	}
	return append([]Display(nil), f.DisplayList...), nil
}

func (f *Fixed) StandardPath(id PathID) (string, error) {
	if v, ok := f.Paths[id]; ok {
		return v, nil
	}
	return "", fmt.Errorf("path %d: %w", id, ErrUnsupported)
}

func (f *Fixed) SystemOption(name string) (string, bool) {
	v, ok := f.Options[name]
	return v, ok
}

func (f *Fixed) Environ() ([]string, error) {
	if f.EnvErr != nil {
		return nil, f.EnvErr
	}
	return append([]string(nil), f.Env...), nil
}

func (f *Fixed) Misc(id MiscID) (string, error) {
	if v, ok := f.MiscValues[id]; ok {
		return v, nil
	}
	return "", fmt.Errorf("misc %d: %w", id, ErrUnsupported)
}

func (f *Fixed) FullHostName(ctx context.Context) (string, error) {
	if f.ResolveHostName == nil {
		return "", ErrUnsupported
	}
	return f.ResolveHostName(ctx)
}

func (f *Fixed) BuildInfo() (*debug.BuildInfo, bool) {
	return f.Build, f.Build != nil
}

func (f *Fixed) SessionType() string {
	return f.Session
}
