//go:build !linux

package mpris

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ func(Command)) (*Adapter, error) {
	return &Adapter{}, nil
}

// SetStatus is a no-op on non-Linux platforms.
func (a *Adapter) SetStatus(_ Status) {}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
