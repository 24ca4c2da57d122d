//go:build !windows && !darwin && !linux && !freebsd && !netbsd && !openbsd

package rdisplay

type unsupportedProvider struct{}

func (unsupportedProvider) Screens() ([]Screen, error) {
	return nil, ErrUnsupported
}

// NewVideoProvider returns a service that reports ErrUnsupported
func NewVideoProvider() (Service, error) {
	return unsupportedProvider{}, nil
}

func platformBackends() []Backend {
	return nil
}
