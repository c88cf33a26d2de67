package scopes

import (
	"github.com/go-ole/go-ole"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// ComApartmentScope initializes a single-threaded COM apartment on the
// calling goroutine's OS thread for the lifetime of the scope. Callers
// must run on a locked OS thread (runtime.LockOSThread) since COM
// apartments are thread-affine.
type ComApartmentScope struct {
	active bool
}

// InitSingleThreaded enters a single-threaded apartment.
func InitSingleThreaded() (*ComApartmentScope, error) {
	if err := ole.CoInitialize(0); err != nil {
		return nil, oserr.FromWindowsError("scopes.InitSingleThreaded", err)
	}
	return &ComApartmentScope{active: true}, nil
}

// Close leaves the apartment entered on construction.
func (s *ComApartmentScope) Close() error {
	if s == nil || !s.active {
		return nil
	}
	s.active = false
	ole.CoUninitialize()
	return nil
}
