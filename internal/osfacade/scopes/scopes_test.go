package scopes

import "testing"

func TestPrivilegeScopeCloseIsNilSafe(t *testing.T) {
	var p *PrivilegeScope
	if err := p.Close(); err != nil {
		t.Fatalf("Close on nil scope: %v", err)
	}
}

func TestFsRedirectScopeCloseIsNilSafe(t *testing.T) {
	var s *FsRedirectScope
	if err := s.Close(); err != nil {
		t.Fatalf("Close on nil scope: %v", err)
	}
}

func TestFsRedirectScopeCloseIsIdempotentWhenInactive(t *testing.T) {
	s := &FsRedirectScope{}
	if err := s.Close(); err != nil {
		t.Fatalf("Close on inactive scope: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close on inactive scope: %v", err)
	}
}

func TestComApartmentScopeCloseIsNilSafe(t *testing.T) {
	var s *ComApartmentScope
	if err := s.Close(); err != nil {
		t.Fatalf("Close on nil scope: %v", err)
	}
}

func TestComApartmentScopeCloseIsIdempotentWhenInactive(t *testing.T) {
	s := &ComApartmentScope{}
	if err := s.Close(); err != nil {
		t.Fatalf("Close on inactive scope: %v", err)
	}
}
