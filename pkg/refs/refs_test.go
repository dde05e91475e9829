package refs

import "testing"

func TestRegister(t *testing.T) {
	r := New(nil)

	r.Register("", "api/Browser.md", "")
	r.Register("Browser", "", "")
	if r.Len() != 0 {
		t.Errorf("Len() = %d after empty registrations, want 0", r.Len())
	}

	r.Register("Browser", "/book/api/Browser.md", "")
	e, ok := r.Lookup("Browser")
	if !ok || e.Target != "/book/api/Browser.md" {
		t.Errorf("Lookup(Browser) = %+v, %v", e, ok)
	}

	r.Register("Browser", "/book/api/Other.md", "The browser")
	e, _ = r.Lookup("Browser")
	if e.Target != "/book/api/Other.md" || e.Title != "The browser" {
		t.Errorf("Lookup(Browser) after overwrite = %+v", e)
	}

	if _, ok := r.Lookup("Widget"); ok {
		t.Error("Lookup(Widget) should miss")
	}
}

func TestUserRegistrationOverridesBuiltin(t *testing.T) {
	r := New(Builtins())
	before, ok := r.Lookup("Element")
	if !ok || !IsURL(before.Target) {
		t.Fatalf("builtin Element = %+v, %v", before, ok)
	}

	r.Register("Element", "/book/api/Element.md", "")
	after, _ := r.Lookup("Element")
	if after.Target != "/book/api/Element.md" {
		t.Errorf("Element target = %q, want user registration", after.Target)
	}
}

func TestBuiltinsIsACopy(t *testing.T) {
	b := Builtins()
	b["void"] = "changed"
	if Builtins()["void"] == "changed" {
		t.Error("Builtins() should return a fresh copy")
	}
	if len(Builtins()) < 20 {
		t.Errorf("len(Builtins()) = %d, want at least 20", len(Builtins()))
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{"https://nodejs.org/api/", true},
		{"http://example.com", true},
		{"ftp://example.com/x", true},
		{"Enumerations.md#key", false},
		{"/book/api/Browser.md", false},
		{"httpish.md", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsURL(tt.target); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}
