package nodes

import "testing"

func TestLooksDirish(t *testing.T) {
	cases := map[string]bool{
		"docs/":   true,
		"docs/*":  true,
		".":       true,
		"foo.md":  false,
		"docs":    false,
		"a/b/c.*": true,
	}
	for path, want := range cases {
		if got := LooksDirish(path); got != want {
			t.Errorf("LooksDirish(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLooksFileish(t *testing.T) {
	if LooksFileish("docs/") {
		t.Error("LooksFileish(\"docs/\") = true, want false")
	}
	if !LooksFileish("foo.md") {
		t.Error("LooksFileish(\"foo.md\") = false, want true")
	}
}

func TestLooksWildcardish(t *testing.T) {
	if !LooksWildcardish("docs/*") {
		t.Error("expected wildcardish")
	}
	if LooksWildcardish("docs/foo.md") {
		t.Error("expected not wildcardish")
	}
}

func TestLooksGlobish(t *testing.T) {
	if !LooksGlobish("docs/**/*") {
		t.Error("expected globish")
	}
	if LooksGlobish("docs/*") {
		t.Error("single wildcard must not be globish")
	}
}
