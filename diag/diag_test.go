package diag

import (
	"errors"
	"testing"
)

func TestCodeString(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{CatalogError, "catalog-error"},
		{PatternDecodeError, "pattern-decode-error"},
		{AnalysisTimeout, "analysis-timeout"},
		{UnverifiedReference, "unverified-reference"},
		{Code(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.code.String(); got != c.want {
			t.Errorf("Code(%d).String() = %q, want %q", c.code, got, c.want)
		}
	}
}

func TestWarningStringIncludesErr(t *testing.T) {
	w := New(CatalogError, "filter#7", errors.New("not found"))
	want := "catalog-error: filter#7: not found"
	if got := w.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestWarningStringWithoutErr(t *testing.T) {
	w := New(AnalysisTimeout, "op#file-write-data", nil)
	want := "analysis-timeout: op#file-write-data"
	if got := w.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
