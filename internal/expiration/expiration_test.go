package expiration

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseOrderedListWithMarker(t *testing.T) {
	set, err := Parse("0,600,3600=d,86400")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []time.Duration{0, 600 * time.Second, 3600 * time.Second, 86400 * time.Second}
	got := set.Durations()
	if len(got) != len(want) {
		t.Fatalf("unexpected durations: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if set.DefaultIndex() != 2 {
		t.Fatalf("expected default index 2, got %d", set.DefaultIndex())
	}
	if set.Default() != 3600*time.Second {
		t.Fatalf("expected default 1h, got %s", set.Default())
	}
}

func TestParseUnmarkedListDefaultsToFirstEntry(t *testing.T) {
	set, err := Parse("600,3600")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if set.DefaultIndex() != 0 {
		t.Fatalf("expected first entry as default, got index %d", set.DefaultIndex())
	}
}

func TestParseRejectsMultipleDefaults(t *testing.T) {
	_, err := Parse("600=d,3600=d")
	if !errors.Is(err, ErrMultipleDefaults) {
		t.Fatalf("expected ErrMultipleDefaults, got %v", err)
	}
}

func TestParseRejectsMalformedTokens(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"negative", "60,-5"},
		{"non-numeric", "60,soon"},
		{"bare marker", "=d"},
		{"empty entry", "60,,3600"},
		{"overflows duration", "60,10000000000"},
		{"overflows duration as default", "60,10000000000=d"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			if !errors.Is(err, ErrMalformedToken) {
				t.Fatalf("expected ErrMalformedToken, got %v", err)
			}
		})
	}
}

func TestParseNamesOffendingToken(t *testing.T) {
	_, err := Parse("60,-5")
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := `"-5"`; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to name %s, got %q", want, err)
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse("600,3600,600")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestParseRejectsEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   "} {
		if _, err := Parse(input); !errors.Is(err, ErrEmpty) {
			t.Fatalf("input %q: expected ErrEmpty, got %v", input, err)
		}
	}
}

func TestDefaultSpecAlwaysParses(t *testing.T) {
	set, err := Parse(DefaultSpec)
	if err != nil {
		t.Fatalf("built-in expiration list failed to parse: %v", err)
	}
	if set.Len() != 7 {
		t.Fatalf("expected 7 entries, got %d", set.Len())
	}
	if set.Default() != time.Hour {
		t.Fatalf("expected 1h default, got %s", set.Default())
	}
	if !set.Contains(Never) {
		t.Fatalf("expected built-in list to offer the never-expires entry")
	}
}

func TestContains(t *testing.T) {
	set, err := Parse("0,600")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !set.Contains(600 * time.Second) {
		t.Fatalf("expected 600s to be contained")
	}
	if set.Contains(time.Minute) {
		t.Fatalf("did not expect 60s to be contained")
	}
}
