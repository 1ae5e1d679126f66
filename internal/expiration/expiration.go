// Package expiration parses the paste lifetime list: a comma-separated,
// ordered sequence of non-negative second counts where zero means "never
// expires" and at most one entry carries a trailing `=d` marker selecting it
// as the default offered to users.
package expiration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultSpec is the built-in expiration list used when no list is configured.
// It must always parse; Parse'ing it is covered by a dedicated test.
const DefaultSpec = "0,600,3600=d,86400,604800,2419200,29030400"

// Never is the sentinel duration for pastes that do not expire.
const Never = time.Duration(0)

const defaultMarker = "=d"

// maxSeconds is the largest second count representable as a time.Duration.
const maxSeconds = math.MaxInt64 / int64(time.Second)

var (
	// ErrEmpty is returned when the list contains no entries.
	ErrEmpty = errors.New("expiration list must contain at least one entry")
	// ErrMalformedToken is returned when an entry is not a non-negative number of seconds.
	ErrMalformedToken = errors.New("expected a non-negative number of seconds")
	// ErrMultipleDefaults is returned when more than one entry carries the default marker.
	ErrMultipleDefaults = errors.New("only one entry may carry the default marker")
	// ErrDuplicate is returned when the same duration appears twice.
	ErrDuplicate = errors.New("duplicate expiration value")
)

// Set is an ordered collection of candidate paste lifetimes with exactly one
// entry designated as the default. Order is significant: it dictates the
// presentation order offered to users.
type Set struct {
	durations    []time.Duration
	defaultIndex int
}

// Parse parses a comma-separated list of second counts, e.g. "0,600,3600=d".
// When no entry carries the `=d` marker, the first entry becomes the default.
func Parse(s string) (Set, error) {
	if strings.TrimSpace(s) == "" {
		return Set{}, ErrEmpty
	}

	tokens := strings.Split(s, ",")
	durations := make([]time.Duration, 0, len(tokens))
	seen := make(map[time.Duration]struct{}, len(tokens))
	marked := -1

	for i, token := range tokens {
		token = strings.TrimSpace(token)
		numeric := token

		if strings.HasSuffix(token, defaultMarker) {
			if marked >= 0 {
				return Set{}, fmt.Errorf("entry %q: %w", token, ErrMultipleDefaults)
			}
			marked = i
			numeric = strings.TrimSuffix(token, defaultMarker)
		}

		seconds, err := strconv.ParseInt(numeric, 10, 64)
		if err != nil || seconds < 0 || seconds > maxSeconds {
			return Set{}, fmt.Errorf("entry %q: %w", token, ErrMalformedToken)
		}

		duration := time.Duration(seconds) * time.Second
		if _, dup := seen[duration]; dup {
			return Set{}, fmt.Errorf("entry %q: %w", token, ErrDuplicate)
		}
		seen[duration] = struct{}{}
		durations = append(durations, duration)
	}

	if marked < 0 {
		marked = 0
	}

	return Set{durations: durations, defaultIndex: marked}, nil
}

// Durations returns the lifetimes in presentation order.
func (s Set) Durations() []time.Duration {
	out := make([]time.Duration, len(s.durations))
	copy(out, s.durations)
	return out
}

// Len returns the number of entries.
func (s Set) Len() int {
	return len(s.durations)
}

// Default returns the pre-selected lifetime.
func (s Set) Default() time.Duration {
	return s.durations[s.defaultIndex]
}

// DefaultIndex returns the position of the pre-selected lifetime.
func (s Set) DefaultIndex() int {
	return s.defaultIndex
}

// Contains reports whether d is one of the configured lifetimes.
func (s Set) Contains(d time.Duration) bool {
	for _, candidate := range s.durations {
		if candidate == d {
			return true
		}
	}
	return false
}
