package config

import "errors"

var (
	// ErrMalformedNumber is returned when a numeric setting cannot be parsed
	// into its target type or violates its range constraint.
	ErrMalformedNumber = errors.New("expected a number")
	// ErrMalformedAddress is returned when the bind address is not ip:port.
	ErrMalformedAddress = errors.New("expected ip:port")
	// ErrInvalidURL is returned when a supplied base URL is not an absolute URL.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrNotText is returned when a present input value is not valid UTF-8.
	ErrNotText = errors.New("value contains non-text data")
	// ErrUnknownTheme is returned when the theme name matches no known theme.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrShortSigningKey is returned when supplied key material is below the
	// minimum length of the signing primitive.
	ErrShortSigningKey = errors.New("signing key material too short")
	// ErrHostnameLookup is returned when the base URL fallback cannot resolve
	// the local hostname.
	ErrHostnameLookup = errors.New("hostname lookup failed")
)
