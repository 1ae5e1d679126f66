package config

import (
	"fmt"
	"math"
	"net/netip"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/eugenenazirov/scrapbin/internal/expiration"
)

// Names of the external inputs read by the resolver set. Every input is
// optional: each setting has either a static default or a computed fallback.
const (
	VarAddressPort      = "SCRAPBIN_ADDRESS_PORT"
	VarBaseURL          = "SCRAPBIN_BASE_URL"
	VarCacheSize        = "SCRAPBIN_CACHE_SIZE"
	VarDatabasePath     = "SCRAPBIN_DATABASE_PATH"
	VarHTTPTimeout      = "SCRAPBIN_HTTP_TIMEOUT"
	VarMaxBodySize      = "SCRAPBIN_MAX_BODY_SIZE"
	VarPasteExpirations = "SCRAPBIN_PASTE_EXPIRATIONS"
	VarSigningKey       = "SCRAPBIN_SIGNING_KEY"
	VarTheme            = "SCRAPBIN_THEME"
	VarTitle            = "SCRAPBIN_TITLE"
	VarPasswordSalt     = "SCRAPBIN_PASSWORD_SALT"
	VarRateLimitRPS     = "SCRAPBIN_RATE_LIMIT_RPS"
	VarRateLimitBurst   = "SCRAPBIN_RATE_LIMIT_BURST"
)

const (
	defaultTitle          = "scrapbin"
	defaultCacheSize      = 128
	defaultMaxBodySize    = 1024 * 1024
	defaultHTTPTimeout    = 5 * time.Second
	defaultPasswordSalt   = "somesalt"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

var defaultAddr = netip.AddrPortFrom(netip.IPv4Unspecified(), 8088)

// maxTimeoutSeconds is the largest second count representable as a time.Duration.
const maxTimeoutSeconds = math.MaxInt64 / int64(time.Second)

// StorageKind selects how pastes are persisted.
type StorageKind int

const (
	// StorageMemory keeps pastes in memory for the lifetime of the process.
	StorageMemory StorageKind = iota
	// StorageFile persists pastes to a JSON file at Path.
	StorageFile
)

// StorageLocation describes where the paste store lives. Path is only
// meaningful for StorageFile.
type StorageLocation struct {
	Kind StorageKind
	Path string
}

// Config is the immutable configuration snapshot produced once at startup.
type Config struct {
	Title          string
	Addr           netip.AddrPort
	BaseURL        *url.URL
	CacheSize      int
	MaxBodySize    int64
	HTTPTimeout    time.Duration
	Storage        StorageLocation
	Key            SigningKey
	Theme          Theme
	PasswordSalt   string
	Expirations    expiration.Set
	RateLimitRPS   float64
	RateLimitBurst int
}

// Resolver converts optional external string inputs into validated settings.
// Each method reads at most one input; a resolution failure is fatal to
// startup and never recovered from.
type Resolver struct {
	provider Provider
	hostname func() (string, error)
}

// Option configures Resolver behaviour.
type Option func(*Resolver)

// WithHostname overrides the host identity lookup, primarily for tests.
func WithHostname(fn func() (string, error)) Option {
	return func(r *Resolver) {
		r.hostname = fn
	}
}

// New constructs a Resolver reading from the given provider.
func New(provider Provider, opts ...Option) *Resolver {
	r := &Resolver{
		provider: provider,
		hostname: os.Hostname,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the full configuration snapshot, aborting on the first
// failure. Aside from the generated signing key, resolving twice from the
// same inputs yields identical values.
func (r *Resolver) Resolve() (Config, error) {
	var cfg Config
	var err error

	if cfg.Title, err = r.Title(); err != nil {
		return Config{}, err
	}
	if cfg.Addr, err = r.AddressPort(); err != nil {
		return Config{}, err
	}
	if cfg.BaseURL, err = r.BaseURL(); err != nil {
		return Config{}, err
	}
	if cfg.CacheSize, err = r.CacheSize(); err != nil {
		return Config{}, err
	}
	if cfg.MaxBodySize, err = r.MaxBodySize(); err != nil {
		return Config{}, err
	}
	if cfg.HTTPTimeout, err = r.HTTPTimeout(); err != nil {
		return Config{}, err
	}
	if cfg.Storage, err = r.StorageLocation(); err != nil {
		return Config{}, err
	}
	if cfg.Key, err = r.SigningKey(); err != nil {
		return Config{}, err
	}
	if cfg.Theme, err = r.Theme(); err != nil {
		return Config{}, err
	}
	if cfg.PasswordSalt, err = r.PasswordSalt(); err != nil {
		return Config{}, err
	}
	if cfg.Expirations, err = r.Expirations(); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = r.RateLimitRPS(); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = r.RateLimitBurst(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Title returns the page title shown by the UI.
func (r *Resolver) Title() (string, error) {
	value, ok, err := r.provider.Lookup(VarTitle)
	if err != nil {
		return "", err
	}
	if !ok {
		return defaultTitle, nil
	}
	return value, nil
}

// AddressPort returns the socket address the HTTP server binds to.
func (r *Resolver) AddressPort() (netip.AddrPort, error) {
	value, ok, err := r.provider.Lookup(VarAddressPort)
	if err != nil {
		return netip.AddrPort{}, err
	}
	if !ok {
		return defaultAddr, nil
	}

	addr, parseErr := netip.ParseAddrPort(value)
	if parseErr != nil {
		return netip.AddrPort{}, fmt.Errorf("parse %s: %w: %q", VarAddressPort, ErrMalformedAddress, value)
	}
	return addr, nil
}

// BaseURL returns the URL used to construct absolute links. When no explicit
// value is supplied it falls back to https:// plus the local hostname.
func (r *Resolver) BaseURL() (*url.URL, error) {
	value, ok, err := r.provider.Lookup(VarBaseURL)
	if err != nil {
		return nil, err
	}
	if ok {
		parsed, parseErr := url.Parse(value)
		if parseErr != nil || !parsed.IsAbs() || parsed.Host == "" {
			return nil, fmt.Errorf("parse %s: %w: %q", VarBaseURL, ErrInvalidURL, value)
		}
		return parsed, nil
	}

	host, lookupErr := r.hostname()
	if lookupErr != nil {
		return nil, fmt.Errorf("resolve %s fallback: %w: %v", VarBaseURL, ErrHostnameLookup, lookupErr)
	}

	parsed, parseErr := url.Parse("https://" + host)
	if parseErr != nil {
		return nil, fmt.Errorf("resolve %s fallback: %w: %q", VarBaseURL, ErrInvalidURL, host)
	}
	return parsed, nil
}

// CacheSize returns the number of served pastes kept in the read cache.
func (r *Resolver) CacheSize() (int, error) {
	value, ok, err := r.provider.Lookup(VarCacheSize)
	if err != nil {
		return 0, err
	}
	if !ok {
		return defaultCacheSize, nil
	}

	size, convErr := strconv.Atoi(value)
	if convErr != nil || size <= 0 {
		return 0, fmt.Errorf("parse %s, expected a positive number of elements: %w: %q", VarCacheSize, ErrMalformedNumber, value)
	}
	return size, nil
}

// MaxBodySize returns the request body ceiling in bytes.
func (r *Resolver) MaxBodySize() (int64, error) {
	value, ok, err := r.provider.Lookup(VarMaxBodySize)
	if err != nil {
		return 0, err
	}
	if !ok {
		return defaultMaxBodySize, nil
	}

	size, convErr := strconv.ParseInt(value, 10, 64)
	if convErr != nil || size < 0 {
		return 0, fmt.Errorf("parse %s, expected a number of bytes: %w: %q", VarMaxBodySize, ErrMalformedNumber, value)
	}
	return size, nil
}

// HTTPTimeout returns the per-request timeout, configured in whole seconds.
func (r *Resolver) HTTPTimeout() (time.Duration, error) {
	value, ok, err := r.provider.Lookup(VarHTTPTimeout)
	if err != nil {
		return 0, err
	}
	if !ok {
		return defaultHTTPTimeout, nil
	}

	seconds, convErr := strconv.ParseInt(value, 10, 64)
	if convErr != nil || seconds < 0 || seconds > maxTimeoutSeconds {
		return 0, fmt.Errorf("parse %s, expected a number of seconds: %w: %q", VarHTTPTimeout, ErrMalformedNumber, value)
	}
	return time.Duration(seconds) * time.Second, nil
}

// StorageLocation selects in-memory storage when no database path is set and
// file-backed storage otherwise.
func (r *Resolver) StorageLocation() (StorageLocation, error) {
	value, ok, err := r.provider.Lookup(VarDatabasePath)
	if err != nil {
		return StorageLocation{}, err
	}
	if !ok {
		return StorageLocation{Kind: StorageMemory}, nil
	}
	return StorageLocation{Kind: StorageFile, Path: value}, nil
}

// SigningKey returns the cookie signing key: freshly generated when no
// material is supplied, otherwise the supplied bytes after a length check.
func (r *Resolver) SigningKey() (SigningKey, error) {
	value, ok, err := r.provider.Lookup(VarSigningKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return generateSigningKey()
	}

	if len(value) < SigningKeyLength {
		return nil, fmt.Errorf("parse %s: %w: got %d bytes, need at least %d",
			VarSigningKey, ErrShortSigningKey, len(value), SigningKeyLength)
	}
	return SigningKey(value), nil
}

// Theme maps the configured name onto the closed theme enumeration.
func (r *Resolver) Theme() (Theme, error) {
	value, ok, err := r.provider.Lookup(VarTheme)
	if err != nil {
		return 0, err
	}
	if !ok {
		return ThemeAyu, nil
	}

	theme, known := themeNames[value]
	if !known {
		return 0, fmt.Errorf("parse %s: %w: %q", VarTheme, ErrUnknownTheme, value)
	}
	return theme, nil
}

// PasswordSalt returns the salt mixed into paste password hashes.
func (r *Resolver) PasswordSalt() (string, error) {
	value, ok, err := r.provider.Lookup(VarPasswordSalt)
	if err != nil {
		return "", err
	}
	if !ok {
		return defaultPasswordSalt, nil
	}
	return value, nil
}

// Expirations parses the paste lifetime list, falling back to the built-in
// list when none is configured.
func (r *Resolver) Expirations() (expiration.Set, error) {
	value, ok, err := r.provider.Lookup(VarPasteExpirations)
	if err != nil {
		return expiration.Set{}, err
	}
	if !ok {
		value = expiration.DefaultSpec
	}

	set, parseErr := expiration.Parse(value)
	if parseErr != nil {
		return expiration.Set{}, fmt.Errorf("parse %s: %w", VarPasteExpirations, parseErr)
	}
	return set, nil
}

// RateLimitRPS returns the allowed requests per second (0 disables limiting).
func (r *Resolver) RateLimitRPS() (float64, error) {
	value, ok, err := r.provider.Lookup(VarRateLimitRPS)
	if err != nil {
		return 0, err
	}
	if !ok {
		return defaultRateLimitRPS, nil
	}

	rps, convErr := strconv.ParseFloat(value, 64)
	if convErr != nil || rps < 0 {
		return 0, fmt.Errorf("parse %s, expected requests per second: %w: %q", VarRateLimitRPS, ErrMalformedNumber, value)
	}
	return rps, nil
}

// RateLimitBurst returns the burst capacity of the rate limiter.
func (r *Resolver) RateLimitBurst() (int, error) {
	value, ok, err := r.provider.Lookup(VarRateLimitBurst)
	if err != nil {
		return 0, err
	}
	if !ok {
		return defaultRateLimitBurst, nil
	}

	burst, convErr := strconv.Atoi(value)
	if convErr != nil || burst < 0 {
		return 0, fmt.Errorf("parse %s, expected a burst size: %w: %q", VarRateLimitBurst, ErrMalformedNumber, value)
	}
	return burst, nil
}
