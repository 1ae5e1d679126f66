package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/eugenenazirov/scrapbin/internal/auth"
	"github.com/eugenenazirov/scrapbin/internal/cache"
	"github.com/eugenenazirov/scrapbin/internal/config"
	"github.com/eugenenazirov/scrapbin/internal/expiration"
	"github.com/eugenenazirov/scrapbin/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// passwordHeader carries the password for protected pastes.
const passwordHeader = "X-Paste-Password"

// Handler wires the paste store, read cache, and resolved settings into HTTP
// handlers.
type Handler struct {
	store        storage.Store
	cache        *cache.LRU[storage.Paste]
	baseURL      *url.URL
	title        string
	theme        string
	maxBodySize  int64
	passwordSalt string
	expirations  expiration.Set

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler from the store and the resolved configuration.
func NewHandler(store storage.Store, cfg config.Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		store:        store,
		cache:        cache.New[storage.Paste](cfg.CacheSize),
		baseURL:      cfg.BaseURL,
		title:        cfg.Title,
		theme:        cfg.Theme.String(),
		maxBodySize:  cfg.MaxBodySize,
		passwordSalt: cfg.PasswordSalt,
		expirations:  cfg.Expirations,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleMeta(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := metaResponse{
		Title:       h.title,
		Theme:       h.theme,
		BaseURL:     h.baseURL.String(),
		MaxBodySize: h.maxBodySize,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleExpirations(w http.ResponseWriter, r *http.Request) {
	_ = r
	durations := h.expirations.Durations()
	choices := make([]expirationChoice, len(durations))
	for i, d := range durations {
		choices[i] = expirationChoice{
			Seconds: int64(d / time.Second),
			Default: i == h.expirations.DefaultIndex(),
		}
	}
	writeJSON(w, http.StatusOK, expirationsResponse{Expirations: choices})
}

func (h *Handler) handleCreatePaste(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req createPasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Paste too large", "request body exceeds the configured limit")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "text must not be empty")
		return
	}

	lifetime := h.expirations.Default()
	if req.ExpiresIn != nil {
		lifetime = time.Duration(*req.ExpiresIn) * time.Second
		if !h.expirations.Contains(lifetime) {
			writeError(w, http.StatusBadRequest, "Invalid expiration", "expiresIn is not one of the offered lifetimes")
			return
		}
	}

	now := h.clock()
	paste := storage.Paste{
		ID:        uuid.NewString(),
		Text:      req.Text,
		CreatedAt: now,
	}
	if lifetime != expiration.Never {
		paste.ExpiresAt = now.Add(lifetime)
	}
	if req.Password != "" {
		paste.PasswordHash = auth.HashPassword(req.Password, h.passwordSalt)
	}

	if err := h.store.Put(paste); err != nil {
		writeInternalError(w, err)
		return
	}

	resp := pasteCreatedResponse{
		ID:        paste.ID,
		URL:       h.baseURL.JoinPath(paste.ID).String(),
		CreatedAt: paste.CreatedAt,
	}
	if !paste.ExpiresAt.IsZero() {
		resp.ExpiresAt = &paste.ExpiresAt
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) handleGetPaste(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	paste, ok := h.lookupPaste(w, id)
	if !ok {
		return
	}

	if !h.authorized(w, r, paste) {
		return
	}

	h.cache.Put(id, paste)

	resp := pasteResponse{
		ID:        paste.ID,
		Text:      paste.Text,
		CreatedAt: paste.CreatedAt,
	}
	if !paste.ExpiresAt.IsZero() {
		resp.ExpiresAt = &paste.ExpiresAt
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDeletePaste(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	paste, ok := h.lookupPaste(w, id)
	if !ok {
		return
	}

	if !h.authorized(w, r, paste) {
		return
	}

	if err := h.store.Delete(id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		writeInternalError(w, err)
		return
	}
	h.cache.Remove(id)

	w.WriteHeader(http.StatusNoContent)
}

// lookupPaste fetches the paste from cache or store, purging entries whose
// lifetime elapsed while cached. Writes the error response on failure.
func (h *Handler) lookupPaste(w http.ResponseWriter, id string) (storage.Paste, bool) {
	paste, cached := h.cache.Get(id)
	if !cached {
		var err error
		paste, err = h.store.Get(id)
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found", "no paste with this id")
			return storage.Paste{}, false
		}
		if err != nil {
			writeInternalError(w, err)
			return storage.Paste{}, false
		}
	}

	if !paste.ExpiresAt.IsZero() && !h.clock().Before(paste.ExpiresAt) {
		h.cache.Remove(id)
		_ = h.store.Delete(id)
		writeError(w, http.StatusNotFound, "Not found", "no paste with this id")
		return storage.Paste{}, false
	}

	return paste, true
}

// authorized enforces the password on protected pastes. Writes the error
// response when access is denied.
func (h *Handler) authorized(w http.ResponseWriter, r *http.Request, paste storage.Paste) bool {
	if !paste.Protected() {
		return true
	}

	password := r.Header.Get(passwordHeader)
	if password == "" {
		writeError(w, http.StatusUnauthorized, "Password required", "this paste is password protected")
		return false
	}
	if !auth.Verify(password, h.passwordSalt, paste.PasswordHash) {
		writeError(w, http.StatusForbidden, "Wrong password", "the supplied password does not match")
		return false
	}
	return true
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type createPasteRequest struct {
	Text      string `json:"text"`
	ExpiresIn *int64 `json:"expiresIn,omitempty"`
	Password  string `json:"password,omitempty"`
}

type pasteCreatedResponse struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type pasteResponse struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type metaResponse struct {
	Title       string `json:"title"`
	Theme       string `json:"theme"`
	BaseURL     string `json:"baseUrl"`
	MaxBodySize int64  `json:"maxBodySize"`
}

type expirationChoice struct {
	Seconds int64 `json:"seconds"`
	Default bool  `json:"default"`
}

type expirationsResponse struct {
	Expirations []expirationChoice `json:"expirations"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
