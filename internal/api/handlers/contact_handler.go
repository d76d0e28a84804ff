package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/providers"
)

const (
	maxContactNameLength    = 200
	maxContactEmailLength   = 200
	maxContactPhoneLength   = 40
	maxContactSubjectLength = 200
	maxContactMessageLength = 2000
)

// ContactService defines the contact operations used by the handler.
type ContactService interface {
	Create(ctx context.Context, message *entities.ContactMessage) error
	Info() entities.ContactInfo
}

// ContactLimits bounds how often one client can use the contact form.
type ContactLimits struct {
	RateLimit   int
	RateWindow  time.Duration
	DedupWindow time.Duration
	// TrustedProxies are the peers whose X-Forwarded-For and X-Real-IP
	// headers are believed. Requests from anyone else are keyed on the
	// connection address.
	TrustedProxies []netip.Prefix
}

// ParseTrustedProxies reads a comma separated list of IPs and CIDR ranges.
func ParseTrustedProxies(raw string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "/") {
			prefix, err := netip.ParsePrefix(part)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", part, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(part)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", part, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// DefaultContactLimits allows five messages an hour and drops repeats for a day.
func DefaultContactLimits() ContactLimits {
	return ContactLimits{
		RateLimit:   5,
		RateWindow:  time.Hour,
		DedupWindow: 24 * time.Hour,
	}
}

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	service ContactService
	cache   providers.CacheProvider
	limits  ContactLimits
	local   *localRateLimiter
	deduper *localDeduper
}

// NewContactHandler creates a new contact handler. With a nil cache, rate
// limiting and duplicate suppression are tracked in process.
func NewContactHandler(service ContactService, cache providers.CacheProvider, limits ContactLimits) *ContactHandler {
	defaults := DefaultContactLimits()
	if limits.RateLimit <= 0 {
		limits.RateLimit = defaults.RateLimit
	}
	if limits.RateWindow <= 0 {
		limits.RateWindow = defaults.RateWindow
	}
	if limits.DedupWindow <= 0 {
		limits.DedupWindow = defaults.DedupWindow
	}
	return &ContactHandler{
		service: service,
		cache:   cache,
		limits:  limits,
		local:   newLocalRateLimiter(),
		deduper: newLocalDeduper(),
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// GetContactInfo handles GET /api/contact/info
func (h *ContactHandler) GetContactInfo(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Info())
}

// SubmitContact handles POST /api/contact
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var payload contactRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Phone = strings.TrimSpace(payload.Phone)
	payload.Subject = strings.TrimSpace(payload.Subject)
	payload.Message = strings.TrimSpace(payload.Message)

	for _, field := range []struct {
		name  string
		value string
		max   int
	}{
		{"name", payload.Name, maxContactNameLength},
		{"email", payload.Email, maxContactEmailLength},
		{"phone", payload.Phone, maxContactPhoneLength},
		{"subject", payload.Subject, maxContactSubjectLength},
		{"message", payload.Message, maxContactMessageLength},
	} {
		if len(field.value) > field.max {
			respondWithError(w, http.StatusBadRequest, field.name+" is too long")
			return
		}
	}

	ip := h.clientIP(r)
	allowed, retryAfter := h.allowRequest(r.Context(), "contact:rate:"+ip)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	dupKey := "contact:dup:" + contactFingerprint(payload, ip)
	if h.isDuplicate(r.Context(), dupKey) {
		respondWithJSON(w, http.StatusAccepted, map[string]string{
			"status": "duplicate_ignored",
		})
		return
	}

	message := &entities.ContactMessage{
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Subject:   payload.Subject,
		Message:   payload.Message,
		UserAgent: r.UserAgent(),
	}

	if err := h.service.Create(r.Context(), message); err != nil {
		h.forget(r.Context(), dupKey)
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"status": "received",
		"id":     message.ID,
	})
}

func (h *ContactHandler) allowRequest(ctx context.Context, key string) (bool, time.Duration) {
	if h.cache == nil {
		return h.local.allow(key, h.limits.RateLimit, h.limits.RateWindow)
	}

	state := rateLimitState{}
	if data, err := h.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= h.limits.RateLimit {
		return false, h.limits.RateWindow
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = h.cache.Set(ctx, key, data, int(h.limits.RateWindow.Seconds()))
	return true, h.limits.RateWindow
}

type rateLimitState struct {
	Count int `json:"count"`
}

func (h *ContactHandler) isDuplicate(ctx context.Context, key string) bool {
	if h.cache == nil {
		return h.deduper.seen(key, h.limits.DedupWindow)
	}

	exists, err := h.cache.Exists(ctx, key)
	if err == nil && exists {
		return true
	}

	_ = h.cache.Set(ctx, key, []byte("1"), int(h.limits.DedupWindow.Seconds()))
	return false
}

// forget clears a fingerprint so a rejected message can be corrected and resent.
func (h *ContactHandler) forget(ctx context.Context, key string) {
	if h.cache == nil {
		h.deduper.forget(key)
		return
	}
	_ = h.cache.Delete(ctx, key)
}

type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := state.resetAt.Sub(now)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

type localDeduper struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newLocalDeduper() *localDeduper {
	return &localDeduper{
		entries: make(map[string]time.Time),
	}
}

func (d *localDeduper) seen(key string, window time.Duration) bool {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if expiresAt, ok := d.entries[key]; ok && now.Before(expiresAt) {
		return true
	}

	d.entries[key] = now.Add(window)
	return false
}

func (d *localDeduper) forget(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.entries, key)
}

// clientIP returns the address limits are keyed on. Forwarding headers are
// only honoured when the peer is a trusted proxy; X-Forwarded-For is read
// right to left, skipping trusted hops.
func (h *ContactHandler) clientIP(r *http.Request) string {
	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		remote = host
	}
	if !h.trustedProxy(remote) {
		return remote
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !h.trustedProxy(hop) {
				return hop
			}
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return remote
}

func (h *ContactHandler) trustedProxy(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range h.limits.TrustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func contactFingerprint(payload contactRequest, ip string) string {
	normalized := []string{
		strings.ToLower(payload.Email),
		normalizeText(payload.Subject),
		normalizeText(payload.Message),
		ip,
	}

	hash := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(hash[:])
}

func normalizeText(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}
