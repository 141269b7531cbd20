package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mu7ammad-3li/cv-lize/internal/config"
)

// ipLimiter hands out one token bucket per client IP. Idle entries are
// dropped after an hour so the map does not grow unbounded.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rpm     float64
	burst   int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(requestsPerMinute float64) *ipLimiter {
	burst := int(requestsPerMinute)
	if burst < 1 {
		burst = 1
	}
	return &ipLimiter{
		clients: make(map[string]*clientLimiter),
		rpm:     requestsPerMinute,
		burst:   burst,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.rpm/60.0), l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()

	if len(l.clients) > 1024 {
		l.evictIdle()
	}
	return c.limiter.Allow()
}

func (l *ipLimiter) evictIdle() {
	cutoff := time.Now().Add(-time.Hour)
	for ip, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}

// limiterSet applies the per-route rate policies. Upload is the
// tightest, analyze sits in the middle and everything else shares the
// global budget.
type limiterSet struct {
	globalLim  *ipLimiter
	uploadLim  *ipLimiter
	analyzeLim *ipLimiter
}

func newLimiterSet(cfg *config.Config) *limiterSet {
	return &limiterSet{
		globalLim:  newIPLimiter(cfg.RateGlobal),
		uploadLim:  newIPLimiter(cfg.RateUpload),
		analyzeLim: newIPLimiter(cfg.RateAnalyze),
	}
}

func (ls *limiterSet) global(next http.HandlerFunc) http.HandlerFunc {
	return limitWith(ls.globalLim, next)
}

func (ls *limiterSet) upload(next http.HandlerFunc) http.HandlerFunc {
	return limitWith(ls.uploadLim, next)
}

func (ls *limiterSet) analyze(next http.HandlerFunc) http.HandlerFunc {
	return limitWith(ls.analyzeLim, next)
}

func limitWith(lim *ipLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !lim.allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next(w, r)
	}
}

// clientIP trusts X-Forwarded-For when present, since deployments sit
// behind a reverse proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
