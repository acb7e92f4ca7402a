package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// Config holds outbound client configuration
type Config struct {
	// Name identifies the upstream in metrics and logs
	Name string
	// Timeout bounds a whole request including reading the body
	Timeout time.Duration
	// RequestsPerSecond and Burst configure the per-host token bucket; 0 disables limiting
	RequestsPerSecond float64
	Burst             int
	// MaxBodyBytes caps how much of a response body GetJSON and ReadBody will read
	MaxBodyBytes int64
	// FailureRatio and MinRequests control when a host's breaker opens
	FailureRatio float64
	MinRequests  uint32
	// OpenTimeout is how long a breaker stays open before going half-open
	OpenTimeout time.Duration
	UserAgent   string
	// BlockPrivateNetworks refuses connections to loopback, private,
	// link-local and unspecified addresses after DNS resolution.
	// Set for clients that fetch user-supplied URLs.
	BlockPrivateNetworks bool
}

// DefaultConfig returns defaults suitable for public JSON APIs
func DefaultConfig(name string) Config {
	return Config{
		Name:              name,
		Timeout:           10 * time.Second,
		RequestsPerSecond: 5,
		Burst:             10,
		MaxBodyBytes:      2 << 20,
		FailureRatio:      0.5,
		MinRequests:       5,
		OpenTimeout:       30 * time.Second,
		UserAgent:         "WishFlow/1.0",
	}
}

// hostIdleTTL is how long an unused host keeps its limiter and breaker
const hostIdleTTL = 30 * time.Minute

var (
	// ErrCircuitOpen is returned when a host's breaker rejects a request
	ErrCircuitOpen = gobreaker.ErrOpenState
	// ErrBlockedAddress is returned when BlockPrivateNetworks refuses a destination
	ErrBlockedAddress = errors.New("destination address is not allowed")
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wishflow_outbound_requests_total",
			Help: "Outbound HTTP requests by upstream and result",
		},
		[]string{"client", "status"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wishflow_outbound_request_duration_seconds",
			Help:    "Outbound HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"client"},
	)
	openBreakers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wishflow_circuit_breakers_open",
			Help: "Number of upstream hosts whose circuit breaker is open",
		},
		[]string{"client"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, openBreakers)
}

// hostGuard is the limiter and breaker for one destination host
type hostGuard struct {
	breaker *gobreaker.CircuitBreaker[*http.Response]
	limiter *rate.Limiter
}

// Client is an HTTP client with per-host rate limiting and circuit breaking.
// One failing host never blocks requests to another.
type Client struct {
	httpClient *http.Client
	config     Config

	mu    sync.Mutex
	hosts *cache.Cache
}

// New creates a client for one upstream
func New(cfg Config) *Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if cfg.BlockPrivateNetworks {
		// A proxy would hide the real destination from the dial check
		transport.Proxy = nil
		dialer.Control = rejectPrivate
	}
	openBreakers.WithLabelValues(cfg.Name).Set(0)

	hosts := cache.New(hostIdleTTL, hostIdleTTL/2)
	hosts.OnEvicted(func(_ string, v interface{}) {
		if g, ok := v.(*hostGuard); ok && g.breaker.State() == gobreaker.StateOpen {
			openBreakers.WithLabelValues(cfg.Name).Dec()
		}
	})

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		hosts:  hosts,
	}
}

// rejectPrivate runs after DNS resolution, so address is always ip:port
func rejectPrivate(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublicIP(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

func isPublicIP(ip net.IP) bool {
	return !(ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified())
}

func (c *Client) guardFor(host string) *hostGuard {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.hosts.Get(host); ok {
		g := v.(*hostGuard)
		c.hosts.SetDefault(host, g)
		return g
	}

	g := &hostGuard{breaker: c.newBreaker(host)}
	if c.config.RequestsPerSecond > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(c.config.RequestsPerSecond), c.config.Burst)
	}
	c.hosts.SetDefault(host, g)
	return g
}

func (c *Client) newBreaker(host string) *gobreaker.CircuitBreaker[*http.Response] {
	cfg := c.config
	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        cfg.Name + "/" + host,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state change")
			switch {
			case to == gobreaker.StateOpen:
				openBreakers.WithLabelValues(cfg.Name).Inc()
			case from == gobreaker.StateOpen:
				openBreakers.WithLabelValues(cfg.Name).Dec()
			}
		},
	})
}

// Get performs a GET through the destination host's limiter and breaker.
// 5xx responses and transport errors count as breaker failures and are returned as errors.
// The caller owns the body of a successful response.
func (c *Client) Get(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create GET request: %w", err)
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if c.config.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	guard := c.guardFor(req.URL.Host)
	if guard.limiter != nil {
		if err := guard.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: rate limit wait: %w", c.config.Name, err)
		}
	}

	start := time.Now()
	resp, err := guard.breaker.Execute(func() (*http.Response, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			body := c.readSnippet(resp)
			return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
		}
		return resp, nil
	})
	requestDuration.WithLabelValues(c.config.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		status := "error"
		var se *StatusError
		switch {
		case errors.As(err, &se):
			status = strconv.Itoa(se.StatusCode)
		case errors.Is(err, ErrCircuitOpen), errors.Is(err, gobreaker.ErrTooManyRequests):
			status = "circuit_open"
		case errors.Is(err, ErrBlockedAddress):
			status = "blocked"
		}
		requestsTotal.WithLabelValues(c.config.Name, status).Inc()
		return nil, fmt.Errorf("%s: %w", c.config.Name, err)
	}

	requestsTotal.WithLabelValues(c.config.Name, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// GetJSON performs a GET and decodes a 2xx JSON body into v
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	header := http.Header{}
	header.Set("Accept", "application/json")

	resp, err := c.Get(ctx, url, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: %w", c.config.Name, &StatusError{StatusCode: resp.StatusCode, Body: c.readSnippet(resp)})
	}

	if err := json.NewDecoder(c.limitBody(resp.Body)).Decode(v); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.config.Name, err)
	}
	return nil
}

// ReadBody reads a response body up to MaxBodyBytes and closes it
func (c *Client) ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(c.limitBody(resp.Body))
}

// State returns the breaker state for host (host[:port]); unseen hosts are closed
func (c *Client) State(host string) gobreaker.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.hosts.Get(host); ok {
		return v.(*hostGuard).breaker.State()
	}
	return gobreaker.StateClosed
}

func (c *Client) limitBody(r io.Reader) io.Reader {
	if c.config.MaxBodyBytes <= 0 {
		return r
	}
	return io.LimitReader(r, c.config.MaxBodyBytes)
}

func (c *Client) readSnippet(resp *http.Response) string {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return string(body)
}
