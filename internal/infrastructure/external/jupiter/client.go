package jupiter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/shared"
	"github.com/evolucao-hub/evolucao-academica/pkg/circuitbreaker"
	"github.com/evolucao-hub/evolucao-academica/pkg/logger"
	"github.com/evolucao-hub/evolucao-academica/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the registry client.
type ClientConfig struct {
	// BaseURL is the registry base URL
	BaseURL string

	// Timeout is the HTTP request timeout
	Timeout time.Duration

	// RateLimiterConfig for request pacing
	RateLimiterConfig RateLimiterConfig

	// Retry behavior
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration

	// Circuit breaker settings
	CircuitBreakerThreshold   int
	CircuitBreakerTimeout     time.Duration
	CircuitBreakerHalfOpenMax int

	// Logger for structured logging
	Logger *logger.Logger

	// Debug enables request logging
	Debug bool
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL:                   baseURL,
		Timeout:                   30 * time.Second,
		RateLimiterConfig:         DefaultRateLimiterConfig(),
		MaxRetries:                3,
		RetryBaseDelay:            1 * time.Second,
		RetryMaxDelay:             30 * time.Second,
		CircuitBreakerThreshold:   5,
		CircuitBreakerTimeout:     60 * time.Second,
		CircuitBreakerHalfOpenMax: 3,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client scrapes academic transcripts from the registry. The registry has no
// API; transcripts only exist as rendered HTML pages, so this client fetches
// and parses them. Implements historico.Provider.
type Client struct {
	config      ClientConfig
	httpClient  *http.Client
	log         *logger.Logger
	rateLimiter *RateLimiter
	breaker     *circuitbreaker.Breaker
	retrier     *retry.Retrier
}

// NewClient creates a new registry client.
func NewClient(config ClientConfig) *Client {
	log := config.Logger
	if log == nil {
		log = logger.Default()
	}
	log = log.With(logger.Component("jupiter"))

	breaker := circuitbreaker.New(
		"jupiter",
		circuitbreaker.WithFailureThreshold(config.CircuitBreakerThreshold),
		circuitbreaker.WithTimeout(config.CircuitBreakerTimeout),
		circuitbreaker.WithMaxHalfOpenRequests(config.CircuitBreakerHalfOpenMax),
		circuitbreaker.WithOnStateChange(func(name string, from, to circuitbreaker.State) {
			log.Warn("circuit breaker state change",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		}),
	)

	retrier := retry.New(
		retry.WithMaxAttempts(config.MaxRetries+1),
		retry.WithInitialDelay(config.RetryBaseDelay),
		retry.WithMaxDelay(config.RetryMaxDelay),
	)

	return &Client{
		config:      config,
		httpClient:  &http.Client{Timeout: config.Timeout},
		log:         log,
		rateLimiter: NewRateLimiter(config.RateLimiterConfig),
		breaker:     breaker,
		retrier:     retrier,
	}
}

// HistoricoDoAluno fetches and parses the student's full transcript.
// Implements historico.Provider.
func (c *Client) HistoricoDoAluno(ctx context.Context, nusp historico.NUSP) ([]historico.Cursada, error) {
	if !nusp.IsValid() {
		return nil, historico.ErrNUSPInvalido
	}

	var cursadas []historico.Cursada
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Do(ctx, func(ctx context.Context) error {
			var err error
			cursadas, err = c.fetchHistorico(ctx, nusp)
			return err
		})
	})
	if err != nil {
		if shared.IsNotFound(err) || shared.IsDataInconsistency(err) {
			return nil, err
		}
		c.log.Error("transcript fetch failed", logger.NUSP(nusp.String()), logger.Err(err))
		return nil, shared.WrapError("historico", "Fetch", shared.ErrServiceUnavailable,
			"registry transcript fetch failed", err)
	}

	c.log.Debug("transcript fetched",
		logger.NUSP(nusp.String()),
		logger.Int("cursadas", len(cursadas)),
	)
	return cursadas, nil
}

// fetchHistorico performs a single transcript request.
func (c *Client) fetchHistorico(ctx context.Context, nusp historico.NUSP) ([]historico.Cursada, error) {
	if err := c.rateLimiter.Allow(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	fullURL := fmt.Sprintf("%s/historicoEscolar.jsp?codpes=%s",
		c.config.BaseURL, url.QueryEscape(nusp.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "text/html")

	if c.config.Debug {
		c.log.Debug("registry request", logger.String("url", fullURL))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, retry.Retryable(fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, retry.Permanent(shared.ErrAlunoNotFound)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, retry.Retryable(fmt.Errorf("registry returned status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, retry.Permanent(fmt.Errorf("registry returned status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, retry.Retryable(fmt.Errorf("parse html: %w", err))
	}

	cursadas, err := parseHistorico(doc)
	if err != nil {
		if errors.Is(err, ErrAlunoDesconhecido) {
			return nil, retry.Permanent(shared.ErrAlunoNotFound)
		}
		// Layout changes will not fix themselves on retry.
		return nil, retry.Permanent(shared.WrapError("historico", "Parse",
			shared.ErrDataInconsistency, "transcript page parse failed", err))
	}
	return cursadas, nil
}

// IsHealthy checks if the registry front page is reachable.
func (c *Client) IsHealthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}
