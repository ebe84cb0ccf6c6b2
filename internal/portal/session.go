package portal

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"schoolscout/internal/cache"
	"schoolscout/internal/model"
	"schoolscout/internal/util"
	"schoolscout/internal/worker"
)

// Session owns the live portal connection for the duration of a run: one HTTP
// client with its cookie jar, a robots.txt gate, the rate limiter and an
// optional page cache. Acquire it at run start and Close it at run end.
type Session struct {
	http          *resty.Client
	robots        *util.RobotsChecker
	limiter       *worker.Limiter
	pages         cache.Cache
	delay         time.Duration
	maxBytes      int64
	respectRobots bool
}

// NewSession builds a session from the runtime configuration.
func NewSession(cfg *model.Config) *Session {
	client := resty.New()
	client.SetTimeout(cfg.HTTP.Timeout)
	client.SetHeader("User-Agent", cfg.HTTP.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(3))

	if jar, err := cookiejar.New(nil); err == nil {
		client.SetCookieJar(jar)
	}
	if cfg.HTTP.InsecureTLS {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) // #nosec G402 -- opt-in flag
	}
	if t, ok := client.GetClient().Transport.(*http.Transport); ok {
		t.Proxy = util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
	}

	var pages cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			pages = cache.NewLayered(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			pages = cache.NewMemory(cfg.Cache.MemoryTTL, 10*time.Minute)
		}
	}

	return &Session{
		http:          client,
		robots:        util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
		limiter:       worker.NewLimiter(cfg.Crawl.RequestsPerSecond, cfg.Crawl.Burst),
		pages:         pages,
		delay:         cfg.Crawl.Delay,
		maxBytes:      cfg.HTTP.MaxBodyBytes,
		respectRobots: cfg.Crawl.RespectRobots,
	}
}

// Get navigates to rawURL and returns the parsed document. Every failure mode
// surfaces as a NavigationError; callers decide whether it is fatal.
func (s *Session) Get(ctx context.Context, rawURL string) (*goquery.Document, error) {
	delay := s.delay
	if s.respectRobots {
		allowed, crawlDelay, err := s.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return nil, &NavigationError{URL: rawURL, Err: errors.New("disallowed by robots.txt")}
		}
		if crawlDelay > delay {
			delay = crawlDelay
		}
	}

	if s.pages != nil {
		if body, ok := s.pages.Get(cache.Key(rawURL)); ok {
			doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
			if err == nil {
				return doc, nil
			}
		}
	}

	if err := s.limiter.WaitWithDelay(ctx, rawURL, delay); err != nil {
		return nil, &NavigationError{URL: rawURL, Err: err}
	}

	resp, err := s.http.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, &NavigationError{URL: rawURL, Err: err}
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &NavigationError{URL: rawURL, Err: fmt.Errorf("unexpected status: %d", resp.StatusCode())}
	}

	body := resp.Body()
	if s.maxBytes > 0 && int64(len(body)) > s.maxBytes {
		body = body[:s.maxBytes]
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &NavigationError{URL: rawURL, Err: fmt.Errorf("parse html: %w", err)}
	}

	if s.pages != nil {
		_ = s.pages.Set(cache.Key(rawURL), body, 0)
	}
	return doc, nil
}

// Close releases the session's network resources.
func (s *Session) Close() {
	s.http.GetClient().CloseIdleConnections()
}
