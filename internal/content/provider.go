// Package content serves the informational blocks of the widget: the daily
// quote and the paged logotherapy articles.
package content

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"logotherapy-booking/internal/kv"
	"logotherapy-booking/internal/metrics"
	"logotherapy-booking/internal/model"
)

const (
	DefaultQuoteURL = "https://api.allorigins.win/raw?url=https://zenquotes.io/api/random"
	QuoteCacheKey   = "logotherapy_quote_cache"
	ArticlesPrefix  = "logotherapy_articles_cache"

	CacheTTL     = time.Hour
	ArticleLimit = 10

	maxQuoteBody = 64 << 10
)

// FallbackQuote is shown whenever the remote quote cannot be had.
var FallbackQuote = model.Quote{
	Text:   "Той, хто має НАВІЩО жити, може витримати майже будь-яке ЯК.",
	Author: "Фрідріх Ніцше (улюблена цитата В. Франкла)",
}

var errThrottled = errors.New("content: quote fetch throttled")

//go:embed data/articles.json
var articlesJSON []byte

// cached is the stored envelope; timestamp is unix milliseconds.
type cached[T any] struct {
	Timestamp int64 `json:"timestamp"`
	Data      T     `json:"data"`
}

type Provider struct {
	kv       kv.Store
	client   *http.Client
	quoteURL string
	limiter  *rate.Limiter
	group    singleflight.Group
	strict   *bluemonday.Policy
	articles []model.Article
	now      func() time.Time
	log      *slog.Logger
	metrics  metrics.Recorder
}

type Option func(*Provider)

func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.client = c }
}

func WithQuoteURL(u string) Option {
	return func(p *Provider) {
		if u != "" {
			p.quoteURL = u
		}
	}
}

// WithLimiter throttles outbound quote requests. Requests over the limit get
// the fallback quote.
func WithLimiter(l *rate.Limiter) Option {
	return func(p *Provider) { p.limiter = l }
}

func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithArticles replaces the embedded dataset.
func WithArticles(a []model.Article) Option {
	return func(p *Provider) { p.articles = a }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) { p.log = l }
}

func WithMetrics(r metrics.Recorder) Option {
	return func(p *Provider) { p.metrics = r }
}

func NewProvider(store kv.Store, opts ...Option) (*Provider, error) {
	p := &Provider{
		kv:       store,
		client:   &http.Client{Timeout: 5 * time.Second},
		quoteURL: DefaultQuoteURL,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 3),
		strict:   bluemonday.StrictPolicy(),
		now:      time.Now,
		log:      slog.Default(),
		metrics:  metrics.Nop{},
	}
	for _, o := range opts {
		o(p)
	}

	if p.articles == nil {
		if err := json.Unmarshal(articlesJSON, &p.articles); err != nil {
			return nil, fmt.Errorf("content: parse articles: %w", err)
		}
	}
	ugc := bluemonday.UGCPolicy()
	clean := make([]model.Article, len(p.articles))
	for i, a := range p.articles {
		clean[i] = model.Article{Title: p.plain(a.Title), Body: ugc.Sanitize(a.Body)}
	}
	p.articles = clean
	return p, nil
}

// DailyQuote never fails: cache, then remote, then FallbackQuote.
func (p *Provider) DailyQuote(ctx context.Context) model.Quote {
	var c cached[model.Quote]
	if p.fresh(ctx, QuoteCacheKey, &c) {
		p.metrics.RecordQuote("cache")
		return c.Data
	}

	// the flight is not tied to the first caller
	shared := context.WithoutCancel(ctx)
	v, err, _ := p.group.Do(QuoteCacheKey, func() (any, error) {
		q, err := p.fetchQuote(shared)
		if err != nil {
			return nil, err
		}
		p.store(shared, QuoteCacheKey, cached[model.Quote]{Timestamp: p.now().UnixMilli(), Data: q})
		return q, nil
	})
	if err != nil {
		p.log.WarnContext(ctx, "quote api failed, using fallback", "error", err)
		p.metrics.RecordQuote("fallback")
		return FallbackQuote
	}
	p.metrics.RecordQuote("remote")
	return v.(model.Quote)
}

type zenQuote struct {
	Q string `json:"q"`
	A string `json:"a"`
}

func (p *Provider) fetchQuote(ctx context.Context) (model.Quote, error) {
	if p.limiter != nil && !p.limiter.Allow() {
		return model.Quote{}, errThrottled
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.quoteURL, nil)
	if err != nil {
		return model.Quote{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return model.Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Quote{}, fmt.Errorf("content: quote api status %d", resp.StatusCode)
	}

	var body []zenQuote
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxQuoteBody)).Decode(&body); err != nil {
		return model.Quote{}, fmt.Errorf("content: decode quote: %w", err)
	}
	if len(body) == 0 {
		return model.Quote{}, errors.New("content: empty quote response")
	}

	q := model.Quote{
		Text:   p.plain(body[0].Q),
		Author: p.plain(body[0].A),
	}
	if q.Text == "" {
		return model.Quote{}, errors.New("content: blank quote")
	}
	return q, nil
}

// plain strips all markup and leaves unescaped text.
func (p *Provider) plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(p.strict.Sanitize(s)))
}

// ArticlesPage returns one page of the dataset and its full size. page < 1
// is treated as 1, limit < 1 as ArticleLimit.
func (p *Provider) ArticlesPage(ctx context.Context, page, limit int) (model.ArticlesPage, error) {
	if err := ctx.Err(); err != nil {
		return model.ArticlesPage{}, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = ArticleLimit
	}

	key := fmt.Sprintf("%s_%d_%d", ArticlesPrefix, page, limit)
	var c cached[model.ArticlesPage]
	if p.fresh(ctx, key, &c) {
		return c.Data, nil
	}

	out := model.ArticlesPage{Items: []model.Article{}, Total: len(p.articles)}
	start := (page - 1) * limit
	if start < len(p.articles) {
		end := min(start+limit, len(p.articles))
		out.Items = append(out.Items, p.articles[start:end]...)
	}

	p.store(ctx, key, cached[model.ArticlesPage]{Timestamp: p.now().UnixMilli(), Data: out})
	return out, nil
}

// fresh loads key into out and reports whether it is younger than CacheTTL.
// Backend errors and corrupt entries count as a miss.
func (p *Provider) fresh(ctx context.Context, key string, out any) bool {
	raw, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		p.log.WarnContext(ctx, "content cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}

	var ts struct {
		Timestamp int64 `json:"timestamp"`
	}
	if json.Unmarshal(raw, &ts) != nil {
		return false
	}
	if p.now().Sub(time.UnixMilli(ts.Timestamp)) >= CacheTTL {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (p *Provider) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err == nil {
		err = p.kv.Set(ctx, key, raw)
	}
	if err != nil {
		p.log.WarnContext(ctx, "content cache write failed", "key", key, "error", err)
	}
}
