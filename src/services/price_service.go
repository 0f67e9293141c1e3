// backend/src/services/price_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/username/bugetto/backend/src/logger"
	"github.com/username/bugetto/backend/src/models"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const yahooUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// sessionRetryInterval bounds how often a failed crumb bootstrap is retried.
const sessionRetryInterval = time.Minute

// --- API Response Structs ---

type yahooSearchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		Shortname string `json:"shortname"`
		Longname  string `json:"longname"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				ShortName          string  `json:"shortName"`
				LongName           string  `json:"longName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
					High  []float64 `json:"high"`
					Low   []float64 `json:"low"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// QuoteConfig configures the Yahoo Finance client.
type QuoteConfig struct {
	BaseURL           string
	SessionURL        string
	CrumbURL          string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// --- Service Implementation ---

// YahooQuoteService fetches prices from the Yahoo Finance chart API.
type YahooQuoteService struct {
	httpClient http.Client
	cfg        QuoteConfig
	limiter    *rate.Limiter

	mu            sync.Mutex
	isInitialized bool
	crumb         string
	lastAttempt   time.Time
}

func NewYahooQuoteService(cfg QuoteConfig) *YahooQuoteService {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		logger.L.Error("Failed to create cookie jar", "error", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 4
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &YahooQuoteService{
		httpClient: http.Client{Jar: jar, Timeout: cfg.Timeout},
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// initializeSession warms the cookie jar and fetches a crumb. Failure is
// tolerated: requests are then sent without a crumb.
func (s *YahooQuoteService) initializeSession(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isInitialized && s.crumb != "" {
		return
	}
	if time.Since(s.lastAttempt) < sessionRetryInterval {
		return
	}
	s.lastAttempt = time.Now()
	if s.cfg.CrumbURL == "" {
		return
	}

	logger.FromContext(ctx).Info("Initializing Yahoo Finance session and fetching Crumb...")

	if s.cfg.SessionURL != "" {
		if req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.SessionURL, nil); err == nil {
			req.Header.Set("User-Agent", yahooUserAgent)
			if resp, err := s.httpClient.Do(req); err == nil {
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.CrumbURL, nil)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to build crumb request", "error", err)
		return
	}
	req.Header.Set("User-Agent", yahooUserAgent)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to fetch crumb", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.FromContext(ctx).Warn("Failed to fetch crumb", "status", resp.Status)
		return
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to read crumb", "error", err)
		return
	}
	s.crumb = strings.TrimSpace(string(bodyBytes))
	s.isInitialized = s.crumb != ""
	logger.FromContext(ctx).Info("Yahoo session initialized", "hasCrumb", s.isInitialized)
}

func (s *YahooQuoteService) ensureSession(ctx context.Context) string {
	s.mu.Lock()
	needsInit := !s.isInitialized || s.crumb == ""
	s.mu.Unlock()

	if needsInit {
		s.initializeSession(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.crumb
}

func (s *YahooQuoteService) invalidateSession() {
	s.mu.Lock()
	s.isInitialized = false
	s.crumb = ""
	s.lastAttempt = time.Time{}
	s.mu.Unlock()
}

// getJSON performs a throttled GET against the quote API and decodes the body into out.
func (s *YahooQuoteService) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if crumb := s.ensureSession(ctx); crumb != "" {
		query.Set("crumb", crumb)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("quote request throttled: %w", err)
	}

	endpoint := s.cfg.BaseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", yahooUserAgent)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Yahoo API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		s.invalidateSession()
		return fmt.Errorf("status 401 (Unauthorized) - Crumb invalid")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo API returned non-OK status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Yahoo response: %w", err)
	}
	return nil
}

func (s *YahooQuoteService) fetchChart(ctx context.Context, symbol string) (*yahooChartResponse, error) {
	var chartData yahooChartResponse
	query := url.Values{"range": {"1d"}, "interval": {"1d"}}
	if err := s.getJSON(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), query, &chartData); err != nil {
		return nil, err
	}
	if chartData.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart API returned an error: %v", chartData.Chart.Error)
	}
	if len(chartData.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart result for %s", symbol)
	}
	return &chartData, nil
}

// lastBar returns the index of the last bar with a non-zero close, or -1.
func lastBar(closes []float64) int {
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != 0 {
			return i
		}
	}
	return -1
}

// CurrentPrice returns the last close of the day, falling back to the
// regular market price reported in the chart metadata.
func (s *YahooQuoteService) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	chartData, err := s.fetchChart(ctx, symbol)
	if err != nil {
		return 0, err
	}
	result := chartData.Chart.Result[0]
	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		if i := lastBar(closes); i >= 0 {
			return closes[i], nil
		}
	}
	if result.Meta.RegularMarketPrice != 0 {
		return result.Meta.RegularMarketPrice, nil
	}
	return 0, fmt.Errorf("no price data found for %s", symbol)
}

// DayPrices returns close, high and low of the last daily bar.
func (s *YahooQuoteService) DayPrices(ctx context.Context, symbol string) (float64, float64, float64, error) {
	chartData, err := s.fetchChart(ctx, symbol)
	if err != nil {
		return 0, 0, 0, err
	}
	result := chartData.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return 0, 0, 0, fmt.Errorf("no quote data found for %s", symbol)
	}
	quote := result.Indicators.Quote[0]
	i := lastBar(quote.Close)
	if i < 0 {
		return 0, 0, 0, fmt.Errorf("no daily bar found for %s", symbol)
	}
	return quote.Close[i], valueAt(quote.High, i), valueAt(quote.Low, i), nil
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

// GuessAssetMetadata suggests a display name and currency for symbol. It
// never fails: unknown fields are left empty.
func (s *YahooQuoteService) GuessAssetMetadata(ctx context.Context, symbol string) models.AssetGuess {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	guess := models.AssetGuess{Symbol: symbol}
	if symbol == "" {
		return guess
	}

	if chartData, err := s.fetchChart(ctx, symbol); err != nil {
		logger.FromContext(ctx).Warn("Could not fetch chart metadata", "symbol", symbol, "error", err)
	} else {
		meta := chartData.Chart.Result[0].Meta
		guess.Currency = strings.ToUpper(meta.Currency)
		guess.Name = firstNonEmpty(meta.ShortName, meta.LongName)
	}
	if guess.Name != "" {
		return guess
	}

	var searchData yahooSearchResponse
	query := url.Values{"q": {symbol}, "quotesCount": {"1"}, "lang": {"en-US"}}
	if err := s.getJSON(ctx, "/v1/finance/search", query, &searchData); err != nil {
		logger.FromContext(ctx).Warn("Could not search asset metadata", "symbol", symbol, "error", err)
		return guess
	}
	if len(searchData.Quotes) > 0 {
		q := searchData.Quotes[0]
		guess.Name = firstNonEmpty(q.Shortname, q.Longname)
	}
	return guess
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
