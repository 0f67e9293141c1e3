// backend/src/services/rate_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type frankfurterResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// FrankfurterRateService reads the latest reference rates from the
// Frankfurter API (ECB data).
type FrankfurterRateService struct {
	httpClient http.Client
	baseURL    string
}

func NewFrankfurterRateService(baseURL string, timeout time.Duration) *FrankfurterRateService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FrankfurterRateService{
		httpClient: http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Rate returns how many units of `to` one unit of `from` buys.
func (s *FrankfurterRateService) Rate(ctx context.Context, from, to string) (float64, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	query := url.Values{"from": {from}, "to": {to}}
	endpoint := s.baseURL + "/latest?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call Frankfurter API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("frankfurter API returned non-OK status %d", resp.StatusCode)
	}

	var data frankfurterResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, fmt.Errorf("failed to decode Frankfurter response: %w", err)
	}
	rate, ok := data.Rates[to]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("rate %s->%s missing from response", from, to)
	}
	return rate, nil
}
