package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrankfurterRateService_Rate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		q := r.URL.Query()
		switch q.Get("from") + q.Get("to") {
		case "USDEUR":
			w.Write([]byte(`{"amount":1.0,"base":"USD","date":"2024-03-01","rates":{"EUR":0.9217}}`))
		case "XXXEUR":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.Write([]byte(`{"amount":1.0,"base":"GBP","date":"2024-03-01","rates":{}}`))
		}
	}))
	defer server.Close()

	svc := NewFrankfurterRateService(server.URL+"/", 2*time.Second)
	ctx := context.Background()

	rate, err := svc.Rate(ctx, "usd", " eur ")
	require.NoError(t, err)
	assert.Equal(t, 0.9217, rate)

	_, err = svc.Rate(ctx, "XXX", "EUR")
	assert.Error(t, err)

	_, err = svc.Rate(ctx, "GBP", "EUR")
	assert.Error(t, err)
}
