package processors

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/username/bugetto/backend/src/models"
)

var errProviderDown = errors.New("provider down")

type dayQuote struct{ close, high, low float64 }

type fakeQuotes struct {
	mu           sync.Mutex
	current      map[string]float64
	day          map[string]dayQuote
	fail         bool
	currentCalls map[string]int
	dayCalls     map[string]int
}

func newFakeQuotes() *fakeQuotes {
	return &fakeQuotes{
		current:      map[string]float64{},
		day:          map[string]dayQuote{},
		currentCalls: map[string]int{},
		dayCalls:     map[string]int{},
	}
}

func (f *fakeQuotes) CurrentPrice(_ context.Context, symbol string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentCalls[symbol]++
	if f.fail {
		return 0, errProviderDown
	}
	return f.current[symbol], nil
}

func (f *fakeQuotes) DayPrices(_ context.Context, symbol string) (float64, float64, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dayCalls[symbol]++
	if f.fail {
		return 0, 0, 0, errProviderDown
	}
	d := f.day[symbol]
	return d.close, d.high, d.low, nil
}

func (f *fakeQuotes) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.currentCalls {
		n += c
	}
	for _, c := range f.dayCalls {
		n += c
	}
	return n
}

type fakeRates struct {
	mu    sync.Mutex
	rates map[string]float64
	fail  bool
	calls int
}

func newFakeRates() *fakeRates {
	return &fakeRates{rates: map[string]float64{}}
}

func (f *fakeRates) Rate(_ context.Context, from, to string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return 0, errProviderDown
	}
	rate, ok := f.rates[from+to]
	if !ok {
		return 0, errors.New("unknown pair")
	}
	return rate, nil
}

type fakeRegistry map[string]models.Asset

func (r fakeRegistry) FindAsset(_ context.Context, symbol string) (*models.Asset, error) {
	for sym, a := range r {
		if strings.EqualFold(sym, symbol) {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}
