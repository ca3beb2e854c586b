package rates_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricepeek/modules/currency"
	"pricepeek/modules/rates"
)

const ratesBody = `{"base":"USD","rates":{
	"USD":1,"EUR":0.92,"GBP":0.79,"INR":83.1,"JPY":157.2,
	"CNY":7.25,"AUD":1.48,"CAD":1.36,"RUB":91.5,"KRW":1378.0}}`

func TestRatesCachesUpstream(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, ratesBody)
	}))
	defer srv.Close()

	p := rates.NewProvider(srv.URL, time.Minute)
	ctx := context.Background()

	table, err := p.Rates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.92, table["EUR"])
	assert.Equal(t, 1.0, table[currency.PivotCode])

	// Second call inside the TTL must not touch the upstream.
	_, err = p.Rates(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestRatesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := rates.NewProvider(srv.URL, time.Minute)
	_, err := p.Rates(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestRatesIncompleteTableRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"base":"USD","rates":{"EUR":0.92}}`)
	}))
	defer srv.Close()

	p := rates.NewProvider(srv.URL, time.Minute)
	_, err := p.Rates(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable rate")
}

func TestValidate(t *testing.T) {
	table := currency.RateTable{}
	for _, def := range currency.ListCurrencies() {
		table[def.Code] = 1.5
	}
	table[currency.PivotCode] = 1

	assert.NoError(t, rates.Validate(table))

	delete(table, "INR")
	assert.Error(t, rates.Validate(table))
}
