package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestFetchRatesParsesDocument(t *testing.T) {
	var gotAccept string
	client := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			gotAccept = req.Header.Get("Accept")
			body := `{"base":"JPY","rates":{"USD":147.2,"GBP":186.5}}`
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     make(http.Header),
			}, nil
		}),
	}

	c := NewClient("https://rates.test/exchangeRate.json", client, zap.NewNop())

	resp, err := c.FetchRates(context.Background())
	if err != nil {
		t.Fatalf("FetchRates failed: %v", err)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept header: got %q", gotAccept)
	}
	if resp.Base != "JPY" {
		t.Errorf("base: got %q, want JPY", resp.Base)
	}
	if resp.Rates["USD"] != 147.2 {
		t.Errorf("USD rate: got %v, want 147.2", resp.Rates["USD"])
	}
}

func TestFetchRatesChecksHTTPStatus(t *testing.T) {
	client := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusBadGateway,
				Body:       io.NopCloser(strings.NewReader("bad gateway")),
				Header:     make(http.Header),
			}, nil
		}),
	}

	c := NewClient("https://rates.test/exchangeRate.json", client, zap.NewNop())

	if _, err := c.FetchRates(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
