package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GeoHints carries the per-request evidence a resolver may use.
type GeoHints struct {
	RemoteIP   string
	BrowserTag string
}

// CountryResolver produces a best-effort 2-letter country code for the
// current visitor. Failure or an empty result is an absent signal, never a
// fatal condition.
type CountryResolver interface {
	Country(ctx context.Context, hints GeoHints) (string, error)
}

// LanguageTagResolver derives the country from the browser-reported
// language tag's region subtag. Purely local, no network call, so it can
// never delay a page render.
type LanguageTagResolver struct{}

func (r *LanguageTagResolver) Country(_ context.Context, hints GeoHints) (string, error) {
	region := regionFromLanguageTag(hints.BrowserTag)
	if region == "" {
		return "", errors.New("no region subtag in language tag")
	}
	return region, nil
}

// IPAPIResolver looks the visitor's IP up on ipapi.co. The HTTP client must
// carry a short timeout (the caller configures 2s) so a slow lookup degrades
// to the default locale instead of blocking the response.
type IPAPIResolver struct {
	Client *http.Client
}

func (r *IPAPIResolver) Country(ctx context.Context, hints GeoHints) (string, error) {
	ip := strings.TrimSpace(hints.RemoteIP)
	if ip == "" {
		return "", errors.New("no remote ip")
	}

	u := fmt.Sprintf("https://ipapi.co/%s/json/", ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ipapi error: %d", resp.StatusCode)
	}

	var data struct {
		CountryCode string `json:"country_code"`
		Error       bool   `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.Error || data.CountryCode == "" {
		return "", errors.New("ipapi returned no country")
	}
	return strings.ToUpper(data.CountryCode), nil
}

// FallbackCountryResolver tries Primary first, then Secondary.
type FallbackCountryResolver struct {
	Primary   CountryResolver
	Secondary CountryResolver
}

func (r *FallbackCountryResolver) Country(ctx context.Context, hints GeoHints) (string, error) {
	code, err := r.Primary.Country(ctx, hints)
	if err != nil || code == "" {
		return r.Secondary.Country(ctx, hints)
	}
	return code, nil
}

// resolveCountry wraps the configured resolver and absorbs every failure
// into an empty signal.
func (a *App) resolveCountry(ctx context.Context, hints GeoHints) string {
	if a.countries == nil {
		return ""
	}
	code, err := a.countries.Country(ctx, hints)
	if err != nil {
		return ""
	}
	return code
}
