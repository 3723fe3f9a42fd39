package main

import (
	"strings"
	"time"
)

// Locale is one of the fixed UI language codes the site ships translations
// for. Anything outside this set is coerced to the default.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleKO Locale = "ko"
	LocaleZH Locale = "zh"
	LocaleRU Locale = "ru"

	DefaultLocale = LocaleEN
)

var supportedLocales = map[Locale]struct{}{
	LocaleEN: {},
	LocaleKO: {},
	LocaleZH: {},
	LocaleRU: {},
}

// ParseLocale normalizes a raw code and reports whether it is supported.
// "en-US" style tags are reduced to their primary subtag before validation.
func ParseLocale(raw string) (Locale, bool) {
	code := strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.IndexAny(code, "-_"); idx >= 0 {
		code = code[:idx]
	}
	locale := Locale(code)
	_, ok := supportedLocales[locale]
	return locale, ok
}

// LocalePreference is the visitor-scoped locale record kept in client
// storage. Explicit means the visitor picked the locale via the language
// switcher, as opposed to auto-detection.
type LocalePreference struct {
	Locale    Locale    `json:"locale"`
	Explicit  bool      `json:"explicit"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LocaleSignals bundles every piece of evidence available for one
// resolution: the stored preference (nil when absent), the ?lng= query
// parameter, the browser-reported language tag, and a geolocated country
// code. Missing signals are empty/nil.
type LocaleSignals struct {
	Stored     *LocalePreference
	Query      string
	BrowserTag string
	Country    string
}

// localeSource identifies which signal produced the resolved locale.
type localeSource string

const (
	sourceExplicit localeSource = "stored_explicit"
	sourceStored   localeSource = "stored"
	sourceQuery    localeSource = "query"
	sourceBrowser  localeSource = "browser"
	sourceGeo      localeSource = "geo"
	sourceDefault  localeSource = "default"
)

// autoDetected reports whether the source came from live detection rather
// than an existing stored preference. Only these results get written back
// as non-explicit preferences.
func (s localeSource) autoDetected() bool {
	return s == sourceQuery || s == sourceBrowser || s == sourceGeo
}

type localeDetector struct {
	source localeSource
	lookup func(LocaleSignals) (Locale, bool)
}

// detectorChain is the resolution order. First hit wins; every lookup is
// pure and treats malformed input as an absent signal.
var detectorChain = []localeDetector{
	{sourceExplicit, detectStoredExplicit},
	{sourceStored, detectStored},
	{sourceQuery, detectQuery},
	{sourceBrowser, detectBrowserRegion},
	{sourceGeo, detectGeoCountry},
}

func detectStoredExplicit(s LocaleSignals) (Locale, bool) {
	if s.Stored == nil || !s.Stored.Explicit {
		return "", false
	}
	return ParseLocale(string(s.Stored.Locale))
}

func detectStored(s LocaleSignals) (Locale, bool) {
	if s.Stored == nil {
		return "", false
	}
	return ParseLocale(string(s.Stored.Locale))
}

func detectQuery(s LocaleSignals) (Locale, bool) {
	if s.Query == "" {
		return "", false
	}
	return ParseLocale(s.Query)
}

func detectBrowserRegion(s LocaleSignals) (Locale, bool) {
	region := regionFromLanguageTag(s.BrowserTag)
	if region == "" {
		return "", false
	}
	return languageForCountry(region)
}

func detectGeoCountry(s LocaleSignals) (Locale, bool) {
	if s.Country == "" {
		return "", false
	}
	return languageForCountry(s.Country)
}

// ResolveLocale produces exactly one supported locale for the visitor,
// walking the detector chain in priority order and falling back to the
// default. It never fails: an invalid stored code or malformed tag simply
// falls through to the next tier.
func ResolveLocale(signals LocaleSignals) (Locale, localeSource) {
	for _, d := range detectorChain {
		if locale, ok := d.lookup(signals); ok {
			return locale, d.source
		}
	}
	return DefaultLocale, sourceDefault
}
