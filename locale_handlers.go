package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// localeResponse tells the front end which locale to render, whether the
// visitor had explicitly chosen it, and which signal decided.
type localeResponse struct {
	Locale   Locale       `json:"locale"`
	Explicit bool         `json:"explicit"`
	Source   localeSource `json:"source"`
}

// resolveLocaleHandler resolves the active locale for the current visitor.
// GET /api/locale[?lng=xx]
//
// When resolution came from a live signal (query, browser tag, geolocated
// country) the result is written back as a non-explicit preference so the
// next visit short-circuits on the stored tier.
func (a *App) resolveLocaleHandler(c *gin.Context) {
	prefs := a.preferencesFor(c)

	signals := LocaleSignals{
		Query:      c.Query("lng"),
		BrowserTag: primaryLanguageTag(c.GetHeader("Accept-Language")),
	}
	if pref, ok := prefs.Read(); ok {
		stored := pref
		signals.Stored = &stored
	}

	locale, source := ResolveLocale(signals)
	if source == sourceDefault {
		// Only pay for a geolocation lookup when every higher-priority
		// signal missed; with the ipapi provider this is a network call.
		signals.Country = a.resolveCountry(c.Request.Context(), GeoHints{
			RemoteIP:   c.ClientIP(),
			BrowserTag: signals.BrowserTag,
		})
		locale, source = ResolveLocale(signals)
	}
	if source.autoDetected() {
		prefs.Write(locale, false)
	}

	c.JSON(http.StatusOK, localeResponse{
		Locale:   locale,
		Explicit: source == sourceExplicit,
		Source:   source,
	})
}

// switchLocaleHandler records an explicit choice from the language switcher.
// POST /api/locale {"locale": "ko"}
func (a *App) switchLocaleHandler(c *gin.Context) {
	var payload struct {
		Locale string `json:"locale"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "Invalid locale payload"})
		return
	}

	locale, ok := ParseLocale(payload.Locale)
	if !ok {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "unsupported_locale", Message: "Unsupported locale code"})
		return
	}

	a.preferencesFor(c).Write(locale, true)
	c.JSON(http.StatusOK, localeResponse{Locale: locale, Explicit: true, Source: sourceExplicit})
}

// primaryLanguageTag picks the first tag from an Accept-Language header,
// dropping any quality weight ("ko-KR,ko;q=0.9" -> "ko-KR").
func primaryLanguageTag(header string) string {
	first := header
	if idx := strings.Index(first, ","); idx >= 0 {
		first = first[:idx]
	}
	if idx := strings.Index(first, ";"); idx >= 0 {
		first = first[:idx]
	}
	return strings.TrimSpace(first)
}
