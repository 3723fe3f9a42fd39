package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie keys mirror the storage keys the front end has always used, so an
// existing visitor's choice survives the backend swap.
const (
	localeCookieName          = "i18nextLng"
	localeExplicitCookieName  = "userSelectedLanguage"
	localeTimestampCookieName = "i18nextLngTs"
	localeCookieMaxAge        = 365 * 24 * time.Hour
)

// PreferenceStore reads and writes the visitor's locale preference. Both
// operations are total: a missing or unreadable preference reads as absent,
// and a failed write is swallowed because persistence is best-effort only.
type PreferenceStore interface {
	Read() (LocalePreference, bool)
	Write(locale Locale, explicit bool)
}

// cookiePreferences stores the preference in browser cookies scoped to one
// request/response pair.
type cookiePreferences struct {
	c      *gin.Context
	secure bool
}

func (a *App) preferencesFor(c *gin.Context) PreferenceStore {
	return &cookiePreferences{c: c, secure: strings.EqualFold(a.cfg.Env, "production")}
}

func (p *cookiePreferences) Read() (LocalePreference, bool) {
	raw, err := p.c.Cookie(localeCookieName)
	if err != nil || strings.TrimSpace(raw) == "" {
		return LocalePreference{}, false
	}

	pref := LocalePreference{Locale: Locale(strings.TrimSpace(raw))}

	if flag, err := p.c.Cookie(localeExplicitCookieName); err == nil {
		pref.Explicit = flag == "true"
	}
	if ts, err := p.c.Cookie(localeTimestampCookieName); err == nil {
		if unix, err := strconv.ParseInt(ts, 10, 64); err == nil {
			pref.UpdatedAt = time.Unix(unix, 0)
		}
	}
	return pref, true
}

func (p *cookiePreferences) Write(locale Locale, explicit bool) {
	maxAge := int(localeCookieMaxAge.Seconds())
	// Readable by the client-side i18n bootstrap, hence not HttpOnly.
	p.c.SetCookie(localeCookieName, string(locale), maxAge, "/", "", p.secure, false)
	p.c.SetCookie(localeExplicitCookieName, strconv.FormatBool(explicit), maxAge, "/", "", p.secure, false)
	p.c.SetCookie(localeTimestampCookieName, strconv.FormatInt(time.Now().Unix(), 10), maxAge, "/", "", p.secure, false)
}
