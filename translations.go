package main

import (
	"context"
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// SiteMessage is one translatable UI string with a text per supported
// locale. Editors maintain these in the database; the API serves them from
// an in-process cache loaded at startup.
type SiteMessage struct {
	Key       string    `json:"key"`
	EnText    string    `json:"en_text"`
	KoText    string    `json:"ko_text"`
	ZhText    string    `json:"zh_text"`
	RuText    string    `json:"ru_text"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

var (
	messageCacheMu sync.RWMutex
	messageCache   map[string]SiteMessage
)

// InitMessageCache preloads all site messages from the database.
func InitMessageCache(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, "SELECT key, en_text, ko_text, zh_text, ru_text, updated_at, updated_by FROM site_messages")
	if err != nil {
		return err
	}
	defer rows.Close()

	newCache := make(map[string]SiteMessage)
	for rows.Next() {
		var m SiteMessage
		if err := rows.Scan(&m.Key, &m.EnText, &m.KoText, &m.ZhText, &m.RuText, &m.UpdatedAt, &m.UpdatedBy); err != nil {
			return err
		}
		newCache[m.Key] = m
	}

	if err := rows.Err(); err != nil {
		return err
	}

	messageCacheMu.Lock()
	messageCache = newCache
	messageCacheMu.Unlock()

	return nil
}

// GetMessageCache returns the cached translations keyed per locale, shaped
// as { "en": { "key": "text" }, "ko": { ... }, ... }. Empty locale texts are
// omitted so the front end falls back to its static dictionaries.
func GetMessageCache() map[Locale]map[string]string {
	messageCacheMu.RLock()
	defer messageCacheMu.RUnlock()

	res := map[Locale]map[string]string{
		LocaleEN: make(map[string]string),
		LocaleKO: make(map[string]string),
		LocaleZH: make(map[string]string),
		LocaleRU: make(map[string]string),
	}

	for key, m := range messageCache {
		if m.EnText != "" {
			res[LocaleEN][key] = m.EnText
		}
		if m.KoText != "" {
			res[LocaleKO][key] = m.KoText
		}
		if m.ZhText != "" {
			res[LocaleZH][key] = m.ZhText
		}
		if m.RuText != "" {
			res[LocaleRU][key] = m.RuText
		}
	}

	return res
}

// translationsHandler returns the full pre-loaded message cache.
// Method: GET /api/translations
// Access: Public
func translationsHandler(c *gin.Context) {
	// The frontend merges this directly over its static locale dictionaries.
	c.JSON(http.StatusOK, GetMessageCache())
}
