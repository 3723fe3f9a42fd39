package main

import "strings"

// countryToLanguage maps ISO 3166-1 alpha-2 country codes to a supported
// locale. Many-to-one on purpose; countries without an entry carry no
// language signal.
var countryToLanguage = map[string]Locale{
	// English speaking countries
	"US": LocaleEN,
	"CA": LocaleEN,
	"GB": LocaleEN,
	"AU": LocaleEN,
	"NZ": LocaleEN,

	// Korean speaking countries
	"KR": LocaleKO,
	"KP": LocaleKO,

	// Chinese speaking countries/regions
	"CN": LocaleZH,
	"HK": LocaleZH,
	"TW": LocaleZH,
	"SG": LocaleZH,

	// Russian speaking countries
	"RU": LocaleRU,
	"BY": LocaleRU,
	"KZ": LocaleRU,
}

// languageForCountry returns the locale mapped to the given country code.
// The second return is false when the country has no mapping, which callers
// must treat as an absent signal rather than an error.
func languageForCountry(countryCode string) (Locale, bool) {
	lang, ok := countryToLanguage[strings.ToUpper(strings.TrimSpace(countryCode))]
	return lang, ok
}

// regionFromLanguageTag extracts the 2-letter region subtag from a BCP47
// language tag ("en-US" -> "US", "zh-Hant-TW" -> "TW"). Returns "" when no
// region subtag is present or the tag is malformed.
func regionFromLanguageTag(tag string) string {
	tag = strings.TrimSpace(strings.ReplaceAll(tag, "_", "-"))
	if tag == "" {
		return ""
	}
	for _, part := range strings.Split(tag, "-")[1:] {
		if len(part) == 2 && isAlpha(part) {
			return strings.ToUpper(part)
		}
	}
	return ""
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}
