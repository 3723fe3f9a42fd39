package main

import "testing"

func TestLanguageForCountryKnown(t *testing.T) {
	lang, ok := languageForCountry("KR")
	if !ok || lang != LocaleKO {
		t.Fatalf("expected ko for KR, got %s (ok=%v)", lang, ok)
	}
}

func TestLanguageForCountryCaseInsensitive(t *testing.T) {
	lang, ok := languageForCountry("cn")
	if !ok || lang != LocaleZH {
		t.Fatalf("expected zh for cn, got %s (ok=%v)", lang, ok)
	}
}

func TestLanguageForCountryUnknown(t *testing.T) {
	if _, ok := languageForCountry("FR"); ok {
		t.Fatal("expected FR to carry no language signal")
	}
}

func TestLanguageForCountryEmpty(t *testing.T) {
	if _, ok := languageForCountry(""); ok {
		t.Fatal("expected empty country to carry no language signal")
	}
}

func TestLanguageForCountryManyToOne(t *testing.T) {
	for _, code := range []string{"RU", "BY", "KZ"} {
		lang, ok := languageForCountry(code)
		if !ok || lang != LocaleRU {
			t.Fatalf("expected ru for %s, got %s (ok=%v)", code, lang, ok)
		}
	}
}

func TestRegionFromLanguageTag(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"en-US", "US"},
		{"ko-KR", "KR"},
		{"zh-Hant-TW", "TW"},
		{"ru_RU", "RU"},
		{"en", ""},
		{"", ""},
		{"en-", ""},
		{"x-12-GB", "GB"},
	}

	for _, tt := range tests {
		if got := regionFromLanguageTag(tt.tag); got != tt.want {
			t.Errorf("regionFromLanguageTag(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
