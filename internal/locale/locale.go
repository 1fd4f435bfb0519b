package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is one of the storefront's supported languages.
type Locale string

const (
	RU Locale = "ru"
	UZ Locale = "uz"
	EN Locale = "en"

	Default = RU
)

// Supported lists the locales in matcher order. The default must stay first.
var Supported = []Locale{RU, UZ, EN}

var matcher = language.NewMatcher([]language.Tag{
	language.Russian,
	language.Uzbek,
	language.English,
})

// Resolve maps a requested language token ("en", "uz-Latn", "ru-RU", ...)
// onto a supported locale. Anything unknown falls back to Default.
func Resolve(raw string) Locale {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Default
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return Default
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(Supported) {
		return Default
	}
	return Supported[idx]
}

func (l Locale) Valid() bool {
	for _, s := range Supported {
		if s == l {
			return true
		}
	}
	return false
}

// Pick returns the value for l, falling back to the Russian value when the
// requested translation is blank.
func Pick(l Locale, ru, uz, en string) string {
	var v string
	switch l {
	case UZ:
		v = uz
	case EN:
		v = en
	default:
		v = ru
	}
	if strings.TrimSpace(v) == "" {
		return ru
	}
	return v
}
