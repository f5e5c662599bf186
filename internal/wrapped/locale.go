package wrapped

import "time"

// DefaultLocale is used when a snapshot carries no locale of its own
const DefaultLocale = "pt-BR"

// Lowercase full month names per supported locale, January first.
// Unknown locales fall back to en-US.
var monthNames = map[string][12]string{
	"pt-BR": {
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	},
	"en-US": {
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	},
}

// MonthName returns the lowercase full month name in the given locale
func MonthName(locale string, month time.Month) string {
	names, ok := monthNames[locale]
	if !ok {
		names = monthNames["en-US"]
	}
	return names[int(month)-1]
}

// SupportedLocale reports whether the locale has a month-name table
func SupportedLocale(locale string) bool {
	_, ok := monthNames[locale]
	return ok
}
