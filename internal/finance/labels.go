package finance

import (
	"fmt"
	"strings"
	"time"
)

// Abbreviated month names per supported locale, January first.
var monthAbbrev = map[string][12]string{
	"pt-BR": {"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"},
	"en":    {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

const DefaultLocale = "pt-BR"

// MonthLabel renders "mon yyyy" in the given locale. Unknown locales fall
// back to pt-BR, then to the language part of the tag ("en-US" -> "en").
func MonthLabel(year int, month time.Month, locale string) string {
	names, ok := monthAbbrev[locale]
	if !ok {
		lang, _, _ := strings.Cut(locale, "-")
		if names, ok = monthAbbrev[lang]; !ok {
			names = monthAbbrev[DefaultLocale]
		}
	}
	return fmt.Sprintf("%s %d", names[month-1], year)
}
