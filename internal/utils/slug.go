package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug lowercases s, strips accents and joins alphanumeric runs with sep:
// "Promoção de Verão!" becomes "promocao-de-verao".
func Slug(s string, sep string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingSep && b.Len() > 0 {
				b.WriteString(sep)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// Pasta derives a store's storage folder from its name, e.g.
// "Loja da Ana" becomes "loja_da_ana_x7k2qa".
func Pasta(nome string) (string, error) {
	base := Slug(nome, "_")
	if base == "" {
		base = "loja"
	}
	suffix, err := GenerateRandomString(6)
	if err != nil {
		return "", err
	}
	return base + "_" + strings.ToLower(suffix), nil
}
