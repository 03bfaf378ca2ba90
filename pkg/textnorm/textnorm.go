// Package textnorm normaliza texto en francés para indexación y búsqueda:
// minúsculas, sin acentos (é -> e, ç -> c), tokens alfanuméricos.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopwords palabras vacías del francés que no aportan a la búsqueda.
var stopwords = map[string]struct{}{
	"le": {}, "la": {}, "les": {}, "de": {}, "des": {}, "du": {}, "un": {}, "une": {},
	"et": {}, "ou": {}, "a": {}, "au": {}, "aux": {}, "en": {}, "pour": {}, "par": {},
	"sur": {}, "dans": {}, "avec": {}, "est": {}, "que": {}, "qui": {}, "ce": {}, "il": {},
	"comment": {}, "quel": {}, "quelle": {}, "mon": {}, "ma": {}, "mes": {}, "d": {}, "l": {},
}

// Fold devuelve s en minúsculas y sin marcas diacríticas.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Tokens separa s normalizado en palabras, descartando stopwords y tokens de 1 carácter.
// El orden se conserva y no hay duplicados.
func Tokens(s string) []string {
	fields := strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// TSQuery construye una consulta para to_tsquery con prefijos: "batteri:* & lithium:*".
// Devuelve "" si no queda ningún token útil.
func TSQuery(s string) string {
	toks := Tokens(s)
	if len(toks) == 0 {
		return ""
	}
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t + ":*"
	}
	return strings.Join(parts, " & ")
}

// Slug genera un identificador URL a partir de s: "Électricité & 12V" -> "electricite-12v".
func Slug(s string) string {
	fields := strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, "-")
}
