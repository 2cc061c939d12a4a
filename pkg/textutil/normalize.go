// Package textutil utilidades de normalización de texto para búsqueda.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)), // descarta marcas diacríticas (tildes, diéresis)
	norm.NFC,
)

// Fold normaliza un término de búsqueda: minúsculas, sin espacios sobrantes y
// sin diacríticos, para que "Café" encuentre "cafe" y viceversa.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return out
}
