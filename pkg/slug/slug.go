// Package slug builds URL and file-name safe identifiers from titles.
package slug

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	suffixLen = 5
	alphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Make folds diacritics, lowercases and joins alphanumeric runs with "-".
// It returns "" when s has no letters or digits.
func Make(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// MakeOr is Make with a fallback for titles that slug to nothing.
func MakeOr(s, fallback string) string {
	if v := Make(s); v != "" {
		return v
	}
	return Make(fallback)
}

// Suffix returns n random base36 characters.
func Suffix(n int) string {
	out := make([]byte, n)
	radix := big.NewInt(int64(len(alphabet)))
	for i := range out {
		v, err := rand.Int(rand.Reader, radix)
		if err != nil {
			out[i] = alphabet[i%len(alphabet)]
			continue
		}
		out[i] = alphabet[v.Int64()]
	}
	return string(out)
}

// WithSuffix joins base and a five character random suffix.
func WithSuffix(base string) string {
	return base + "-" + Suffix(suffixLen)
}
