package domain

import "fmt"

// Category selects the request-number prefix.
type Category string

const (
	CategoryAstana    Category = "astana"
	CategoryIntercity Category = "intercity"
)

var categoryPrefixes = map[Category]string{
	CategoryAstana:    "AST",
	CategoryIntercity: "INT",
}

// Prefix returns the request-number prefix for c, or ErrInvalidCategory.
func (c Category) Prefix() (string, error) {
	p, ok := categoryPrefixes[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
	}
	return p, nil
}

// FormatRequestNumber renders <PREFIX>-<YEAR>-<SEQ> with SEQ padded to three digits.
// Sequences above 999 are rendered with as many digits as they need.
func FormatRequestNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, seq)
}
