package semantic

import (
	"unicode"
	"unicode/utf8"
)

// Token is one separator-delimited fragment of an expression.
type Token struct {
	Text string
	Pos  int // byte offset in the expression
}

func isSeparator(r rune) bool {
	return r == ',' || r == '，' || unicode.IsSpace(r)
}

// Tokenize splits s on commas and whitespace. Separators may be mixed and
// consecutive separators collapse.
func Tokenize(s string) []Token {
	return tokenizeAt(s, 0)
}

// tokenizeAt tokenizes s, reporting positions relative to base.
func tokenizeAt(s string, base int) []Token {
	var tokens []Token
	start := -1

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isSeparator(r) {
			if start >= 0 {
				tokens = append(tokens, Token{Text: s[start:i], Pos: base + start})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
		i += size
	}

	if start >= 0 {
		tokens = append(tokens, Token{Text: s[start:], Pos: base + start})
	}

	return tokens
}
