package semantic

import (
	"slices"
	"strings"
)

// AnchorKind identifies the base instant of an expression.
type AnchorKind int

const (
	Now AnchorKind = iota
	Today
	Tomorrow
	Yesterday
	BeforeYesterday
	Literal // a parenthesized date
)

// Keywords lists the keyword anchors in display order.
var Keywords = []AnchorKind{Now, Today, Tomorrow, Yesterday, BeforeYesterday}

func (k AnchorKind) String() string {
	switch k {
	case Now:
		return "now"
	case Today:
		return "today"
	case Tomorrow:
		return "tomorrow"
	case Yesterday:
		return "yesterday"
	case BeforeYesterday:
		return "before-yesterday"
	case Literal:
		return "literal"
	default:
		return "unknown"
	}
}

// aliases maps every accepted spelling to its anchor. Matching is exact and
// case-sensitive. Multi-word aliases use a single space between words.
var aliases = map[string]AnchorKind{
	"now":     Now,
	"xianzai": Now,
	"xz":      Now,
	"现在":      Now,

	"today":   Today,
	"jintian": Today,
	"jt":      Today,
	"今天":      Today,

	"tomorrow": Tomorrow,
	"mingtian": Tomorrow,
	"mt":       Tomorrow,
	"明天":       Tomorrow,

	"yesterday": Yesterday,
	"zuotian":   Yesterday,
	"zt":        Yesterday,
	"昨天":        Yesterday,

	"before-yesterday":     BeforeYesterday,
	"before yesterday":     BeforeYesterday,
	"day before yesterday": BeforeYesterday,
	"qiantian":             BeforeYesterday,
	"qt":                   BeforeYesterday,
	"前天":                   BeforeYesterday,
}

// maxAliasWords is the word count of the longest alias.
var maxAliasWords = func() int {
	n := 1
	for alias := range aliases {
		n = max(n, len(strings.Fields(alias)))
	}
	return n
}()

// Aliases returns the sorted spellings of a keyword anchor.
func Aliases(k AnchorKind) []string {
	var out []string
	for alias, kind := range aliases {
		if kind == k {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// LookupKeyword returns the anchor spelled exactly as s.
func LookupKeyword(s string) (AnchorKind, bool) {
	k, ok := aliases[s]
	return k, ok
}

// matchKeyword greedily matches the longest alias at the start of tokens and
// returns the anchor and the number of tokens it spans.
func matchKeyword(tokens []Token) (AnchorKind, int, bool) {
	for n := min(maxAliasWords, len(tokens)); n > 0; n-- {
		words := make([]string, n)
		for i, tok := range tokens[:n] {
			words[i] = tok.Text
		}
		if k, ok := aliases[strings.Join(words, " ")]; ok {
			return k, n, true
		}
	}
	return 0, 0, false
}
