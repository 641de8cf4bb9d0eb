package fuzzy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MatchFunc compares one candidate string against one pattern.
type MatchFunc func(candidate, pattern string) bool

// matchFuncs is indexed by MatchType and never modified after init.
var matchFuncs = [...]MatchFunc{
	Exact:      exactMatch,
	IgnoreCase: ignoreCaseMatch,
	Prefix:     prefixMatch,
	Suffix:     suffixMatch,
	Contains:   strings.Contains,
	Glob:       globMatch,
	Regex:      regexMatch,
}

// MatchFuncFor returns the comparison function registered for m.
func MatchFuncFor(m MatchType) (MatchFunc, error) {
	if !m.IsValid() {
		return nil, &InvalidMatchStrategyError{Value: m.String()}
	}
	return matchFuncs[m], nil
}

func exactMatch(candidate, pattern string) bool {
	return candidate == pattern
}

func ignoreCaseMatch(candidate, pattern string) bool {
	// A Caser holds state and must not be shared between goroutines.
	// Lower rather than Fold: "ß" and "ss" are different words.
	lower := cases.Lower(language.Und)
	return lower.String(candidate) == lower.String(pattern)
}

func prefixMatch(candidate, pattern string) bool {
	return globMatch(candidate, pattern+"*")
}

func suffixMatch(candidate, pattern string) bool {
	return globMatch(candidate, "*"+pattern)
}

// globLiterals are special to gobwas/glob but literal in shell-style patterns.
var globLiterals = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`)

// globMatch implements shell-style matching where '*' also crosses '/'.
// Bracket expressions follow fnmatch rules, which gobwas/glob does not share,
// so patterns holding a '[' are translated to a regular expression instead.
func globMatch(candidate, pattern string) bool {
	if strings.ContainsRune(pattern, '[') {
		re := translateGlob(pattern)
		return re != nil && re.MatchString(candidate)
	}
	compiled, err := glob.Compile(globLiterals.Replace(pattern))
	if err != nil {
		return false
	}
	return compiled.Match(candidate)
}

// translateGlob rewrites pattern as an anchored regular expression. An
// unterminated '[' is a literal character. It returns nil when the pattern
// can match nothing.
func translateGlob(pattern string) *regexp.Regexp {
	src := []rune(pattern)
	var b strings.Builder
	b.WriteString(`^(?s:`)
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		case '[':
			end := classEnd(src, i+1)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			class, ok := bracketClass(src[i+1 : end])
			if !ok {
				return nil
			}
			b.WriteString(class)
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(src[i])))
		}
	}
	b.WriteString(`)$`)
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil
	}
	return re
}

// classEnd returns the index of the ']' closing the set whose body starts at i,
// or -1. A ']' directly after the opening bracket (or its '!') is a member.
func classEnd(src []rune, i int) int {
	j := i
	if j < len(src) && src[j] == '!' {
		j++
	}
	if j < len(src) && src[j] == ']' {
		j++
	}
	for ; j < len(src); j++ {
		if src[j] == ']' {
			return j
		}
	}
	return -1
}

// bracketClass renders a set body as a regular expression class. A leading
// '!' negates, a '-' with nothing on one side is literal, and reversed ranges
// are dropped. It reports false for a set that can match nothing.
func bracketClass(body []rune) (string, bool) {
	negate := len(body) > 0 && body[0] == '!'
	if negate {
		body = body[1:]
	}
	var items strings.Builder
	for p := 0; p < len(body); p++ {
		lo, hi := body[p], body[p]
		if p+2 < len(body) && body[p+1] == '-' {
			hi = body[p+2]
			p += 2
		}
		if lo > hi {
			continue
		}
		fmt.Fprintf(&items, `\x{%x}`, lo)
		if hi != lo {
			fmt.Fprintf(&items, `-\x{%x}`, hi)
		}
	}
	switch {
	case items.Len() == 0 && negate:
		return `.`, true
	case items.Len() == 0:
		return "", false
	case negate:
		return `[^` + items.String() + `]`, true
	default:
		return `[` + items.String() + `]`, true
	}
}

// regexMatch compiles the candidate and searches the pattern text with it.
// A candidate that is not a valid expression never matches.
func regexMatch(candidate, pattern string) bool {
	re, err := regexp.Compile(candidate)
	if err != nil {
		return false
	}
	return re.MatchString(pattern)
}
