// Package naming parses node labels written in a compact selector-like
// notation: tag.class1.class2#id[attr="value"].
//
// Parsing never fails. Anything which could not be understood degrades to
// defaults, the worst case being a bare "div".
package naming

import (
	"regexp"
	"slices"
	"strings"
)

// DefaultTag is used when label does not name a usable tag.
const DefaultTag = "div"

var (
	reAttr = regexp.MustCompile(`\[\s*([^\s\[\]="]+)\s*=\s*"([^"]*)"\s*\]`)
	reTag  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)
)

// Name is a parsed node label.
type Name struct {
	Tag     string
	Classes []string
	Attrs   *Attributes
}

// Parse splits label into tag, classes and attributes.
func Parse(label string) Name {
	name := Name{Tag: DefaultTag, Attrs: NewAttributes()}

	rest := reAttr.ReplaceAllStringFunc(label, func(m string) string {
		sub := reAttr.FindStringSubmatch(m)
		name.Attrs.Set(sub[1], sub[2])
		return ""
	})
	rest = strings.TrimSpace(rest)

	tokens := tokenize(rest)
	if len(tokens) > 0 && !isDelimiter(tokens[0][0]) {
		if tag := strings.TrimSpace(tokens[0]); reTag.MatchString(tag) {
			name.Tag = tag
		}
		tokens = tokens[1:]
	}

	for _, tok := range tokens {
		value := strings.TrimSpace(tok[1:])
		if value == "" {
			continue
		}
		switch tok[0] {
		case '#':
			name.Attrs.Set("id", value)
		case '.':
			if !slices.Contains(name.Classes, value) {
				name.Classes = append(name.Classes, value)
			}
		}
	}
	return name
}

// tokenize cuts string before every '.' or '#' so each token but possibly
// the first one starts with its delimiter.
func tokenize(s string) []string {
	var tokens []string
	start := 0
	for i := 0; i < len(s); i++ {
		if isDelimiter(s[i]) && i > start {
			tokens = append(tokens, s[start:i])
			start = i
		}
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

func isDelimiter(c byte) bool {
	return c == '.' || c == '#'
}
