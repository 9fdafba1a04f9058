package config

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

const unnamedFile = "_unnamed_"

// CleanFileName removes characters which could not be used in generated
// artifact names. Leading dots are dropped so output never becomes hidden.
func CleanFileName(in string) string {
	forbidden := forbiddenFileRunes + string(os.PathSeparator) + string(os.PathListSeparator)
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(forbidden, sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimRight(strings.TrimLeft(out, ". "), " ")
	if len(out) == 0 {
		return unnamedFile
	}
	return out
}

// EnableColorOutput checks if colorized output is possible. NO_COLOR in
// environment always disables it.
func EnableColorOutput(stream *os.File) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	if !term.IsTerminal(int(stream.Fd())) {
		return false
	}
	return enableVirtualTerminal(stream)
}
