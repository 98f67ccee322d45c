// Package normalize turns free text into the canonical form used for both
// intent training and classification.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Text lowercases s, removes every character that is not a-z or whitespace,
// tokenizes with the Penn Treebank rules, drops English stopwords and joins
// the remaining tokens with single spaces. It is deterministic and idempotent.
func Text(s string) string {
	return strings.Join(Tokens(s), " ")
}

// Lower is the English case folding shared by normalization and matching.
func Lower(s string) string {
	// cases.Caser is stateful; a fresh one per call keeps Lower safe for
	// concurrent use.
	return cases.Lower(language.English).String(s)
}

// Tokens is Text without the final join.
func Tokens(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, Lower(s))

	words := tokenize(cleaned)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if IsStopword(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// treebankSplits are the Penn Treebank contractions that survive once
// apostrophes are gone. Each is split into two tokens.
var treebankSplits = map[string][2]string{
	"cannot": {"can", "not"},
	"gimme":  {"gim", "me"},
	"gonna":  {"gon", "na"},
	"gotta":  {"got", "ta"},
	"lemme":  {"lem", "me"},
	"wanna":  {"wan", "na"},
}

// tokenize splits text that holds only a-z and whitespace. Without
// punctuation the Treebank tokenizer reduces to a whitespace split plus the
// contraction splits above.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if parts, ok := treebankSplits[f]; ok {
			out = append(out, parts[0], parts[1])
			continue
		}
		out = append(out, f)
	}
	return out
}
