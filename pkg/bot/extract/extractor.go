// Package extract turns a raw natural-language question into a minimal
// search phrase by stripping interrogative scaffolding ("who is", "tell me
// about", ...). The stem table is plain data so classification rules can be
// tested independently of the follow-up resolver.
package extract

import (
	"sort"
	"strings"
)

// Stems is the ordered table of leading interrogative phrases that are
// removed from a question before it is used as a search key. Matching is
// longest-first and at most one stem is stripped per question.
var Stems = buildStems()

func buildStems() []string {
	stems := []string{
		"give me information about",
		"i want to know about",
		"tell me more about",
		"tell me about",
		"information about",
		"details about",
		"who is the ceo of",
		"who is the president of",
		"who is the prime minister of",
		"who is the founder of",
		"what is the capital of",
		"describe",
		"explain",
	}
	subjects := []string{"who", "what", "where", "when", "why", "how"}
	auxiliaries := []string{"is", "was", "are", "does", "did", "do"}
	for _, s := range subjects {
		for _, aux := range auxiliaries {
			stems = append(stems, s+" "+aux)
		}
	}
	// Longest-first so "who is the ceo of" wins over "who is".
	sort.Slice(stems, func(i, j int) bool {
		return len(stems[i]) > len(stems[j])
	})
	return stems
}

var pronouns = map[string]bool{
	"he": true, "she": true, "they": true, "it": true,
	"him": true, "her": true, "them": true,
}

var possessives = map[string]bool{
	"his": true, "her": true, "their": true, "its": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Strip removes one leading stem (longest match) and trailing punctuation.
// The result may be empty when the question consisted of scaffolding only;
// callers that need a usable phrase should go through Extract.
func Strip(raw string) string {
	// Trailing punctuation is dropped before matching so "what is?" still
	// matches the "what is" stem.
	s := strings.TrimRight(strings.TrimSpace(raw), "?.! ")
	lower := strings.ToLower(s)
	for _, stem := range Stems {
		if strings.HasPrefix(lower, stem) {
			rest := s[len(stem):]
			// Require a word boundary so "whole" never matches "who".
			if rest != "" && rest[0] != ' ' {
				continue
			}
			s = strings.TrimSpace(rest)
			break
		}
	}
	return s
}

// Extract returns the search phrase for a raw question. A question that is
// scaffolding only ("what is?") falls back to the original trimmed input so
// a non-empty question never yields an empty phrase.
func Extract(raw string) string {
	s := Strip(raw)
	if s == "" {
		return strings.TrimRight(strings.TrimSpace(raw), "?.! ")
	}
	return s
}

// IsPronoun reports whether word is a bare third-person pronoun.
func IsPronoun(word string) bool {
	return pronouns[strings.ToLower(strings.TrimSpace(word))]
}

// LeadingPronoun splits a stripped phrase of the form "he study" into its
// pronoun and residual fragment. ok is false when the phrase does not start
// with a subject/object pronoun.
func LeadingPronoun(phrase string) (residual string, ok bool) {
	fields := strings.Fields(phrase)
	if len(fields) == 0 || !IsPronoun(fields[0]) {
		return "", false
	}
	return dropArticles(fields[1:]), true
}

// LeadingPossessive splits a stripped phrase of the form "his profession"
// into the descriptive residual. ok is false when the phrase does not start
// with a possessive pronoun.
func LeadingPossessive(phrase string) (residual string, ok bool) {
	fields := strings.Fields(phrase)
	if len(fields) == 0 || !possessives[strings.ToLower(fields[0])] {
		return "", false
	}
	return dropArticles(fields[1:]), true
}

func dropArticles(fields []string) string {
	for len(fields) > 0 && articles[strings.ToLower(fields[0])] {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}
