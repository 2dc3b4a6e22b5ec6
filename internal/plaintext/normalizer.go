package plaintext

import (
	"regexp"
	"strings"
)

// Replacement maps a technical term to its plain-language equivalent.
type Replacement struct {
	Term  string
	Plain string
}

// DefaultReplacements returns the vocabulary table used to lower the reading
// level of model output for farmers. Multi-word terms come before any word
// they contain so longer matches win.
func DefaultReplacements() []Replacement {
	return []Replacement{
		{"nutrient deficiency", "not enough food for plants"},
		{"fertilizer", "plant food"},
		{"pesticide", "bug spray"},
		{"herbicide", "weed killer"},
		{"fungicide", "plant medicine"},
		{"irrigation", "watering"},
		{"cultivation", "growing"},
		{"precipitation", "rain"},
		{"utilize", "use"},
		{"implement", "use"},
		{"appropriate", "right"},
		{"sufficient", "enough"},
		{"immediately", "now"},
		{"subsequently", "after that"},
		{"approximately", "about"},
		{"significantly", "a lot"},
		{"initiate", "start"},
		{"terminate", "end"},
		{"commence", "begin"},
		{"nitrogen", "plant food"},
		{"dormant", "sleeping"},
		{"propagation", "growing new plants"},
		{"germination", "seed starting"},
	}
}

var (
	boldSpan   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicSpan = regexp.MustCompile(`\*([^*\s][^*]*?)\*`)
)

// Normalizer rewrites model-generated text so it reads at a low literacy
// level: markdown emphasis is stripped, bullet asterisks become dashes, and
// technical vocabulary is swapped for the plain-language table.
type Normalizer struct {
	rules []rule
}

type rule struct {
	re    *regexp.Regexp
	plain string
}

// New builds a Normalizer with the given vocabulary table. Matching is
// case-insensitive and bounded at word edges.
func New(replacements []Replacement) *Normalizer {
	rules := make([]rule, 0, len(replacements))
	for _, r := range replacements {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(r.Term) + `\b`)
		rules = append(rules, rule{re: re, plain: r.Plain})
	}
	return &Normalizer{rules: rules}
}

// Default returns a Normalizer with the packaged vocabulary table.
func Default() *Normalizer {
	return New(DefaultReplacements())
}

// Normalize applies emphasis removal, bullet conversion, and vocabulary
// substitution, in that order. It is total and idempotent.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return text
	}

	out := boldSpan.ReplaceAllString(text, "$1")
	out = italicSpan.ReplaceAllString(out, "$1")
	out = strings.ReplaceAll(out, "* ", "- ")

	for _, r := range n.rules {
		out = r.re.ReplaceAllString(out, r.plain)
	}
	return out
}
