// Package redact replaces sensitive substrings in message text with fixed
// placeholder tokens. Patterns are grouped into named categories that can
// be toggled independently; the category registry is built once and its
// order is a contract, not a convenience.
package redact

import "regexp"

// Category is one toggleable group of ordered patterns sharing a
// placeholder token.
type Category struct {
	Name           string
	Description    string
	DefaultEnabled bool
	Token          string
	Patterns       []*regexp.Regexp
}

// Config selects which categories run. Enabled false turns the whole
// engine into an identity transform.
type Config struct {
	Enabled    bool
	Categories map[string]bool
}

// Result carries the redacted text and match tallies. PerCategory has an
// entry for every registered category, zero when it did not fire.
type Result struct {
	Text        string
	TotalCount  int
	PerCategory map[string]int
}

// DefaultConfig enables the engine with each category at its declared
// default: security and PII categories on, convenience categories off.
func DefaultConfig() Config {
	cats := make(map[string]bool, len(registry))
	for _, c := range registry {
		cats[c.Name] = c.DefaultEnabled
	}
	return Config{Enabled: true, Categories: cats}
}

// Registry returns the categories in application order.
func Registry() []Category {
	return registry
}

// Sanitize applies every enabled category, in registry order, to text.
//
// Each pattern is matched against the text as already mutated by earlier
// patterns and categories. That is deliberate: a later category can never
// re-match an earlier category's placeholder, and two patterns within one
// category may overlap on the original text. Go's regexp is stateless per
// call, so no match cursor survives between applications.
func Sanitize(text string, cfg Config) Result {
	counts := make(map[string]int, len(registry))
	for _, c := range registry {
		counts[c.Name] = 0
	}
	res := Result{Text: text, PerCategory: counts}
	if !cfg.Enabled {
		return res
	}

	for _, c := range registry {
		if !cfg.Categories[c.Name] {
			continue
		}
		for _, p := range c.Patterns {
			n := len(p.FindAllStringIndex(res.Text, -1))
			if n == 0 {
				continue
			}
			counts[c.Name] += n
			res.TotalCount += n
			res.Text = p.ReplaceAllString(res.Text, c.Token)
		}
	}
	return res
}
