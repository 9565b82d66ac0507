// Package catalog holds the static, versioned registry of detection rules:
// per-language patterns plus cross-file dependency rules. The catalog is
// read-only after construction and its ordering is deterministic so that
// diagnostic output is reproducible across runs.
package catalog

import "webguard/src/model"

// Version identifies the builtin rule set
const Version = "1.0.0"

// Catalog is the pattern registry shared read-only across a run
type Catalog struct {
	byLanguage map[model.Language][]model.Pattern
	crossFile  []model.CrossFileRule
}

// New builds the catalog with the builtin rule set
func New() *Catalog {
	return &Catalog{
		byLanguage: map[model.Language][]model.Pattern{
			model.LanguageMarkup: markupPatterns(),
			model.LanguageStyle:  stylePatterns(),
			model.LanguageScript: scriptPatterns(),
		},
		crossFile: crossFileRules(),
	}
}

// RulesFor returns the ordered pattern sequence for a language.
// Unknown languages yield an empty sequence.
func (c *Catalog) RulesFor(lang model.Language) []model.Pattern {
	return c.byLanguage[lang]
}

// CrossFileRules returns the ordered cross-file dependency rules
func (c *Catalog) CrossFileRules() []model.CrossFileRule {
	return c.crossFile
}

// All returns every pattern in deterministic language order
func (c *Catalog) All() []model.Pattern {
	var all []model.Pattern
	for _, lang := range []model.Language{model.LanguageMarkup, model.LanguageStyle, model.LanguageScript} {
		all = append(all, c.byLanguage[lang]...)
	}
	return all
}
