package service

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabularyYAML []byte

// Term is one canonical vocabulary key with the surface forms that select it.
type Term struct {
	Key      string   `yaml:"key"`
	Variants []string `yaml:"variants"`
}

// Vocabulary holds the ordered term lists the extractor scans. Slices keep
// declaration order, which decides ambiguous prompts.
type Vocabulary struct {
	Countries          []Term   `yaml:"countries"`
	Categories         []Term   `yaml:"categories"`
	ProductTypes       []Term   `yaml:"product_types"`
	Manufacturers      []Term   `yaml:"manufacturers"`
	ExclusivityMarkers []string `yaml:"exclusivity_markers"`
	LowerBoundWords    []string `yaml:"lower_bound_words"`
}

// ParseVocabulary decodes and normalizes a YAML vocabulary.
func ParseVocabulary(data []byte) (Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary: %w", err)
	}
	for _, section := range []struct {
		name  string
		terms []Term
	}{
		{"countries", v.Countries},
		{"categories", v.Categories},
		{"product_types", v.ProductTypes},
		{"manufacturers", v.Manufacturers},
	} {
		for i := range section.terms {
			t := &section.terms[i]
			t.Key = strings.ToLower(strings.TrimSpace(t.Key))
			if t.Key == "" {
				return Vocabulary{}, fmt.Errorf("parse vocabulary: %s entry %d has no key", section.name, i)
			}
			if len(t.Variants) == 0 {
				return Vocabulary{}, fmt.Errorf("parse vocabulary: %s term %q has no variants", section.name, t.Key)
			}
			t.Variants = lowerAll(t.Variants)
		}
	}
	v.ExclusivityMarkers = lowerAll(v.ExclusivityMarkers)
	v.LowerBoundWords = lowerAll(v.LowerBoundWords)
	return v, nil
}

// DefaultVocabulary returns the embedded vocabulary. It panics only if the
// embedded file is malformed, which the tests guard against.
func DefaultVocabulary() Vocabulary {
	v, err := ParseVocabulary(defaultVocabularyYAML)
	if err != nil {
		panic(err)
	}
	return v
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}

// firstMatch returns the key of the first term with a variant inside text.
func firstMatch(terms []Term, text string) (string, bool) {
	for _, term := range terms {
		for _, variant := range term.Variants {
			if strings.Contains(text, variant) {
				return term.Key, true
			}
		}
	}
	return "", false
}
