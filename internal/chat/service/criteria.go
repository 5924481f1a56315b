package service

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// SearchCriteria is the structured filter extracted from a chat prompt.
// Unset fields impose no constraint. Price bounds are pointers so that 0 is a
// usable bound.
type SearchCriteria struct {
	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
	Country      *string  `json:"country"`
	Category     *string  `json:"category"`
	ProductType  *string  `json:"product_type"`
	Manufacturer *string  `json:"manufacturer"`
	ExactMatch   bool     `json:"exact_match"`
}

// IsEmpty reports whether no field was extracted.
func (c SearchCriteria) IsEmpty() bool {
	return c.MinPrice == nil && c.MaxPrice == nil && c.Country == nil &&
		c.Category == nil && c.ProductType == nil && c.Manufacturer == nil
}

// SetFields lists the names of the extracted fields in a fixed order.
func (c SearchCriteria) SetFields() []string {
	fields := make([]string, 0, 7)
	if c.MinPrice != nil {
		fields = append(fields, "min_price")
	}
	if c.MaxPrice != nil {
		fields = append(fields, "max_price")
	}
	if c.Country != nil {
		fields = append(fields, "country")
	}
	if c.Category != nil {
		fields = append(fields, "category")
	}
	if c.ProductType != nil {
		fields = append(fields, "product_type")
	}
	if c.Manufacturer != nil {
		fields = append(fields, "manufacturer")
	}
	if c.ExactMatch {
		fields = append(fields, "exact_match")
	}
	return fields
}

// LogValue renders only the set fields, dereferenced.
func (c SearchCriteria) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 7)
	if c.MinPrice != nil {
		attrs = append(attrs, slog.Float64("min_price", *c.MinPrice))
	}
	if c.MaxPrice != nil {
		attrs = append(attrs, slog.Float64("max_price", *c.MaxPrice))
	}
	for _, f := range []struct {
		key string
		val *string
	}{
		{"country", c.Country},
		{"category", c.Category},
		{"product_type", c.ProductType},
		{"manufacturer", c.Manufacturer},
	} {
		if f.val != nil {
			attrs = append(attrs, slog.String(f.key, *f.val))
		}
	}
	if c.ExactMatch {
		attrs = append(attrs, slog.Bool("exact_match", true))
	}
	return slog.GroupValue(attrs...)
}

type priceKind int

const (
	priceRange priceKind = iota
	priceMax
	priceMin
	priceBare
)

type pricePattern struct {
	kind priceKind
	re   *regexp.Regexp
}

// Keyword patterns require a non-letter (or start of text) before the keyword
// so "подо 5 руб" is not read as "до 5 руб". RE2 \b is ASCII only.
const wordStart = `(?:^|[^\p{L}])`

// pricePatterns is tried in order; the first match wins. Specific phrasings
// precede the bare number so it cannot steal their match.
var pricePatterns = []pricePattern{
	{priceRange, regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*руб`)},
	{priceMax, regexp.MustCompile(wordStart + `до\s*(\d+)\s*руб`)},
	{priceMax, regexp.MustCompile(wordStart + `дешевле\s*(\d+)\s*руб`)},
	{priceMin, regexp.MustCompile(wordStart + `от\s*(\d+)\s*руб`)},
	{priceMin, regexp.MustCompile(wordStart + `больше\s*(\d+)\s*руб`)},
	{priceBare, regexp.MustCompile(`(\d+)\s*руб`)},
}

// Extractor turns free text into SearchCriteria using a fixed vocabulary.
type Extractor struct {
	vocab Vocabulary
}

// NewExtractor creates an extractor over vocab.
func NewExtractor(vocab Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract runs the price, country, category, product type and manufacturer
// scans over the lower-cased text. It never fails; unmatched fields stay unset.
func (e *Extractor) Extract(text string) SearchCriteria {
	text = strings.ToLower(text)

	var c SearchCriteria
	c.MinPrice, c.MaxPrice = e.extractPrice(text)

	if key, ok := firstMatch(e.vocab.Countries, text); ok {
		c.Country = &key
	}
	if key, ok := firstMatch(e.vocab.Categories, text); ok {
		c.Category = &key
	}
	if key, ok := firstMatch(e.vocab.ProductTypes, text); ok {
		c.ProductType = &key
		c.ExactMatch = containsAny(text, e.vocab.ExclusivityMarkers)
	}
	if key, ok := firstMatch(e.vocab.Manufacturers, text); ok {
		c.Manufacturer = &key
	}
	return c
}

func (e *Extractor) extractPrice(text string) (minPrice, maxPrice *float64) {
	for _, p := range pricePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch p.kind {
		case priceRange:
			lo, hi := parsePrice(m[1]), parsePrice(m[2])
			if lo > hi {
				lo, hi = hi, lo
			}
			return &lo, &hi
		case priceMax:
			v := parsePrice(m[1])
			return nil, &v
		case priceMin:
			v := parsePrice(m[1])
			return &v, nil
		case priceBare:
			v := parsePrice(m[1])
			if hasAnyWord(text, e.vocab.LowerBoundWords) {
				return &v, nil
			}
			return nil, &v
		}
	}
	return nil, nil
}

// parsePrice reads a run of ASCII digits. Overflow yields +Inf.
func parsePrice(digits string) float64 {
	v, _ := strconv.ParseFloat(digits, 64)
	return v
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// hasAnyWord reports whether text contains one of words as a whole word.
func hasAnyWord(text string, words []string) bool {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, token := range tokens {
		for _, w := range words {
			if token == w {
				return true
			}
		}
	}
	return false
}
