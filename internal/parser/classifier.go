package parser

import (
	"regexp"
	"sort"

	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/textutils"
)

// BuildFunc turns the submatches of a line rule into a product. groups[0] is the
// whole match; unmatched optional groups are empty strings.
type BuildFunc func(groups []string) (models.Product, error)

// LineRule is one line grammar: a line shape and the construction of a product from it.
type LineRule struct {
	Name     string
	Category models.Category
	Pattern  *regexp.Regexp
	Build    BuildFunc
}

// NewLineRule compiles pattern in multi-line mode, so ^ and $ anchor on line boundaries.
// It panics if the pattern is invalid; rules are package-level tables.
func NewLineRule(name string, category models.Category, pattern string, build BuildFunc) LineRule {
	return LineRule{
		Name:     name,
		Category: category,
		Pattern:  regexp.MustCompile("(?m)" + pattern),
		Build:    build,
	}
}

// Classifier applies an ordered list of line rules to receipt text.
//
// Rules run in order over the whole text. A match claims every physical line it
// spans; a match from a later rule touching a claimed line is dropped, so a line
// produces at most one product. Products come back in order of appearance.
type Classifier struct {
	rules  []LineRule
	logger logging.Logger
}

// NewClassifier creates a classifier over rules, tried most specific first.
func NewClassifier(logger logging.Logger, rules ...LineRule) *Classifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Classifier{
		rules:  append([]LineRule(nil), rules...),
		logger: logger,
	}
}

// Rules returns the rules in evaluation order.
func (c *Classifier) Rules() []LineRule {
	return append([]LineRule(nil), c.rules...)
}

type match struct {
	offset  int
	product models.Product
}

// Classify returns the products found in text.
func (c *Classifier) Classify(text string) []models.Product {
	text = textutils.NormalizeLines(text)
	claimed := make(map[int]bool)
	var found []match

	for _, rule := range c.rules {
		for _, idx := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := idx[0], idx[1]
			first, last := textutils.LineAt(text, start), textutils.LineAt(text, end)
			if end > start && text[end-1] == '\n' {
				last--
			}

			if anyClaimed(claimed, first, last) {
				c.logger.Debug("Dropping match on an already classified line",
					logging.F(logging.FieldRule, rule.Name),
					logging.F(logging.FieldLine, first+1),
					logging.F(logging.FieldLastLine, last+1),
					logging.F(logging.FieldOffset, start))
				continue
			}

			product, err := rule.Build(submatches(text, idx))
			if err != nil {
				c.logger.WithError(err).Debug("Dropping line that could not be built",
					logging.F(logging.FieldRule, rule.Name),
					logging.F(logging.FieldLine, first+1))
				continue
			}
			if product.Category == "" {
				product.Category = rule.Category
			}

			for l := first; l <= last; l++ {
				claimed[l] = true
			}
			found = append(found, match{offset: start, product: product})
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].offset < found[j].offset })

	products := make([]models.Product, 0, len(found))
	for _, m := range found {
		products = append(products, m.product)
	}

	c.logger.Debug("Classified receipt lines", logging.F(logging.FieldCount, len(products)))
	return products
}

func anyClaimed(claimed map[int]bool, first, last int) bool {
	for l := first; l <= last; l++ {
		if claimed[l] {
			return true
		}
	}
	return false
}

func submatches(text string, idx []int) []string {
	groups := make([]string, len(idx)/2)
	for i := range groups {
		if idx[2*i] >= 0 {
			groups[i] = text[idx[2*i]:idx[2*i+1]]
		}
	}
	return groups
}
