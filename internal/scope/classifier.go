package scope

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// EmptyInputMessage is returned for empty or whitespace-only input.
const EmptyInputMessage = "入力が空です。チェックしたい仕様を入力してください。"

// Verdict is the result of classifying one input. An out-of-scope verdict
// carries the matched category and message; the empty-input verdict has no
// category.
type Verdict struct {
	InScope  bool   `json:"in_scope"`
	Category string `json:"category,omitempty"`
	Message  string `json:"message,omitempty"`
	Empty    bool   `json:"empty_input,omitempty"`
}

type matcher struct {
	rule    Rule
	literal string
	re      *regexp.Regexp
}

func (m matcher) match(text, folded string) bool {
	if m.re != nil {
		return m.re.MatchString(text)
	}
	return strings.Contains(folded, m.literal)
}

// Classifier decides whether free text belongs to the supported legal-risk
// domain. It is immutable after New and safe for concurrent use.
type Classifier struct {
	matchers   []matcher
	categories []Category
	keywords   [][]string
}

// New validates the table and prepares it for matching. The table is copied,
// later changes to the caller's slices have no effect.
func New(table Table) (*Classifier, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	c := &Classifier{
		matchers:   make([]matcher, 0, len(table.OutOfScope)),
		categories: copyCategories(table.InScope),
		keywords:   make([][]string, 0, len(table.InScope)),
	}

	for _, rule := range table.OutOfScope {
		m := matcher{rule: rule}
		if rule.Regex {
			m.re = regexp.MustCompile("(?i)" + rule.Pattern)
		} else {
			m.literal = fold(rule.Pattern)
		}
		c.matchers = append(c.matchers, m)
	}

	for _, category := range table.InScope {
		folded := make([]string, len(category.Keywords))
		for i, keyword := range category.Keywords {
			folded[i] = fold(keyword)
		}
		c.keywords = append(c.keywords, folded)
	}

	return c, nil
}

// MustNew is New for tables known to be valid, such as DefaultTable.
func MustNew(table Table) *Classifier {
	c, err := New(table)
	if err != nil {
		panic(err)
	}
	return c
}

// CheckScope classifies text. Empty input is rejected before any rule runs;
// otherwise the first rule, in declaration order, whose pattern occurs in the
// text decides the verdict.
func (c *Classifier) CheckScope(text string) Verdict {
	if strings.TrimSpace(text) == "" {
		return Verdict{
			InScope: false,
			Message: EmptyInputMessage,
			Empty:   true,
		}
	}

	folded := fold(text)
	for _, m := range c.matchers {
		if m.match(text, folded) {
			return Verdict{
				InScope:  false,
				Category: m.rule.Category,
				Message:  m.rule.Message,
			}
		}
	}

	return Verdict{InScope: true}
}

// SuggestCategory returns the in-scope category with the most keyword hits.
// A later category needs strictly more hits to replace an earlier one.
func (c *Classifier) SuggestCategory(text string) (string, bool) {
	folded := fold(text)

	best, bestCount := -1, 0
	for i, keywords := range c.keywords {
		count := 0
		for _, keyword := range keywords {
			if strings.Contains(folded, keyword) {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = i, count
		}
	}

	if best < 0 {
		return "", false
	}
	return c.categories[best].Name, true
}

// InScopeCategories returns a copy of the configured categories.
func (c *Classifier) InScopeCategories() []Category {
	return copyCategories(c.categories)
}

// Rules returns a copy of the out-of-scope rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	rules := make([]Rule, len(c.matchers))
	for i, m := range c.matchers {
		rules[i] = m.rule
	}
	return rules
}

// fold applies Unicode case folding. A Caser keeps state, so a new one is
// created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

func copyCategories(src []Category) []Category {
	out := make([]Category, len(src))
	for i, category := range src {
		out[i] = Category{
			Name:     category.Name,
			Keywords: append([]string(nil), category.Keywords...),
		}
	}
	return out
}
