// Package categorizer maps transactions onto the fixed category enumeration:
// 1. Case-insensitive canonicalization of a category the source already supplied
// 2. Keyword-based inference over the transaction description as a fallback
//
// Both operations are total over the configured category set: the result is
// always a member of the set, never empty and never a passthrough of an
// unrecognized value.
package categorizer

import (
	"strings"

	"fjacquet/receipt-parser/internal/logging"
	"fjacquet/receipt-parser/internal/models"
)

// Categorizer holds the ordered category enumeration and answers
// categorization queries against it. Configure it fully before sharing;
// after setup it is read-only and safe for concurrent use.
type Categorizer struct {
	categories []models.CategoryConfig
	fallback   string
	logger     logging.Logger
}

// NewCategorizer creates a Categorizer over the given ordered category set.
// The set must not be empty; order decides keyword precedence (first match
// wins) and which category acts as the fallback when no catch-all is marked.
func NewCategorizer(categories []models.CategoryConfig, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}

	return &Categorizer{
		categories: categories,
		logger:     logger,
	}
}

// SetFallback overrides the fallback category with a configured name. The
// name must match a member of the set (any casing); anything else is logged
// and ignored, keeping Fallback total over the configured categories.
func (c *Categorizer) SetFallback(name string) {
	if name == "" {
		return
	}
	canonical, ok := c.Canonicalize(name)
	if !ok {
		c.logger.WithField(logging.FieldCategory, name).Warn("Configured fallback category is not in the category set, ignoring")
		return
	}
	c.fallback = canonical
}

// Categories returns the configured category set.
func (c *Categorizer) Categories() []models.CategoryConfig {
	return c.categories
}

// CategoryNames returns the ordered canonical category names.
func (c *Categorizer) CategoryNames() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Canonicalize matches a supplied category name against the set,
// case-insensitively, and returns the member's canonical casing.
// The boolean is false when the name is not a member.
func (c *Categorizer) Canonicalize(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false
	}

	for _, cat := range c.categories {
		if strings.EqualFold(cat.Name, trimmed) {
			return cat.Name, true
		}
	}
	return "", false
}

// Infer runs keyword inference over a free-text description and returns the
// first category whose keyword list matches. When no rule matches, the
// catch-all category is returned (or the first category in the set if none
// is marked catch-all). Pure function of its inputs.
func (c *Categorizer) Infer(description string) string {
	upper := strings.ToUpper(description)

	for _, cat := range c.categories {
		for _, keyword := range cat.Keywords {
			if strings.Contains(upper, strings.ToUpper(keyword)) {
				c.logger.WithFields(
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: logging.FieldCategory, Value: cat.Name},
				).Debug("Category inferred from keyword")
				return cat.Name
			}
		}
	}

	return c.Fallback()
}

// Resolve picks the category for a candidate: a supplied value that matches
// the set (any casing) is adopted in canonical casing, anything else falls
// through to keyword inference over the description.
func (c *Categorizer) Resolve(supplied, description string) string {
	if canonical, ok := c.Canonicalize(supplied); ok {
		return canonical
	}
	return c.Infer(description)
}

// Fallback returns the configured fallback category when one was set,
// otherwise the catch-all category, otherwise the first category in the set.
func (c *Categorizer) Fallback() string {
	if c.fallback != "" {
		return c.fallback
	}
	for _, cat := range c.categories {
		if cat.CatchAll {
			return cat.Name
		}
	}
	if len(c.categories) > 0 {
		return c.categories[0].Name
	}
	return ""
}
