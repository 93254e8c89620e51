package model

import (
	"regexp"
	"strings"
)

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^\w-]+`)
	slugDashes  = regexp.MustCompile(`-{2,}`)
)

// Slugify lowercases text, turns whitespace into dashes and drops everything that is not a word
// character or a dash.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// All returns every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&Department{},
		&Division{},
		&Member{},
		&Event{},
		&Gallery{},
		&Forum{},
		&ForumComment{},
		&ForumLike{},
		&Article{},
		&ArticleLike{},
		&BankData{},
	}
}
