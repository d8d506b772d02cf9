package service

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

var (
	slugDropped   = regexp.MustCompile(`[^\p{L}\p{M}\p{N}\s]+`)
	slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify lowercases the title, drops every character that is not a letter, digit or
// whitespace, and joins the remaining words with single dashes. Dashes in the title
// separate words.
func Slugify(title string) string {
	s := slugDropped.ReplaceAllString(strings.ReplaceAll(title, "-", " "), "")
	s = slugSeparator.ReplaceAllString(slug.Make(s), "-")
	return strings.Trim(s, "-")
}
