package parser

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// Cleaner strips markup from feed text
type Cleaner struct {
	htmlTagRegex    *regexp.Regexp
	cdataRegex      *regexp.Regexp
	whitespaceRegex *regexp.Regexp
}

// NewCleaner creates a new text cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		htmlTagRegex:    regexp.MustCompile(`<[^>]*>`),
		cdataRegex:      regexp.MustCompile(`<!\[CDATA\[|\]\]>`),
		whitespaceRegex: regexp.MustCompile(`\s+`),
	}
}

// Clean removes HTML tags, decodes entities and collapses whitespace
func (c *Cleaner) Clean(text string) string {
	if text == "" {
		return ""
	}

	text = c.cdataRegex.ReplaceAllString(text, "")
	text = c.htmlTagRegex.ReplaceAllString(text, " ")

	// entities can be double-encoded
	for i := 0; i < 3; i++ {
		decoded := html.UnescapeString(text)
		if decoded == text {
			break
		}
		text = decoded
	}

	return strings.TrimSpace(c.whitespaceRegex.ReplaceAllString(text, " "))
}

// Truncate shortens text to maxLen runes, breaking at a word when possible
func (c *Cleaner) Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if maxLen <= 3 || len(runes) <= maxLen {
		return text
	}

	truncated := runes[:maxLen-3]
	for i := len(truncated) - 1; i >= maxLen/2; i-- {
		if unicode.IsSpace(truncated[i]) {
			truncated = truncated[:i]
			break
		}
	}
	return strings.TrimSpace(string(truncated)) + "..."
}
