package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// VisibleText returns the human-readable text of an HTML document with
// scripts and styles removed and whitespace collapsed.
func VisibleText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return CollapseSpace(html)
	}

	doc.Find("script, style, noscript, template, svg").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	return CollapseSpace(root.Text())
}

// CollapseSpace trims s and folds every whitespace run into one space
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate returns at most n characters (runes) of s
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
