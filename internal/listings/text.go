package listings

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors end a line of text when a description is pasted as HTML.
const blockSelectors = "p, div, li, ul, ol, h1, h2, h3, h4, h5, h6, tr, section, article, blockquote, pre"

// PlainText converts an HTML fragment into plain text, one block per line.
// Input without markup is returned trimmed.
func PlainText(s string) (string, error) {
	if !strings.Contains(s, "<") || !strings.Contains(s, ">") {
		return strings.TrimSpace(s), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelectors).AppendHtml("\n")

	return cleanLines(doc.Find("body").Text()), nil
}

// cleanLines collapses runs of whitespace inside each line and drops blank lines.
func cleanLines(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
