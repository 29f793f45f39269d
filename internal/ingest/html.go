package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// CleanText prepares a facility description for the extractor: markup from
// scraped sources is stripped down to visible text and whitespace collapsed.
// Plain text passes through unchanged apart from whitespace.
func CleanText(text string) string {
	if strings.ContainsRune(text, '<') {
		if stripped, ok := stripMarkup(text); ok {
			text = stripped
		}
	}
	return strings.Join(strings.Fields(text), " ")
}

func stripMarkup(raw string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return "", false
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return buf.String(), true
}
