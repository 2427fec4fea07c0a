package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// IsHTML sniffs whether intake text looks like an HTML document rather than
// plain extracted form text. FNOLs submitted through web forms or email
// arrive as HTML bodies.
func IsHTML(text string) bool {
	head := strings.ToLower(text)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<html") ||
		strings.Contains(head, "<!doctype html") ||
		strings.Contains(head, "<body")
}

// VisibleText extracts the visible text from an HTML intake body, skipping
// scripts, styles and embedded frames. Block-level elements become line
// breaks so the form structure survives for field capture.
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "p", "div", "br", "tr", "li", "table", "h1", "h2", "h3", "h4":
				buf.WriteString("\n")
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
	return buf.String(), nil
}
