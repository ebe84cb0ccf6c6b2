package portal

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// labeledValue scans the document's text nodes in order for one matching
// pattern and returns the labeled value: the pattern's first capture group if
// it is non-empty, otherwise the next non-empty text node. Detail pages often
// render "PHONE:" as a label node followed by a sibling text node.
func labeledValue(doc *goquery.Document, pattern *regexp.Regexp) string {
	if len(doc.Nodes) == 0 {
		return ""
	}
	texts := textNodes(doc.Nodes[0])
	for i, text := range texts {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
		for j := i + 1; j < len(texts); j++ {
			if v := strings.TrimSpace(texts[j]); v != "" {
				return v
			}
		}
		return ""
	}
	return ""
}

// textNodes collects the document's text nodes in document order, skipping
// script and style content.
func textNodes(root *html.Node) []string {
	var texts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				texts = append(texts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(root)
	return texts
}
