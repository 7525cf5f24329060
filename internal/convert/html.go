package convert

import (
	"bytes"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

var (
	htmlTagPattern   = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9]*)\b[^>]*>`)
	multipleNewlines = regexp.MustCompile(`\n{3,}`)
)

const htmlTagThreshold = 3

var unwantedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"meta":     true,
	"link":     true,
	"head":     true,
	"header":   true,
	"footer":   true,
	"nav":      true,
	"aside":    true,
	"iframe":   true,
	"svg":      true,
}

var contentIdentifiers = []string{
	"content", "main", "article", "post", "entry",
	"body-content", "page-content", "main-content",
}

// HTMLToMarkdown strips page chrome from input and converts the remaining
// content to Markdown.
func HTMLToMarkdown(input string) (string, error) {
	cleaned, err := preprocessHTML(input)
	if err != nil {
		cleaned = input
	}
	markdown, err := htmltomarkdown.ConvertString(cleaned)
	if err != nil {
		return "", err
	}
	markdown = multipleNewlines.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown) + "\n", nil
}

// LooksLikeHTML reports whether input is probably an HTML document.
func LooksLikeHTML(input string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if strings.HasPrefix(trimmed, "<!doctype html") || strings.HasPrefix(trimmed, "<html") {
		return true
	}
	tags := len(htmlTagPattern.FindAllString(input, htmlTagThreshold))
	if tags >= htmlTagThreshold {
		return true
	}
	return tags >= 2 && (strings.Contains(trimmed, "<body") || strings.Contains(trimmed, "<div"))
}

func preprocessHTML(input string) (string, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return input, err
	}

	content := findMainContent(doc)
	removeUnwantedNodes(content)

	var buf bytes.Buffer
	if err := html.Render(&buf, content); err != nil {
		return input, err
	}
	return buf.String(), nil
}

func removeUnwantedNodes(n *html.Node) {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		if child.Type == html.ElementNode && unwantedTags[child.Data] {
			n.RemoveChild(child)
		} else {
			removeUnwantedNodes(child)
		}
		child = next
	}
}

// findMainContent prefers <main>, then <article>, then an element whose id
// or class names content, then <body>.
func findMainContent(doc *html.Node) *html.Node {
	var mains, articles, identified, bodies []*html.Node
	var search func(n *html.Node)
	search = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "main":
				mains = append(mains, n)
			case "article":
				articles = append(articles, n)
			case "body":
				bodies = append(bodies, n)
			default:
				if hasContentIdentifier(n) {
					identified = append(identified, n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			search(c)
		}
	}
	search(doc)

	for _, group := range [][]*html.Node{mains, articles, identified, bodies} {
		if len(group) > 0 {
			return group[0]
		}
	}
	return doc
}

func hasContentIdentifier(n *html.Node) bool {
	for _, attr := range n.Attr {
		var values []string
		switch strings.ToLower(attr.Key) {
		case "id":
			values = []string{attr.Val}
		case "class":
			values = strings.Fields(attr.Val)
		default:
			continue
		}
		for _, v := range values {
			v = strings.ToLower(v)
			for _, id := range contentIdentifiers {
				if strings.Contains(v, id) {
					return true
				}
			}
		}
	}
	return false
}
