/*
Package dom provides small query helpers over parsed HTML documents: descendant search by
predicate, class/role/tag matching and rendered-text extraction.
*/
package dom

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Predicate reports whether an element node matches.
type Predicate func(n *html.Node) bool

var whitespaceRun = regexp.MustCompile(`[\n\t\r\s\xA0]+`)

// elements whose contents are never rendered as text
var unrendered = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// block-level elements break text the way a browser's innerText does
var blockTags = map[string]bool{
	"br": true, "div": true, "p": true, "li": true, "ul": true, "ol": true,
	"table": true, "thead": true, "tbody": true, "tfoot": true, "tr": true, "td": true, "th": true,
	"section": true, "article": true, "header": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// FindAll returns every element below root (root excluded) matching pred, in document order.
func FindAll(root *html.Node, pred Predicate) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)

	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && pred(c) {
				found = append(found, c)
			}
			walk(c)
		}
	}

	if root != nil {
		walk(root)
	}
	return found
}

// ClosestAncestor climbs from n's parent and returns the first element matching pred.
func ClosestAncestor(n *html.Node, pred Predicate) *html.Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && pred(p) {
			return p
		}
	}
	return nil
}

func Attr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func Tag(names ...string) Predicate {
	return func(n *html.Node) bool {
		for _, name := range names {
			if n.Data == name {
				return true
			}
		}
		return false
	}
}

// ClassContains matches elements whose class attribute contains any of subs as a substring,
// the same way a CSS [class*='x'] selector does.
func ClassContains(subs ...string) Predicate {
	return func(n *html.Node) bool {
		class := Attr(n, "class")
		if class == "" {
			return false
		}
		for _, s := range subs {
			if strings.Contains(class, s) {
				return true
			}
		}
		return false
	}
}

// ClassContainsFold is ClassContains ignoring case.
func ClassContainsFold(subs ...string) Predicate {
	return func(n *html.Node) bool {
		class := strings.ToLower(Attr(n, "class"))
		if class == "" {
			return false
		}
		for _, s := range subs {
			if strings.Contains(class, strings.ToLower(s)) {
				return true
			}
		}
		return false
	}
}

func Role(role string) Predicate {
	return func(n *html.Node) bool {
		return Attr(n, "role") == role
	}
}

func Any(preds ...Predicate) Predicate {
	return func(n *html.Node) bool {
		for _, p := range preds {
			if p(n) {
				return true
			}
		}
		return false
	}
}

// IsLeaf reports whether n has no element children.
func IsLeaf(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return false
		}
	}
	return true
}

// Text returns the rendered text of n and its descendants with whitespace runs collapsed
// to a single space and the ends trimmed.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	return collapse(extractText(n))
}

// OwnText returns only the text held directly by n's text children.
func OwnText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			sb.WriteByte(' ')
		}
	}
	return collapse(sb.String())
}

func extractText(n *html.Node) string {
	var extract func(*html.Node) string

	extract = func(n *html.Node) string {
		if n.Type == html.TextNode {
			return n.Data
		}
		if n.Type == html.ElementNode && (unrendered[n.Data] || hasAttr(n, "hidden")) {
			return ""
		}
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			sb.WriteString(extract(c))
			if c.Type == html.ElementNode && blockTags[c.Data] {
				sb.WriteByte(' ')
			}
		}
		return sb.String()
	}

	return extract(n)
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
