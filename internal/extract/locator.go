package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/shanehull/birthdaybot/internal/dom"
)

// Keywords whose presence marks a container as the birthday table.
var containerKeywords = []string{"cumpleaños", "cumpleañeros", "fecha", "edad", "nombre"}

// Keywords looked for in an element's own text when no container matches.
var birthdayKeywords = []string{"cumpleaños", "cumpleañeros"}

// Candidate selector classes, highest priority first.
var containerSelectors = []dom.Predicate{
	dom.Tag("table"),
	dom.ClassContains("table"),
	dom.Role("table"),
	dom.ClassContains("list"),
	dom.ClassContains("overflow"),
	dom.ClassContains("container"),
}

// Class names on this path are matched case-insensitively.
var fallbackAncestor = dom.ClassContainsFold("container", "table", "list")

// Candidate is a container hypothesis together with its aggregate text.
type Candidate struct {
	Node *html.Node
	Text string
}

// Candidates lists every container candidate in selector-priority order, then document
// order. A node matched by several selectors appears once per selector.
func Candidates(doc *html.Node) []Candidate {
	var out []Candidate
	for _, sel := range containerSelectors {
		for _, n := range dom.FindAll(doc, sel) {
			out = append(out, Candidate{Node: n, Text: dom.Text(n)})
		}
	}
	return out
}

// ContainsBirthdayData reports whether text mentions any container keyword.
func ContainsBirthdayData(text string) bool {
	return containsAny(strings.ToLower(text), containerKeywords)
}

// SelectContainer returns the first candidate whose text contains a container keyword.
func SelectContainer(candidates []Candidate) (*html.Node, bool) {
	for _, c := range candidates {
		if ContainsBirthdayData(c.Text) {
			return c.Node, true
		}
	}
	return nil, false
}

// LocateContainer finds the element most likely to hold the birthday table.
func LocateContainer(doc *html.Node) (*html.Node, error) {
	for _, sel := range containerSelectors {
		for _, n := range dom.FindAll(doc, sel) {
			if ContainsBirthdayData(dom.Text(n)) {
				return n, nil
			}
		}
	}

	if n := locateByBirthdayText(doc); n != nil {
		return n, nil
	}
	return nil, ErrContainerNotFound
}

// locateByBirthdayText climbs from an element mentioning birthdays to its nearest
// container/table/list ancestor.
func locateByBirthdayText(doc *html.Node) *html.Node {
	mentions := dom.FindAll(doc, func(n *html.Node) bool {
		return containsAny(strings.ToLower(dom.OwnText(n)), birthdayKeywords)
	})

	for _, m := range mentions {
		ancestor := dom.ClosestAncestor(m, fallbackAncestor)
		if ancestor == nil {
			continue
		}
		// the mention may sit in unrendered markup
		if ContainsBirthdayData(dom.Text(ancestor)) {
			return ancestor
		}
	}
	return nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
