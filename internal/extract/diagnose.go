package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/shanehull/birthdaybot/internal/dom"
)

// Diagnostics summarises page structure to help when the container heuristics miss.
type Diagnostics struct {
	Title             string
	BirthdayMentions  []string
	Forms             int
	Tables            int
	DataDivs          int
	MentionsBirthdays bool
}

var diagnosticKeywords = []string{"cumpleaños", "cumpleañeros", "birthday"}

const maxMentions = 3

func Diagnose(doc *html.Node) Diagnostics {
	var d Diagnostics

	if titles := dom.FindAll(doc, dom.Tag("title")); len(titles) > 0 {
		d.Title = dom.OwnText(titles[0])
	}

	mentions := dom.FindAll(doc, func(n *html.Node) bool {
		return containsAny(strings.ToLower(dom.OwnText(n)), diagnosticKeywords)
	})
	for i, m := range mentions {
		if i == maxMentions {
			break
		}
		d.BirthdayMentions = append(d.BirthdayMentions, truncate(dom.Text(m), 100))
	}

	d.Forms = len(dom.FindAll(doc, dom.Tag("form")))
	d.Tables = len(dom.FindAll(doc, dom.Tag("table")))
	d.DataDivs = len(dom.FindAll(doc, func(n *html.Node) bool {
		return n.Data == "div" && dom.ClassContains("data", "list", "table")(n)
	}))

	var sb strings.Builder
	_ = html.Render(&sb, doc)
	d.MentionsBirthdays = containsAny(strings.ToLower(sb.String()), birthdayKeywords)

	return d
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
