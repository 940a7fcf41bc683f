package extract

import (
	"golang.org/x/net/html"

	"github.com/shanehull/birthdaybot/internal/dom"
	"github.com/shanehull/birthdaybot/internal/types"
)

// minCells is the fewest non-empty cells a data row can have (name, date, age).
const minCells = 3

var (
	rowMarkers         = dom.Any(dom.Tag("tr"), dom.Role("row"), dom.ClassContains("row"))
	fallbackRowMarkers = dom.ClassContains("item", "entry", "data")
	cellMarkers        = dom.Any(dom.Tag("td"), dom.Role("cell"), dom.ClassContains("cell"))
)

// Tokenized is the tokenizer output for one container.
type Tokenized struct {
	Rows []types.RawRow
	// Found counts candidate rows before short rows were dropped.
	Found int
	// Short holds the position, among candidate rows, of each dropped row.
	Short []int
}

// RowNodes returns the row elements of container, preferring native row markers.
func RowNodes(container *html.Node) []*html.Node {
	rows := dom.FindAll(container, rowMarkers)
	if len(rows) == 0 {
		rows = dom.FindAll(container, fallbackRowMarkers)
	}
	return rows
}

// CellTexts returns the trimmed, non-empty cell texts of a row. Native cell markers are
// used when present, otherwise any text-bearing leaf element.
func CellTexts(row *html.Node) []string {
	cells := dom.FindAll(row, cellMarkers)
	if len(cells) == 0 {
		cells = dom.FindAll(row, dom.IsLeaf)
	}

	var texts []string
	for _, c := range cells {
		if t := dom.Text(c); t != "" {
			texts = append(texts, t)
		}
	}
	return texts
}

// Tokenize splits a container into rows of cell tokens, silently dropping rows with fewer
// than three non-empty cells.
func Tokenize(container *html.Node) Tokenized {
	nodes := RowNodes(container)
	out := Tokenized{Found: len(nodes)}

	for i, n := range nodes {
		texts := CellTexts(n)
		if len(texts) < minCells {
			out.Short = append(out.Short, i)
			continue
		}
		out.Rows = append(out.Rows, types.RawRow(texts))
	}
	return out
}
