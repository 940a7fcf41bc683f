package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const page = `<html><head><title>Pacientes</title><style>.x{}</style></head><body>
<div class="main-container" role="region">
  <p>Hola <b>Ju</b>an</p>
  <ul class="list">
    <li class="row-item">uno</li>
    <li class="row-item" hidden>oculto</li>
  </ul>
  <script>var cumpleaños = 1;</script>
  <table><tr><td>a</td><td>  b
  c </td></tr></table>
</div>
</body></html>`

func mustParse(t *testing.T) *html.Node {
	t.Helper()
	doc, err := ParseString(page)
	require.NoError(t, err)
	return doc
}

func TestFindAll(t *testing.T) {
	doc := mustParse(t)

	t.Run("document order", func(t *testing.T) {
		cells := FindAll(doc, Tag("td"))
		require.Len(t, cells, 2)
		assert.Equal(t, "a", Text(cells[0]))
		assert.Equal(t, "b c", Text(cells[1]))
	})

	t.Run("root is excluded", func(t *testing.T) {
		table := FindAll(doc, Tag("table"))[0]
		assert.Empty(t, FindAll(table, Tag("table")))
	})

	t.Run("nil root", func(t *testing.T) {
		assert.Nil(t, FindAll(nil, Tag("div")))
	})
}

func TestPredicates(t *testing.T) {
	doc := mustParse(t)

	assert.Len(t, FindAll(doc, ClassContains("container")), 1)
	assert.Len(t, FindAll(doc, ClassContains("row")), 2)
	assert.Len(t, FindAll(doc, ClassContains("nope", "list")), 1)
	assert.Len(t, FindAll(doc, ClassContains("CONTAINER")), 0)
	assert.Len(t, FindAll(doc, ClassContainsFold("CONTAINER")), 1)
	assert.Len(t, FindAll(doc, Role("region")), 1)
	assert.Len(t, FindAll(doc, Any(Tag("ul"), Role("region"))), 2)
}

func TestClosestAncestor(t *testing.T) {
	doc := mustParse(t)
	li := FindAll(doc, Tag("li"))[0]

	got := ClosestAncestor(li, ClassContains("container", "list"))
	require.NotNil(t, got)
	assert.Equal(t, "ul", got.Data)

	assert.Nil(t, ClosestAncestor(li, Tag("section")))
	assert.Nil(t, ClosestAncestor(nil, Tag("div")))
}

func TestText(t *testing.T) {
	doc := mustParse(t)
	container := FindAll(doc, ClassContains("container"))[0]

	text := Text(container)
	assert.Contains(t, text, "Hola Juan")
	assert.Contains(t, text, "uno")
	assert.NotContains(t, text, "oculto")
	assert.NotContains(t, text, "cumpleaños")
	assert.NotContains(t, Text(doc), ".x{}")
}

func TestOwnText(t *testing.T) {
	doc := mustParse(t)
	p := FindAll(doc, Tag("p"))[0]
	assert.Equal(t, "Hola an", OwnText(p))
}

func TestIsLeaf(t *testing.T) {
	doc := mustParse(t)
	assert.True(t, IsLeaf(FindAll(doc, Tag("td"))[0]))
	assert.False(t, IsLeaf(FindAll(doc, Tag("tr"))[0]))
}
