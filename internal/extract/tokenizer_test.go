package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanehull/birthdaybot/internal/dom"
	"github.com/shanehull/birthdaybot/internal/types"
)

func TestTokenize(t *testing.T) {
	t.Run("table rows", func(t *testing.T) {
		container, err := LocateContainer(parse(t, birthdaysPage))
		require.NoError(t, err)

		tok := Tokenize(container)
		assert.Equal(t, 5, tok.Found)
		assert.Equal(t, []int{4}, tok.Short)
		assert.Equal(t, []types.RawRow{
			{"Nombre", "Cumpleaños", "Teléfono", "Edad"},
			{"Juan Perez", "12/05", "3001234567", "34"},
			{"Ana Gomez", "01/01", "29"},
			{"Ana Gomez", "01/01", "29"},
		}, tok.Rows)
	})

	t.Run("aria rows and cells", func(t *testing.T) {
		container := dom.FindAll(parse(t, `<div role="table">
			<div role="row"><span role="cell">PEREZ JUAN</span><span role="cell"> 12/05 </span><span role="cell">34</span></div>
			<div role="row"><span role="cell">solo</span></div>
		</div>`), dom.Role("table"))[0]

		tok := Tokenize(container)
		assert.Equal(t, 2, tok.Found)
		assert.Equal(t, []types.RawRow{{"PEREZ JUAN", "12/05", "34"}}, tok.Rows)
	})

	t.Run("fallback rows and leaf cells", func(t *testing.T) {
		container := dom.FindAll(parse(t, `<ul class="list">
			<li class="entry"><b>GOMEZ ANA</b><i>01/01</i><em>29</em><span> </span></li>
		</ul>`), dom.Tag("ul"))[0]

		tok := Tokenize(container)
		assert.Equal(t, 1, tok.Found)
		assert.Equal(t, []types.RawRow{{"GOMEZ ANA", "01/01", "29"}}, tok.Rows)
		assert.Empty(t, tok.Short)
	})

	t.Run("no rows", func(t *testing.T) {
		container := dom.FindAll(parse(t, `<div class="container"><p>nada</p></div>`), dom.Tag("div"))[0]
		tok := Tokenize(container)
		assert.Zero(t, tok.Found)
		assert.Empty(t, tok.Rows)
	})
}
