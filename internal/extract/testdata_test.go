package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/shanehull/birthdaybot/internal/dom"
)

const birthdaysPage = `<html><head><title>HermessApp - Cumpleaños</title></head><body>
<nav class="navbar-container"><a href="/">Inicio</a></nav>
<div class="overflow-x-auto">
  <h2>Pacientes que cumplen años hoy</h2>
  <table class="table">
    <thead><tr><th>Nombre</th><th>Cumpleaños</th><th>Teléfono</th><th>Edad</th></tr></thead>
    <tbody>
      <tr><td>Juan Perez</td><td>12/05</td><td>3001234567</td><td>34</td></tr>
      <tr><td>Ana Gomez</td><td>01/01</td><td></td><td>29</td></tr>
      <tr><td>Ana Gomez</td><td>01/01</td><td></td><td>29</td></tr>
      <tr><td>Fila</td><td>rota</td></tr>
    </tbody>
  </table>
</div>
</body></html>`

func parse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := dom.ParseString(src)
	require.NoError(t, err)
	return doc
}
