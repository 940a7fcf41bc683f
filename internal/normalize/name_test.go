package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"single token", "MARIA", "Maria"},
		{"two tokens", "PEREZ JUAN", "Juan Perez"},
		{"three tokens", "GARCIA LOPEZ JUAN", "Juan Garcia Lopez"},
		{"four tokens", "GARCIA LOPEZ JUAN CARLOS", "Juan Carlos Garcia Lopez"},
		{"five tokens with marker", "DE LA CRUZ ANA MARIA", "Ana Maria De La Cruz"},
		{"five tokens with mc marker", "MC DONALD SMITH JOHN PAUL", "John Paul Mc Donald Smith"},
		{"five tokens without marker", "GOMEZ RUIZ DIAZ ANA MARIA", "Ana Maria Gomez Ruiz Diaz"},
		{"six tokens composite", "DE LA OSSA TAMARA LUZ ANGELA", "Luz Angela De La Ossa Tamara"},
		{"six tokens del los", "DEL LOS RIOS PEREZ ANA SOFIA", "Ana Sofia Del Los Rios Perez"},
		{"six tokens even split", "GOMEZ RUIZ DIAZ ANA MARIA JOSE", "Ana Maria Jose Gomez Ruiz Diaz"},
		{"six tokens de without article", "DE OSSA TAMARA LUZ ANGELA MARIA", "Luz Angela Maria De Ossa Tamara"},
		{"seven tokens", "A B C D E F G", "D E F G A B C"},
		{"mixed case input", "garcía LÓPEZ juan", "Juan García López"},
		{"extra whitespace", "  PEREZ \t JUAN ", "Juan Perez"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Name(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReorder(t *testing.T) {
	t.Run("short input is returned as is", func(t *testing.T) {
		got, err := Reorder([]string{"ANA"})
		require.NoError(t, err)
		assert.Equal(t, []string{"ANA"}, got)
	})

	t.Run("marker lookup is case insensitive", func(t *testing.T) {
		got, err := Reorder([]string{"de", "la", "ossa", "tamara", "luz", "angela"})
		require.NoError(t, err)
		assert.Equal(t, []string{"luz", "angela", "de", "la", "ossa", "tamara"}, got)
	})

	t.Run("input is not modified", func(t *testing.T) {
		in := []string{"GARCIA", "LOPEZ", "JUAN"}
		_, err := Reorder(in)
		require.NoError(t, err)
		assert.Equal(t, []string{"GARCIA", "LOPEZ", "JUAN"}, in)
	})
}

func TestHalfSplit(t *testing.T) {
	assert.Equal(t, permutation{1, 0}, halfSplit(2))
	assert.Equal(t, permutation{1, 2, 0}, halfSplit(3))
	assert.Equal(t, permutation{3, 4, 5, 6, 0, 1, 2}, halfSplit(7))
	assert.Equal(t, permutation{4, 5, 6, 7, 0, 1, 2, 3}, halfSplit(8))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Ñuñez", titleCase("ÑUÑEZ"))
	assert.Equal(t, "O'brien", titleCase("O'BRIEN"))
	assert.Equal(t, "", titleCase(""))
}
