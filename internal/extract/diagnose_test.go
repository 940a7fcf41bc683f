package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnose(t *testing.T) {
	d := Diagnose(parse(t, birthdaysPage))

	assert.Equal(t, "HermessApp - Cumpleaños", d.Title)
	assert.Equal(t, 1, d.Tables)
	assert.Zero(t, d.Forms)
	assert.True(t, d.MentionsBirthdays)
	assert.NotEmpty(t, d.BirthdayMentions)
	assert.LessOrEqual(t, len(d.BirthdayMentions), maxMentions)
}

func TestDiagnoseLoginPage(t *testing.T) {
	d := Diagnose(parse(t, `<html><head><title>Login</title></head><body>
		<form action="/login"><input name="email"></form>
		<div class="data-panel">x</div></body></html>`))

	assert.Equal(t, "Login", d.Title)
	assert.Equal(t, 1, d.Forms)
	assert.Equal(t, 1, d.DataDivs)
	assert.False(t, d.MentionsBirthdays)
	assert.Empty(t, d.BirthdayMentions)
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("ñ", 120)
	assert.Equal(t, 100, len([]rune(truncate(long, 100))))
	assert.Equal(t, "corto", truncate("corto", 100))
}
