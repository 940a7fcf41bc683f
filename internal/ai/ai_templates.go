package ai

import (
	"fmt"
	"strings"

	"github.com/shanehull/birthdaybot/internal/types"
)

const systemInstruction = `
# [INSTRUCTION]

You write birthday greetings on behalf of a small health clinic for its patients.

For every patient in the list, write one warm, professional greeting in Spanish of at most
two sentences. Address the patient by their first given name. Do not mention medical
conditions, treatments or appointments. Do not invent facts about the patient. If an age is
given you may mention it; otherwise do not guess one.

Return one entry per patient, with "name" copied exactly from the input.
`

func buildPrompt(records []types.BirthdayRecord) string {
	var sb strings.Builder
	sb.WriteString("Patients with birthdays:\n\n")
	for _, r := range records {
		if r.Age != "" {
			sb.WriteString(fmt.Sprintf("- %s (cumple %s, %s años)\n", r.Name, r.Birthday, r.Age))
		} else {
			sb.WriteString(fmt.Sprintf("- %s (cumple %s)\n", r.Name, r.Birthday))
		}
	}
	return sb.String()
}
