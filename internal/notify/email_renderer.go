package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// HTMLEmailRenderer renders the digest as an HTML email with a plain text fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
}

func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &HTMLEmailRenderer{tmpl: t}
}

type digestRow struct {
	Name     string
	Birthday string
	Age      string
	Phone    string
	Greeting string
}

type digestView struct {
	Count     int
	Source    string
	Date      string
	Timestamp string
	RunID     string
	Rows      []digestRow
}

func newDigestView(data NotificationData) digestView {
	meta := data.Payload.Metadata
	v := digestView{
		Count:     meta.RecordCount,
		Source:    meta.Source,
		Date:      dateOf(meta.ExtractionTimestamp),
		Timestamp: meta.ExtractionTimestamp,
		RunID:     data.RunID,
	}
	for _, r := range data.Payload.Records {
		v.Rows = append(v.Rows, digestRow{
			Name:     r.Name,
			Birthday: r.Birthday,
			Age:      r.Age,
			Phone:    r.Phone,
			Greeting: data.Greetings[r.Name],
		})
	}
	return v
}

func (r *HTMLEmailRenderer) Render(data NotificationData) (*RenderedMessage, error) {
	view := newDigestView(data)
	subject := fmt.Sprintf("Cumpleaños %s: %d pacientes", view.Date, view.Count)

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, view); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    renderPlainText(view),
		HTML:    htmlBuf.String(),
	}, nil
}

// renderPlainText produces a readable version for email clients that don't support HTML.
func renderPlainText(v digestView) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%d cumpleaños - %s %s\n", v.Count, v.Source, v.Date))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, row := range v.Rows {
		sb.WriteString(fmt.Sprintf("• %s - %s", row.Name, row.Birthday))
		if row.Age != "" {
			sb.WriteString(fmt.Sprintf(" (%s años)", row.Age))
		}
		if row.Phone != "" {
			sb.WriteString(fmt.Sprintf(" tel. %s", row.Phone))
		}
		sb.WriteString("\n")
		if row.Greeting != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", row.Greeting))
		}
	}

	sb.WriteString("\n" + strings.Repeat("-", 20) + "\n")
	sb.WriteString(fmt.Sprintf("Run %s\n", v.RunID))
	return sb.String()
}

// dateOf cuts an RFC 3339 timestamp down to its date.
func dateOf(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}
