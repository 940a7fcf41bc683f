/*
Package notify reports a finished run on the console and, when SMTP is configured, as an
email digest of the day's birthdays.
*/
package notify

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/shanehull/birthdaybot/internal/types"
)

// NotificationData is everything a digest is rendered from.
type NotificationData struct {
	RunID     string
	Payload   types.RunPayload
	Greetings map[string]string
}

type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

type Renderer interface {
	Render(data NotificationData) (*RenderedMessage, error)
}

type Sender interface {
	Send(msg *RenderedMessage) error
}

// GreetingSource supplies optional per-patient greetings keyed by name.
type GreetingSource interface {
	Greetings(ctx context.Context, records []types.BirthdayRecord) (map[string]string, error)
}

// Digest renders and sends the run digest.
type Digest struct {
	renderer Renderer
	sender   Sender
	greeter  GreetingSource
	logger   *zap.Logger
}

// NewDigest wires a digest. greeter may be nil.
func NewDigest(renderer Renderer, sender Sender, greeter GreetingSource, logger *zap.Logger) *Digest {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Digest{renderer: renderer, sender: sender, greeter: greeter, logger: logger}
}

// Send renders the payload and mails it. A greeting failure only drops the greetings.
func (d *Digest) Send(ctx context.Context, runID string, p types.RunPayload) error {
	data := NotificationData{RunID: runID, Payload: p}

	if d.greeter != nil {
		greetings, err := d.greeter.Greetings(ctx, p.Records)
		if err != nil {
			d.logger.Warn("Greeting generation failed, sending digest without greetings", zap.Error(err))
		} else {
			data.Greetings = greetings
		}
	}

	msg, err := d.renderer.Render(data)
	if err != nil {
		return fmt.Errorf("failed to render digest: %w", err)
	}
	if err := d.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}
	return nil
}

// PreviewCount is how many records ReportRun lists.
const PreviewCount = 3

// ReportRun prints the end-of-run summary.
func ReportRun(w io.Writer, records []types.BirthdayRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "\n❌ El bot no pudo completar la tarea")
		return
	}

	fmt.Fprintln(w, "\n🎉 Bot ejecutado exitosamente!")
	fmt.Fprintf(w, "📊 Total de registros extraídos: %d\n", len(records))
	fmt.Fprintf(w, "\n📋 Primeros %d registros:\n", PreviewCount)

	for i, r := range records {
		if i == PreviewCount {
			break
		}
		fmt.Fprintf(w, "  %d. %s - %s (%s años)\n", i+1, r.Name, r.Birthday, r.Age)
	}
}
