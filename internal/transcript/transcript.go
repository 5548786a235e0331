// Package transcript renders chat logs as PDF documents and shares them
// through object storage.
package transcript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/oklog/ulid/v2"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
)

// Title heads every transcript.
const Title = "Recipe Chatbot: Chat History"

// ContentType of rendered transcripts.
const ContentType = "application/pdf"

// ErrSharingDisabled is returned by Share when no object store is configured.
var ErrSharingDisabled = errors.New("transcript sharing is not configured")

// Render lays out msgs in display order, one paragraph per message.
func Render(msgs []model.ChatMessage) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetCreator("recipe-chatbot", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(msgs) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, "No messages.", "", "L", false)
	}

	for _, m := range msgs {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, speaker(m.Type), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(m.Text), "", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render transcript: %w", err)
	}
	return buf.Bytes(), nil
}

func speaker(t model.MessageType) string {
	if t == model.MessageUser {
		return "You:"
	}
	return "Bot:"
}

// ObjectStore is the storage a Sharer uploads to.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	PresignGet(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// Sharer publishes transcripts behind short-lived links.
type Sharer struct {
	objects ObjectStore
	ttl     time.Duration
}

// NewSharer creates a Sharer. A nil store disables sharing.
func NewSharer(objects ObjectStore, ttl time.Duration) *Sharer {
	return &Sharer{objects: objects, ttl: ttl}
}

// Enabled reports whether Share can succeed.
func (s *Sharer) Enabled() bool {
	return s != nil && s.objects != nil
}

// Share renders msgs, uploads the PDF and returns a presigned download URL.
func (s *Sharer) Share(ctx context.Context, sessionID string, msgs []model.ChatMessage) (string, error) {
	if !s.Enabled() {
		return "", ErrSharingDisabled
	}

	doc, err := Render(msgs)
	if err != nil {
		return "", err
	}

	key := ObjectKey(sessionID, ulid.Make())
	if err := s.objects.Put(ctx, key, ContentType, doc); err != nil {
		return "", err
	}
	return s.objects.PresignGet(ctx, key, s.ttl)
}

// ObjectKey is where a transcript of sessionID is stored.
func ObjectKey(sessionID string, id ulid.ULID) string {
	return fmt.Sprintf("transcripts/%s/%s.pdf", sessionID, id)
}
