package telegram

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c)
	return tgbotapi.Message{}, s.err
}

func TestBot_DeliverText(t *testing.T) {
	rec := &recordingSender{}
	b := &Bot{sender: rec, logger: zap.NewNop()}

	b.deliver(&Reply{ChatID: 42, Text: "plain"})
	b.deliver(&Reply{ChatID: 42, Text: "<b>bold</b>", HTML: true})

	require.Len(t, rec.sent, 2)

	plain, ok := rec.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	require.Equal(t, int64(42), plain.ChatID)
	require.Equal(t, "plain", plain.Text)
	require.Empty(t, plain.ParseMode)

	html, ok := rec.sent[1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	require.Equal(t, tgbotapi.ModeHTML, html.ParseMode)
}

func TestBot_DeliverDocument(t *testing.T) {
	rec := &recordingSender{}
	b := &Bot{sender: rec, logger: zap.NewNop()}

	b.deliver(&Reply{ChatID: 7, Document: &Document{Name: "history.xlsx", Data: []byte("xlsx"), Caption: "история"}})

	require.Len(t, rec.sent, 1)
	doc, ok := rec.sent[0].(tgbotapi.DocumentConfig)
	require.True(t, ok)
	require.Equal(t, int64(7), doc.ChatID)
	require.Equal(t, "история", doc.Caption)
	require.Equal(t, tgbotapi.FileBytes{Name: "history.xlsx", Bytes: []byte("xlsx")}, doc.File)
}

func TestBot_DeliverSendErrorIsLogged(t *testing.T) {
	rec := &recordingSender{err: errors.New("forbidden")}
	b := &Bot{sender: rec, logger: zap.NewNop()}

	require.NotPanics(t, func() {
		b.deliver(&Reply{ChatID: 1, Text: "x"})
	})
	require.Len(t, rec.sent, 1)
}
