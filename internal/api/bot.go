package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// sender часть BotAPI, которой достаточно для отправки ответов
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot представляет Telegram-бота
type Bot struct {
	api    *tgbotapi.BotAPI
	sender sender
	router *Router
	logger *zap.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, debug bool, router *Router, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug

	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("authorized on account", zap.String("username", api.Self.UserName))

	return &Bot{
		api:    api,
		sender: api,
		router: router,
		logger: logger,
	}, nil
}

// Run запускает основной цикл обработки сообщений. Сообщения обрабатываются строго по очереди.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("stopping bot")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	reply := b.router.Handle(ctx, Message{
		UserID: msg.From.ID,
		ChatID: msg.Chat.ID,
		Text:   msg.Text,
	})
	if reply == nil {
		return
	}
	b.deliver(reply)
}

// deliver отправляет ответ: текст или документ
func (b *Bot) deliver(reply *Reply) {
	var c tgbotapi.Chattable
	if reply.Document != nil {
		doc := tgbotapi.NewDocument(reply.ChatID, tgbotapi.FileBytes{
			Name:  reply.Document.Name,
			Bytes: reply.Document.Data,
		})
		doc.Caption = reply.Document.Caption
		c = doc
	} else {
		msg := tgbotapi.NewMessage(reply.ChatID, reply.Text)
		if reply.HTML {
			msg.ParseMode = tgbotapi.ModeHTML
		}
		c = msg
	}

	if _, err := b.sender.Send(c); err != nil {
		b.logger.Error("error sending message", zap.Int64("chat_id", reply.ChatID), zap.Error(err))
	}
}
