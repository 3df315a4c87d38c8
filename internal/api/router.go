package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	app "fitbalance-bot/internal/application"
	"fitbalance-bot/internal/container"
	"fitbalance-bot/internal/domain/entity"
	"fitbalance-bot/internal/metrics"
)

// Message входящее текстовое сообщение
type Message struct {
	UserID int64
	ChatID int64
	Text   string
}

// Document файл для отправки
type Document struct {
	Name    string
	Data    []byte
	Caption string
}

// Reply ответ пользователю
type Reply struct {
	ChatID   int64
	Text     string
	HTML     bool
	Document *Document
}

// Router превращает входящее сообщение в ответ
type Router struct {
	users   *app.UserService
	tracker *app.TrackerService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewRouter создаёт роутер поверх сервисов контейнера
func NewRouter(c *container.Container, m *metrics.Metrics, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		users:   c.UserService,
		tracker: c.TrackerService,
		metrics: m,
		logger:  logger,
	}
}

// Handle обрабатывает сообщение. nil означает, что отвечать не нужно.
func (r *Router) Handle(ctx context.Context, msg Message) *Reply {
	r.metrics.IncUpdate()
	defer r.refreshProfiles(ctx)

	if cmd, args, ok := parseCommand(msg.Text); ok {
		started := time.Now()
		reply := r.handleCommand(ctx, msg, cmd, args)
		r.metrics.ObserveCommand(metricCommand(cmd), started)
		return reply
	}

	return r.handleText(ctx, msg)
}

// handleCommand обрабатывает команды бота
func (r *Router) handleCommand(ctx context.Context, msg Message, cmd string, args []string) *Reply {
	switch cmd {
	case "start":
		return text(msg, msgStart)

	case "faq":
		return htmlText(msg, msgFAQ)

	case "set_profile":
		gender := entity.GenderUnknown
		if len(args) > 0 {
			gender = entity.ParseGender(strings.ToLower(args[0]))
		}
		if _, err := r.users.BeginSetup(ctx, msg.UserID, msg.ChatID, gender); err != nil {
			return r.internalError(msg, cmd, err)
		}
		return text(msg, msgAskWeight)

	case "cancel":
		res, err := r.users.Cancel(ctx, msg.UserID)
		if err != nil {
			return r.internalError(msg, cmd, err)
		}
		switch res {
		case app.CancelSetup:
			return text(msg, msgCancelledSetup)
		case app.CancelFood:
			return text(msg, msgCancelledFood)
		default:
			return text(msg, msgNothingToCancel)
		}

	case "log_water":
		res, err := r.tracker.LogWater(ctx, msg.UserID, args)
		if err != nil {
			return r.commandError(msg, cmd, err, msgBadWater)
		}
		return text(msg, formatWater(res))

	case "log_food":
		prompt, err := r.tracker.LogFood(ctx, msg.UserID, args)
		if err != nil {
			return r.foodError(msg, err)
		}
		return text(msg, formatFoodPrompt(prompt))

	case "log_workout":
		res, err := r.tracker.LogWorkout(ctx, msg.UserID, args)
		if err != nil {
			return r.commandError(msg, cmd, err, msgBadWorkout)
		}
		return text(msg, formatWorkout(res))

	case "check_progress":
		progress, err := r.tracker.Progress(ctx, msg.UserID)
		if err != nil {
			return r.commandError(msg, cmd, err, "")
		}
		return htmlText(msg, formatProgress(progress))

	case "recommend":
		rec, err := r.tracker.Recommend(ctx, msg.UserID)
		if err != nil {
			return r.commandError(msg, cmd, err, "")
		}
		return htmlText(msg, formatRecommendation(rec))

	case "export":
		data, err := r.tracker.Export(ctx, msg.UserID)
		if err != nil {
			return r.commandError(msg, cmd, err, "")
		}
		if data == nil {
			return text(msg, msgExportEmpty)
		}
		return &Reply{
			ChatID:   msg.ChatID,
			Document: &Document{Name: exportFileName, Data: data, Caption: msgExportCaption},
		}

	default:
		return text(msg, msgUnknownCommand)
	}
}

// handleText: сначала незавершённая настройка профиля, затем ожидание граммов, остальное игнорируется
func (r *Router) handleText(ctx context.Context, msg Message) *Reply {
	user, err := r.users.Get(ctx, msg.UserID)
	if errors.Is(err, entity.ErrProfileNotFound) {
		return nil
	}
	if err != nil {
		return r.internalError(msg, "text", err)
	}

	switch {
	case user.InSetup():
		return r.answerSetup(ctx, msg, user)
	case user.PendingFood != nil:
		return r.answerGrams(ctx, msg)
	default:
		return nil
	}
}

func (r *Router) answerSetup(ctx context.Context, msg Message, user *entity.User) *Reply {
	user, err := r.users.Answer(ctx, user, msg.Text)
	if err != nil {
		var fieldErr *entity.FieldError
		if errors.As(err, &fieldErr) {
			r.metrics.IncError(errorKind(err))
			if reply, ok := setupErrors[fieldErr.Field]; ok {
				return text(msg, reply)
			}
		}
		return r.internalError(msg, "setup", err)
	}

	if user.Active() {
		r.metrics.IncSetupCompleted()
		return htmlText(msg, formatProfileSaved(user))
	}
	return text(msg, setupPrompts[user.State])
}

func (r *Router) answerGrams(ctx context.Context, msg Message) *Reply {
	res, err := r.tracker.LogFoodQuantity(ctx, msg.UserID, msg.Text)
	if err != nil {
		if errors.Is(err, entity.ErrValidation) {
			r.metrics.IncError(errorKind(err))
			return text(msg, msgBadGrams)
		}
		return r.internalError(msg, "grams", err)
	}
	return text(msg, formatFoodLogged(res))
}

// commandError переводит ошибку команды в ответ. usage выводится при ошибке проверки ввода.
func (r *Router) commandError(msg Message, cmd string, err error, usage string) *Reply {
	switch {
	case errors.Is(err, entity.ErrProfileRequired):
		r.metrics.IncError(errorKind(err))
		return text(msg, msgProfileRequired)
	case errors.Is(err, entity.ErrValidation) && usage != "":
		r.metrics.IncError(errorKind(err))
		return text(msg, usage)
	default:
		return r.internalError(msg, cmd, err)
	}
}

func (r *Router) foodError(msg Message, err error) *Reply {
	kind := errorKind(err)
	switch kind {
	case "precondition":
		r.metrics.IncError(kind)
		return text(msg, msgProfileRequired)
	case "validation":
		r.metrics.IncError(kind)
		return text(msg, formatFoodError(msgNoProduct))
	case "not_found":
		r.metrics.IncError(kind)
		return text(msg, formatFoodError(msgProductNotFound))
	case "unavailable":
		r.metrics.IncError(kind)
		r.logger.Warn("food lookup unavailable", zap.Int64("user_id", msg.UserID), zap.Error(err))
		return text(msg, formatFoodError(msgProductUnavailable))
	default:
		return r.internalError(msg, "log_food", err)
	}
}

func (r *Router) internalError(msg Message, cmd string, err error) *Reply {
	r.metrics.IncError("internal")
	r.logger.Error("handler failed",
		zap.Int64("user_id", msg.UserID),
		zap.String("command", cmd),
		zap.Error(err),
	)
	return text(msg, msgInternalError)
}

func (r *Router) refreshProfiles(ctx context.Context) {
	if n, err := r.users.Count(ctx); err == nil {
		r.metrics.SetProfiles(n)
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, entity.ErrProfileRequired):
		return "precondition"
	case errors.Is(err, entity.ErrValidation):
		return "validation"
	case errors.Is(err, entity.ErrNotFound):
		return "not_found"
	case errors.Is(err, entity.ErrUnavailable):
		return "unavailable"
	default:
		return "internal"
	}
}

var knownCommands = map[string]bool{
	"start": true, "faq": true, "set_profile": true, "cancel": true,
	"log_water": true, "log_food": true, "log_workout": true,
	"check_progress": true, "recommend": true, "export": true,
}

// metricCommand ограничивает метки метрик известными командами
func metricCommand(cmd string) string {
	if knownCommands[cmd] {
		return cmd
	}
	return "unknown"
}

// parseCommand выделяет имя команды и аргументы. Суффикс @botname отбрасывается.
func parseCommand(s string) (cmd string, args []string, ok bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, false
	}

	cmd = strings.TrimPrefix(fields[0], "/")
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	return cmd, fields[1:], true
}

func text(msg Message, s string) *Reply {
	return &Reply{ChatID: msg.ChatID, Text: s}
}

func htmlText(msg Message, s string) *Reply {
	return &Reply{ChatID: msg.ChatID, Text: s, HTML: true}
}
