package handlers

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gloudstoun/telegram-bot-project/core/logger"
	"github.com/gloudstoun/telegram-bot-project/core/telegram/format"
	tghelpers "github.com/gloudstoun/telegram-bot-project/core/telegram/helpers"
	"github.com/gloudstoun/telegram-bot-project/core/telegram/keyboard"
	"github.com/gloudstoun/telegram-bot-project/core/telegram/state"
	"github.com/gloudstoun/telegram-bot-project/core/telegram/ui"
	"github.com/gloudstoun/telegram-bot-project/registrybot/users"

	tele "gopkg.in/telebot.v4"
)

// Callback keys exposed on inline keyboards.
const (
	CallbackRegistration = "registration"
	CallbackShowUsers    = "show_users"
	CallbackCancel       = "registration_cancel"
)

// ContentOptions points at optional static assets sent by the bot.
type ContentOptions struct {
	Dir      string
	BotPhoto string
}

// Handlers binds chat commands and callbacks to the user service and FSM.
type Handlers struct {
	users   *users.Service
	fsm     state.Manager
	content ContentOptions
}

var _ ui.FallbackProvider = (*Handlers)(nil)

// New wires the handler set.
func New(svc *users.Service, fsm state.Manager, content ContentOptions) *Handlers {
	return &Handlers{users: svc, fsm: fsm, content: content}
}

func startMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Register a new user", Unique: CallbackRegistration},
		{Text: "Show registered users", Unique: CallbackShowUsers},
	})
}

// Start greets the sender and offers the registration menu.
// A missing bot photo is logged as a warning, never treated as a failure.
func (h *Handlers) Start(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	if h.content.Dir != "" && h.content.BotPhoto != "" {
		path := filepath.Join(h.content.Dir, h.content.BotPhoto)
		if _, err := os.Stat(path); err != nil {
			logger.Warn(ctx, "tg", "content.photo.missing",
				slog.String("status", "skip"),
				slog.String("path", path),
			)
		} else if err := tghelpers.SendPhoto(c, path); err != nil {
			logger.Warn(ctx, "tg", "content.photo.send",
				slog.String("status", "fail"),
				slog.String("err", err.Error()),
			)
		}
	}

	firstName := ""
	if sender := c.Sender(); sender != nil {
		firstName = sender.FirstName
	}
	greeting := fmt.Sprintf(
		"<b>Hi</b>, <em>%s</em>, <b>welcome to SimpleRegistryBot!</b>\nChoose an action:",
		format.EscapeHTML(firstName),
	)
	return tghelpers.SendHTML(c, greeting, startMenu())
}

// Help lists the available commands.
func (h *Handlers) Help(c tele.Context) error {
	text := strings.Join([]string{
		"<b>Available commands:</b>",
		"",
		"/start - greeting and action menu",
		"/help - this message",
		"/registration - register a new user",
		"/list - show registered users",
		"/cancel - abort the current registration",
	}, "\n")
	return tghelpers.SendHTML(c, text)
}

// List replies with all registered accounts in insertion order.
func (h *Handlers) List(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	list, err := h.users.Users(ctx)
	if err != nil {
		return tghelpers.SendText(c, "Something went wrong, please try again later.")
	}
	if len(list) == 0 {
		return tghelpers.SendText(c, "No users are registered yet.")
	}

	var b strings.Builder
	b.WriteString("Registered users:\n\n")
	for _, u := range list {
		fmt.Fprintf(&b, "ID: %d, Name: %s\n", u.ID, u.Name)
	}
	logger.Info(ctx, "tg", "users.shown",
		slog.String("status", "ok"),
		slog.Int("users", len(list)),
	)
	return tghelpers.SendText(c, b.String())
}

// ShowUsersCallback handles the inline "show users" button.
func (h *Handlers) ShowUsersCallback(c tele.Context) error {
	_ = c.Respond(&tele.CallbackResponse{Text: "Loading the list..."})
	return h.List(c)
}

// UnknownText hints at /help for text that matches no command or flow.
func (h *Handlers) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, "I did not understand that. Try /help.")
	}
}

// UnknownDocument rejects stray documents outside any flow.
func (h *Handlers) UnknownDocument() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendText(c, "I only work with text commands. Try /help.")
	}
}

// UnknownCallback answers inline buttons that map to no registered action.
func (h *Handlers) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
	}
}
