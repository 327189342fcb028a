package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gloudstoun/telegram-bot-project/core/logger"
	"github.com/gloudstoun/telegram-bot-project/core/telegram/callbacks"
	tghelpers "github.com/gloudstoun/telegram-bot-project/core/telegram/helpers"
	"github.com/gloudstoun/telegram-bot-project/core/telegram/keyboard"
	"github.com/gloudstoun/telegram-bot-project/core/telegram/state"
	"github.com/gloudstoun/telegram-bot-project/registrybot/users"

	tele "gopkg.in/telebot.v4"
)

// Registration flow states.
const (
	StateAwaitingName     state.State = "registration_awaiting_name"
	StateAwaitingPassword state.State = "registration_awaiting_password"
)

// tempKeyName holds the validated name between the two prompt steps.
const tempKeyName = "registration_name"

func cancelMarkup() *tele.ReplyMarkup {
	return keyboard.SingleCancelMarkup(CallbackCancel)
}

// Registration starts the two-step flow: it prompts for a name and arms the FSM.
func (h *Handlers) Registration(c tele.Context) error {
	userID := c.Sender().ID
	h.fsm.Clear(userID)
	h.fsm.SetState(userID, StateAwaitingName)

	ctx := tghelpers.BuildContext(c)
	logger.Info(ctx, "flow.registration", "registration.start",
		slog.String("status", "ok"),
		slog.String("state", string(StateAwaitingName)),
	)
	return tghelpers.SendText(c, "Enter your name to register:", &tele.SendOptions{ReplyMarkup: cancelMarkup()})
}

// RegistrationCallback handles the inline "register" button.
func (h *Handlers) RegistrationCallback(c tele.Context) error {
	_ = c.Respond()
	return h.Registration(c)
}

// RegistrationName consumes the name step. Invalid or taken names re-prompt
// without leaving the state; a valid available name advances to the password step.
func (h *Handlers) RegistrationName(c tele.Context) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)
	name := strings.TrimSpace(c.Text())

	available, err := h.users.NameAvailable(ctx, name)
	switch {
	case errors.Is(err, users.ErrInvalidName):
		return tghelpers.SendText(c, "The name must be non-empty and contain letters only. Try again:", &tele.SendOptions{ReplyMarkup: cancelMarkup()})
	case err != nil:
		h.fsm.Clear(userID)
		return tghelpers.SendText(c, "Something went wrong, please try again later.")
	case !available:
		return tghelpers.SendText(c, "This name is already taken. Please enter a different name:", &tele.SendOptions{ReplyMarkup: cancelMarkup()})
	}

	h.fsm.SetTemp(userID, tempKeyName, name)
	h.fsm.SetState(userID, StateAwaitingPassword)
	logger.Info(ctx, "flow.registration", "registration.name",
		slog.String("status", "ok"),
		slog.String("state", string(StateAwaitingPassword)),
		slog.String("name", name),
	)
	return tghelpers.SendText(c, "Great! Now enter a password:", &tele.SendOptions{ReplyMarkup: cancelMarkup()})
}

// RegistrationPassword consumes the password step and completes the flow.
// Weak passwords re-prompt; a conflict lost to a concurrent registration or a
// store failure ends the flow with an explanatory message.
func (h *Handlers) RegistrationPassword(c tele.Context) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)
	password := strings.TrimSpace(c.Text())

	if !users.ValidPassword(password) {
		return tghelpers.SendText(c, "The password must be at least 8 characters long and contain letters and digits. Try again:", &tele.SendOptions{ReplyMarkup: cancelMarkup()})
	}

	name, ok := h.fsm.GetTempString(userID, tempKeyName)
	if !ok {
		// Session expired between steps; restart cleanly.
		h.fsm.Clear(userID)
		return tghelpers.SendText(c, "The registration session has expired. Start again with /registration.")
	}
	defer h.fsm.Clear(userID)

	err := h.users.Register(ctx, name, password)
	switch {
	case errors.Is(err, users.ErrNameTaken):
		return tghelpers.SendText(c, "This name is already taken. Please start the registration again with a different name: /registration")
	case err != nil:
		return tghelpers.SendText(c, "Something went wrong, please try again later.")
	}

	logger.Info(ctx, "flow.registration", "registration.done",
		slog.String("status", "ok"),
		slog.String("name", name),
	)
	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Show registered users", Unique: CallbackShowUsers},
	})
	return tghelpers.SendText(c, "You have been registered successfully!", &tele.SendOptions{ReplyMarkup: markup})
}

// Cancel aborts the flow from the /cancel command.
func (h *Handlers) Cancel(c tele.Context) error {
	userID := c.Sender().ID
	if !h.fsm.InProgress(userID) {
		return tghelpers.SendText(c, "Nothing to cancel.")
	}
	h.fsm.Clear(userID)
	return tghelpers.SendText(c, "Registration cancelled.")
}

// CancelCallback aborts the flow from the inline cancel button.
func (h *Handlers) CancelCallback(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "flow.registration", "registration.cancel",
		slog.String("status", "ok"),
		slog.String("cb_key", callbacks.CallbackKey(c)),
	)
	_ = c.Respond(&tele.CallbackResponse{Text: "Cancelled"})
	h.fsm.Clear(c.Sender().ID)
	return tghelpers.SendText(c, "Registration cancelled.")
}

// RegisterFSMHandlers binds flow states to their step handlers.
func (h *Handlers) RegisterFSMHandlers() {
	state.RegisterHandler(StateAwaitingName, h.RegistrationName)
	state.RegisterHandler(StateAwaitingPassword, h.RegistrationPassword)
}
