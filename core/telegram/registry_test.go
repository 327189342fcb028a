package telegram

import (
	"testing"

	"github.com/gloudstoun/telegram-bot-project/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noopHandler(tele.Context) error { return nil }

func TestRegistryCommandLookup(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/registration", commands.Command{
		Handler:     noopHandler,
		Description: "Register a new user",
		Aliases:     []string{"register"},
	})

	key, cmd, ok := reg.LookupCommand("/registration")
	if !ok || key != "/registration" || cmd.Handler == nil {
		t.Fatalf("lookup by name failed: %v %v", key, ok)
	}
	if _, _, ok := reg.LookupCommand("register"); !ok {
		t.Fatal("lookup by alias failed")
	}
	if _, _, ok := reg.LookupCommand("/weather"); ok {
		t.Fatal("unexpected match for unknown command")
	}
}

func TestRegistryListCommandsHidesHidden(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/list", commands.Command{Handler: noopHandler, Description: "Show registered users"})
	reg.RegisterCommand("/cancel", commands.Command{Handler: noopHandler, Description: "Abort", Hidden: true})

	visible := reg.ListCommands(true)
	if len(visible) != 1 || visible[0].Text != "/list" {
		t.Fatalf("visible commands = %+v", visible)
	}
	all := reg.ListCommands(false)
	if len(all) != 2 {
		t.Fatalf("all commands = %+v", all)
	}
}

func TestRegistryCallbacks(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("show_users", noopHandler); err != nil {
		t.Fatalf("register callback: %v", err)
	}
	if _, ok := reg.GetCallback("show_users"); !ok {
		t.Fatal("callback not found after registration")
	}
	if _, ok := reg.GetCallback("weather"); ok {
		t.Fatal("unexpected callback match")
	}
	keys := reg.ListCallbacks()
	if len(keys) != 1 || keys[0] != "show_users" {
		t.Fatalf("callback keys = %v", keys)
	}
}
