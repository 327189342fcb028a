package registrybot

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/gloudstoun/telegram-bot-project/core/bootstrap"
	coretelegram "github.com/gloudstoun/telegram-bot-project/core/telegram"
	"github.com/gloudstoun/telegram-bot-project/core/telegram/commands"
	"github.com/gloudstoun/telegram-bot-project/core/telegram/router"
	"github.com/gloudstoun/telegram-bot-project/core/telegram/state"
	"github.com/gloudstoun/telegram-bot-project/registrybot/handlers"
	"github.com/gloudstoun/telegram-bot-project/registrybot/users"
)

// App holds the wired registry bot: services, FSM, and the handler registry.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	registry *coretelegram.Registry
	fsm      state.Manager
	handlers *handlers.Handlers
}

// Bootstrap initializes the logger, database, and migrations, then wires
// the user service, FSM handlers, commands, and callbacks.
func Bootstrap(cfg *Config) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	svc := users.NewService(users.NewRepository(res.DB))

	ttl := time.Duration(cfg.Registration.SessionTTLMinutes) * time.Minute
	fsm := state.NewMemoryManagerTTL(ttl)

	h := handlers.New(svc, fsm, handlers.ContentOptions{
		Dir:      cfg.Content.Dir,
		BotPhoto: cfg.Content.BotPhoto,
	})
	h.RegisterFSMHandlers()

	reg := coretelegram.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Greeting and action menu",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     h.Help,
		Description: "Show available commands",
	})
	reg.RegisterCommand("/registration", commands.Command{
		Handler:     h.Registration,
		Description: "Register a new user",
	})
	reg.RegisterCommand("/list", commands.Command{
		Handler:     h.List,
		Description: "Show registered users",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     h.Cancel,
		Description: "Abort the current registration",
		Hidden:      true,
	})

	_ = reg.RegisterCallback(handlers.CallbackRegistration, h.RegistrationCallback)
	_ = reg.RegisterCallback(handlers.CallbackShowUsers, h.ShowUsersCallback)
	_ = reg.RegisterCallback(handlers.CallbackCancel, h.CancelCallback)
	reg.SetCallbackNotFound(h.UnknownCallback())
	reg.SetTextFallback(h.UnknownText())

	return &App{
		cfg:      cfg,
		db:       res.DB,
		registry: reg,
		fsm:      fsm,
		handlers: h,
	}, nil
}

// TelegramRunOptions assembles middleware and routes for the core runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	mws := coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), nil)
	mws = append(mws, coretelegram.Middleware{
		Name: "session",
		Use:  state.WithSession(a.fsm),
	})

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(a.fsm, a.registry, router.TextOptions{
		UnknownText:     a.handlers.UnknownText(),
		UnknownDocument: a.handlers.UnknownDocument(),
	})...)
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{
		NotFound: a.handlers.UnknownCallback(),
	}))

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    a.registry,
		Middlewares: mws,
		Routes:      routes,
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			return a.db.Close()
		},
	}, nil
}
