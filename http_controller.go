package accounts

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"

	"github.com/goliatone/go-accounts/locale"
	"github.com/goliatone/go-accounts/mailer"
)

// AccountControllerRoutes are the paths the controller registers.
type AccountControllerRoutes struct {
	Base             string
	Register         string
	Activate         string
	ResendActivation string
}

// AccountController is the thin HTTP glue over the account service:
// bind, run the operation, trigger the notification, strip secrets,
// reply with the envelope. It owns no business rules.
type AccountController struct {
	Debug   bool
	Logger  Logger
	Service *Service
	Repo    RepositoryManager
	Mailer  mailer.Sender
	Locale  *locale.Resolver
	Routes  *AccountControllerRoutes
}

type AccountControllerOption func(*AccountController) *AccountController

func WithControllerLogger(logger Logger) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithControllerDebug(debug bool) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Debug = debug
		return c
	}
}

func WithControllerService(svc *Service) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Service = svc
		return c
	}
}

func WithControllerRepo(repo RepositoryManager) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Repo = repo
		return c
	}
}

func WithControllerMailer(sender mailer.Sender) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Mailer = sender
		return c
	}
}

func WithControllerLocale(resolver *locale.Resolver) AccountControllerOption {
	return func(c *AccountController) *AccountController {
		c.Locale = resolver
		return c
	}
}

func NewAccountController(opts ...AccountControllerOption) *AccountController {
	c := &AccountController{
		Logger: defLogger{},
		Routes: &AccountControllerRoutes{
			Base:             "/api/account",
			Register:         "/register",
			Activate:         "/activate",
			ResendActivation: "/resendEmailActivation",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing Service in account controller...")
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in account controller...")
	}

	if c.Mailer == nil {
		panic("Missing mailer.Sender in account controller...")
	}

	if c.Locale == nil {
		panic("Missing locale resolver in account controller...")
	}

	return c
}

// RegisterAccountRoutes mounts the three account endpoints on app.
func RegisterAccountRoutes(app *fiber.App, opts ...AccountControllerOption) *AccountController {
	controller := NewAccountController(opts...)

	group := app.Group(controller.Routes.Base)
	group.Post(controller.Routes.Register, controller.RegisterCreate)
	group.Post(controller.Routes.Activate, controller.ActivatePost)
	group.Post(controller.Routes.ResendActivation, controller.ResendActivationPost)

	return controller
}

func (a *AccountController) RegisterCreate(c *fiber.Ctx) error {
	draft := new(CustomerDraft)
	if err := c.BodyParser(draft); err != nil {
		return a.badRequest(c)
	}

	if a.Debug {
		fmt.Println("======= ACCOUNT REGISTER ======")
		fmt.Println(print.MaybePrettyJSON(draft))
		fmt.Println("===============================")
	}

	resp := a.Service.Register(c.UserContext(), *draft)
	if !resp.Status {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}

	a.notify(c.UserContext(), EmailTemplateRegistration, draft.Email, map[string]any{
		"activationCode": resp.Secret(),
	})

	resp.ConsumeSecret()
	return c.JSON(resp)
}

func (a *AccountController) ActivatePost(c *fiber.Ctx) error {
	payload := new(AccountActivation)
	if err := c.BodyParser(payload); err != nil {
		return a.badRequest(c)
	}

	resp := a.Service.Activate(c.UserContext(), *payload)
	if !resp.Status {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}

	a.notify(c.UserContext(), EmailTemplateActivation, resp.Data.Username, map[string]any{
		"userName": resp.Data.Username,
		"password": resp.Secret(),
	})

	resp.ConsumeSecret()
	return c.JSON(resp)
}

func (a *AccountController) ResendActivationPost(c *fiber.Ctx) error {
	payload := new(ResendEmailActivation)
	if err := c.BodyParser(payload); err != nil {
		return a.badRequest(c)
	}

	resp := a.Service.ResendActivation(c.UserContext(), *payload)
	if !resp.Status {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}

	a.notify(c.UserContext(), EmailTemplateRegistration, payload.Email, map[string]any{
		"activationCode": resp.Secret(),
	})

	resp.ConsumeSecret()
	return c.JSON(resp)
}

// notify performs the best effort delivery step: fetch the stored
// template, render it with the secret, send. Failures are logged and
// swallowed, the committed state change stands either way.
func (a *AccountController) notify(ctx context.Context, templateType EmailTemplateType, to string, data map[string]any) {
	tpl, err := a.Repo.EmailTemplates().GetByType(ctx, templateType)
	if err != nil {
		a.Logger.Error("failed to load email template", "type", templateType, "error", err)
		return
	}

	msg, err := RenderEmailTemplate(tpl, to, data)
	if err != nil {
		a.Logger.Error("failed to render email template", "type", templateType, "error", err)
		return
	}

	if err := a.Mailer.Send(ctx, msg); err != nil {
		a.Logger.Error("failed to deliver notification", "to", to, "error", err)
	}
}

func (a *AccountController) badRequest(c *fiber.Ctx) error {
	messages := []string{}
	if msg := a.Locale.Message(TextCodeError); msg != "" {
		messages = append(messages, msg)
	}

	return c.Status(fiber.StatusBadRequest).JSON(Envelope[Void]{
		Status:   false,
		Messages: messages,
	})
}
