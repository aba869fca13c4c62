package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-logger/glog"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/goliatone/go-accounts"
	"github.com/goliatone/go-accounts/locale"
	"github.com/goliatone/go-accounts/mailer"
)

type config struct {
	Port        string
	Debug       bool
	DBDriver    string
	DBDSN       string
	DBBootstrap bool

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPTLS  bool

	MailerSendAPIKey string
	EmailFrom        string
	EmailFromName    string
}

func loadConfig() config {
	// Missing .env files are fine, the environment may be set by the runtime.
	_ = godotenv.Load(fmt.Sprintf(".env.%s", envName()))
	_ = godotenv.Load()

	return config{
		Port:        getenv("API_PORT", "8572"),
		Debug:       getenvBool("DEBUG", false),
		DBDriver:    getenv("DB_DRIVER", "sqlite"),
		DBDSN:       getenv("DB_DSN", "file::memory:?cache=shared"),
		DBBootstrap: getenvBool("DB_BOOTSTRAP", true),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getenvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASSWORD"),
		SMTPTLS:  getenvBool("SMTP_TLS", false),

		MailerSendAPIKey: os.Getenv("MAILERSEND_API_KEY"),
		EmailFrom:        getenv("EMAIL_FROM", "no-reply@example.com"),
		EmailFromName:    getenv("EMAIL_FROM_NAME", "Accounts"),
	}
}

func envName() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}

func getenv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getenvBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	out, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return out
}

func getenvInt(key string, def int) int {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	out, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return out
}

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("serverd"),
		glog.WithAddSource(false),
	)

	cfg := loadConfig()
	ctx := context.Background()

	db, err := openDB(cfg)
	if err != nil {
		lgr.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DBBootstrap {
		if err := bootstrapSchema(ctx, db); err != nil {
			lgr.Error("failed to bootstrap schema", "error", err)
			os.Exit(1)
		}
	}

	repo := accounts.NewRepositoryManager(db)
	repo.MustValidate()

	resolver := locale.MustNew()

	svc := accounts.NewService(repo, resolver,
		accounts.WithServiceLogger(lgr.GetLogger("accounts")),
	)

	app := fiber.New(fiber.Config{
		AppName: "go-accounts",
	})

	accounts.RegisterAccountRoutes(app,
		accounts.WithControllerService(svc),
		accounts.WithControllerRepo(repo),
		accounts.WithControllerMailer(newMailer(cfg, lgr)),
		accounts.WithControllerLocale(resolver),
		accounts.WithControllerLogger(lgr.GetLogger("http")),
		accounts.WithControllerDebug(cfg.Debug),
	)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			lgr.Error("server stopped", "error", err)
		}
	}()

	lgr.Info("accounts server listening", "port", cfg.Port)

	waitExitSignal()

	if err := app.Shutdown(); err != nil {
		lgr.Error("failed to shut down cleanly", "error", err)
	}
}

func openDB(cfg config) (*bun.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DBDSN)))
		return bun.NewDB(sqldb, pgdialect.New()), nil
	case "sqlite":
		sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("unknown DB driver %q", cfg.DBDriver)
	}
}

// bootstrapSchema creates the tables and the default notification
// templates. Development convenience only, production schemas are
// managed with migrations.
func bootstrapSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*accounts.Customer)(nil),
		(*accounts.User)(nil),
		(*accounts.Country)(nil),
		(*accounts.City)(nil),
		(*accounts.EmailTemplate)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}

	templates := []*accounts.EmailTemplate{
		{
			Type:    accounts.EmailTemplateRegistration,
			From:    getenv("EMAIL_FROM", "no-reply@example.com"),
			Subject: "Activate your account",
			Text:    "Use the activation code from this email to activate your account.",
			HTML:    `<p>Welcome! Use this code to activate your account: <strong>{{ activationCode }}</strong></p>`,
		},
		{
			Type:    accounts.EmailTemplateActivation,
			From:    getenv("EMAIL_FROM", "no-reply@example.com"),
			Subject: "Your account is ready",
			Text:    "Your account has been activated.",
			HTML:    `<p>Hi {{ userName }}, your account is active. Your password is <strong>{{ password }}</strong>, change it after your first login.</p>`,
		},
	}

	for _, tpl := range templates {
		_, err := db.NewInsert().
			Model(tpl).
			On("CONFLICT (template_type) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

func newMailer(cfg config, lgr *glog.BaseLogger) mailer.Sender {
	if cfg.MailerSendAPIKey != "" {
		return mailer.NewMailerSend(cfg.MailerSendAPIKey, cfg.EmailFromName, cfg.EmailFrom)
	}

	if cfg.SMTPHost != "" {
		return mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPTLS)
	}

	return mailer.NewDev(lgr.GetLogger("mailer"))
}

func waitExitSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
