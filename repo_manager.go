package accounts

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Customers() Customers
	Users() Users
	Geo() Geo
	EmailTemplates() EmailTemplates
}

type mngr struct {
	db             *bun.DB
	customers      Customers
	users          Users
	geo            Geo
	emailTemplates EmailTemplates
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:             db,
		customers:      NewCustomersRepository(db),
		users:          NewUsersRepository(db),
		geo:            NewGeoRepository(db),
		emailTemplates: NewEmailTemplatesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.customers == nil {
		return errors.New("repository customers should be initialized")
	}

	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.geo == nil {
		return errors.New("repository geo should be initialized")
	}

	if m.emailTemplates == nil {
		return errors.New("repository emailTemplates should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Customers() Customers {
	return m.customers
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Geo() Geo {
	return m.geo
}

func (m mngr) EmailTemplates() EmailTemplates {
	return m.emailTemplates
}
