package accounts

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var RotateActivationTokenSQL = `UPDATE "customers" AS "cst"
SET
	"email_activation_token" = ?,
	"modified_on" = ?
WHERE
	"cst"."email" = ?
RETURNING *;`

var ClearActivationTokenSQL = `UPDATE "customers" AS "cst"
SET
	"email_activation_token" = NULL,
	"status" = ?,
	"modified_on" = ?
WHERE
	"cst"."id" = ?
RETURNING *;`

// Customers is the customer persistence contract the lifecycle flows
// consume. Absence is reported with repository.IsRecordNotFound; any
// other error is an infrastructure failure.
type Customers interface {
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Customer, error)
	GetByMobile(ctx context.Context, mobile int64) (*Customer, error)
	GetByMobileTx(ctx context.Context, tx bun.IDB, mobile int64) (*Customer, error)
	GetByActivationToken(ctx context.Context, token string) (*Customer, error)
	GetByActivationTokenTx(ctx context.Context, tx bun.IDB, token string) (*Customer, error)
	Create(ctx context.Context, record *Customer, criteria ...repository.InsertCriteria) (*Customer, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Customer, criteria ...repository.InsertCriteria) (*Customer, error)
	RotateActivationToken(ctx context.Context, email string) (*Customer, error)
	RotateActivationTokenTx(ctx context.Context, tx bun.IDB, email string) (*Customer, error)
	ClearActivationToken(ctx context.Context, id uuid.UUID) (*Customer, error)
	ClearActivationTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Customer, error)
}

type customers struct {
	repository.Repository[*Customer]
	db *bun.DB
}

var _ Customers = (*customers)(nil)

func NewCustomersRepository(db *bun.DB) Customers {
	repo := repository.NewRepository[*Customer](db, repository.ModelHandlers[*Customer]{
		NewRecord: func() *Customer { return &Customer{} },
		GetID: func(c *Customer) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Customer, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &customers{
		Repository: repo,
		db:         db,
	}
}

func (r *customers) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	return r.GetByEmailTx(ctx, r.db, email)
}

func (r *customers) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Customer, error) {
	return r.getByColumnTx(ctx, tx, "email", email)
}

func (r *customers) GetByMobile(ctx context.Context, mobile int64) (*Customer, error) {
	return r.GetByMobileTx(ctx, r.db, mobile)
}

func (r *customers) GetByMobileTx(ctx context.Context, tx bun.IDB, mobile int64) (*Customer, error) {
	return r.getByColumnTx(ctx, tx, "mobile", mobile)
}

func (r *customers) GetByActivationToken(ctx context.Context, token string) (*Customer, error) {
	return r.GetByActivationTokenTx(ctx, r.db, token)
}

func (r *customers) GetByActivationTokenTx(ctx context.Context, tx bun.IDB, token string) (*Customer, error) {
	return r.getByColumnTx(ctx, tx, "email_activation_token", token)
}

func (r *customers) getByColumnTx(ctx context.Context, tx bun.IDB, column string, value any) (*Customer, error) {
	record := &Customer{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias."+column+" = ?", value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					column: value,
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *customers) Create(ctx context.Context, record *Customer, criteria ...repository.InsertCriteria) (*Customer, error) {
	return r.CreateTx(ctx, r.db, record, criteria...)
}

func (r *customers) CreateTx(ctx context.Context, tx bun.IDB, record *Customer, criteria ...repository.InsertCriteria) (*Customer, error) {
	prepareCustomerDefaults(record)
	return r.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (r *customers) RotateActivationToken(ctx context.Context, email string) (*Customer, error) {
	return r.RotateActivationTokenTx(ctx, r.db, email)
}

// RotateActivationTokenTx replaces the customer's activation token with
// a fresh random value and returns the updated record.
func (r *customers) RotateActivationTokenTx(ctx context.Context, tx bun.IDB, email string) (*Customer, error) {
	token := uuid.NewString()
	res, err := r.Repository.RawTx(ctx, tx, RotateActivationTokenSQL, token, time.Now(), email)
	if err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"email": email,
			})
	}

	return res[0], nil
}

func (r *customers) ClearActivationToken(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return r.ClearActivationTokenTx(ctx, r.db, id)
}

// ClearActivationTokenTx consumes the customer's token and marks the
// customer activated. Called once per customer, from the activation
// flow, in the same transaction that creates the User.
func (r *customers) ClearActivationTokenTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Customer, error) {
	res, err := r.Repository.RawTx(ctx, tx, ClearActivationTokenSQL, CustomerStatusActivated, time.Now(), id.String())
	if err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return res[0], nil
}

func prepareCustomerDefaults(record *Customer) {
	if record == nil {
		return
	}

	if record.Status == "" {
		record.Status = CustomerStatusProspect
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
