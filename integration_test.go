package accounts_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/goliatone/go-accounts"
	"github.com/goliatone/go-accounts/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	err = db.ResetModel(ctx,
		(*accounts.Customer)(nil),
		(*accounts.User)(nil),
		(*accounts.Country)(nil),
		(*accounts.City)(nil),
		(*accounts.EmailTemplate)(nil),
	)
	require.NoError(t, err)

	_, err = db.NewInsert().Model(&accounts.Country{ID: 1, Name: "Freedonia", Code: "FD"}).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewInsert().Model(&accounts.City{ID: 1, CountryID: 1, Name: "Fredonia City"}).Exec(ctx)
	require.NoError(t, err)

	return db
}

func TestAccountLifecycle(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	repo := accounts.NewRepositoryManager(db)
	repo.MustValidate()

	svc := accounts.NewService(repo, locale.MustNew(), accounts.WithBcryptCost(4))

	draft := accounts.CustomerDraft{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Mobile:    15551234567,
		Status:    accounts.CustomerStatusProspect,
	}

	reg := svc.Register(ctx, draft)
	require.True(t, reg.Status, "registration failed: %v", reg.Messages)
	require.NotNil(t, reg.Data)
	assert.Equal(t, accounts.CustomerStatusProspect, reg.Data.Status)
	assert.Nil(t, reg.Data.EmailActivationToken)

	token := reg.Secret()
	require.NotEmpty(t, token)

	// the same draft again trips the uniqueness checks
	dup := svc.Register(ctx, draft)
	require.False(t, dup.Status)
	assert.Equal(t, []string{"An account with this email already exists"}, dup.Messages)

	act := svc.Activate(ctx, accounts.AccountActivation{EmailActivationToken: token})
	require.True(t, act.Status, "activation failed: %v", act.Messages)
	require.NotNil(t, act.Data)
	assert.Equal(t, draft.Email, act.Data.Username)
	assert.Empty(t, act.Data.PasswordHash)

	password := act.Secret()
	require.NotEmpty(t, password)

	// the stored hash matches the password that was surfaced once
	stored, err := repo.Users().GetByUsername(ctx, draft.Email)
	require.NoError(t, err)
	assert.NoError(t, accounts.ComparePasswordAndHash(password, stored.PasswordHash))

	// the customer is flipped to activated and the token is consumed
	customer, err := repo.Customers().GetByEmail(ctx, draft.Email)
	require.NoError(t, err)
	assert.True(t, customer.IsActivated())
	assert.Nil(t, customer.EmailActivationToken)

	// the token is single use
	replay := svc.Activate(ctx, accounts.AccountActivation{EmailActivationToken: token})
	require.False(t, replay.Status)
	assert.Equal(t, []string{"Email activation token not found"}, replay.Messages)

	// resending after activation is a terminal failure
	resend := svc.ResendActivation(ctx, accounts.ResendEmailActivation{Email: draft.Email})
	require.False(t, resend.Status)
	assert.Equal(t, []string{"Account has already been activated"}, resend.Messages)
}

func TestAccountLifecycle_ResendRotatesToken(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	repo := accounts.NewRepositoryManager(db)
	svc := accounts.NewService(repo, locale.MustNew(), accounts.WithBcryptCost(4))

	reg := svc.Register(ctx, accounts.CustomerDraft{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Mobile:    15557654321,
		Status:    accounts.CustomerStatusProspect,
	})
	require.True(t, reg.Status, "registration failed: %v", reg.Messages)
	original := reg.Secret()

	resend := svc.ResendActivation(ctx, accounts.ResendEmailActivation{Email: "grace@example.com"})
	require.True(t, resend.Status, "resend failed: %v", resend.Messages)

	rotated := resend.Secret()
	require.NotEmpty(t, rotated)
	assert.NotEqual(t, original, rotated)

	// original token died with the rotation
	stale := svc.Activate(ctx, accounts.AccountActivation{EmailActivationToken: original})
	require.False(t, stale.Status)
	assert.Equal(t, []string{"Email activation token not found"}, stale.Messages)

	act := svc.Activate(ctx, accounts.AccountActivation{EmailActivationToken: rotated})
	require.True(t, act.Status, "activation failed: %v", act.Messages)
}

func TestAccountLifecycle_GeoReferences(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)

	repo := accounts.NewRepositoryManager(db)
	svc := accounts.NewService(repo, locale.MustNew())

	seeded := int64(1)
	unseeded := int64(999)

	draft := accounts.CustomerDraft{
		FirstName: "Alan",
		LastName:  "Turing",
		Email:     "alan@example.com",
		Mobile:    15550001111,
		Status:    accounts.CustomerStatusProspect,
		Country:   &seeded,
	}

	// a country present in the reference table fails the draft
	resp := svc.Register(ctx, draft)
	require.False(t, resp.Status)
	assert.Equal(t, []string{"Country is invalid"}, resp.Messages)

	draft.Country = &unseeded
	resp = svc.Register(ctx, draft)
	require.True(t, resp.Status, "registration failed: %v", resp.Messages)
}
