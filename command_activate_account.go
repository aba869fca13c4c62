package accounts

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// AccountActivation is the Activate input
type AccountActivation struct {
	EmailActivationToken string `json:"email_activation_token" form:"email_activation_token"`
}

func (a AccountActivation) Type() string { return "customer.activate" }

// Validate will run validation rules
func (a AccountActivation) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(
			&a.EmailActivationToken,
			validation.Required.Error(RuleTokenRequired),
		),
	)
}

// Activate consumes an activation token and issues credentials: it
// generates a random password, stores its hash on a new User linked to
// the customer, clears the token and marks the customer activated, all
// in one transaction. The token is single use; once consumed, a repeat
// call fails with token-not-found.
//
// The plaintext password exists only in Messages[0]; Data carries the
// created User with the hash stripped.
func (s *Service) Activate(ctx context.Context, input AccountActivation) Envelope[*User] {
	select {
	case <-ctx.Done():
		return fail[*User](s, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account activation",
		))
	default:
	}

	if err := input.Validate(); err != nil {
		return fail[*User](s, err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	var created *User
	var password string

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		customer, err := s.repo.Customers().GetByActivationTokenTx(ctx, tx, input.EmailActivationToken)
		if err != nil {
			if repository.IsRecordNotFound(err) {
				return ErrActivationTokenNotFound
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up activation token")
		}

		if _, err := s.repo.Users().GetByUsernameTx(ctx, tx, customer.Email); err == nil {
			return ErrAlreadyActivated
		} else if !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check existing credentials")
		}

		if password, err = GeneratePassword(s.passwordLength); err != nil {
			return err
		}

		hash, err := HashPasswordCost(password, s.bcryptCost)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		now := time.Now()
		user := &User{
			CustomerID:   customer.ID,
			Username:     customer.Email,
			PasswordHash: hash,
			Status:       UserStatusActive,
			ActivatedOn:  &now,
		}

		if created, err = s.repo.Users().CreateTx(ctx, tx, user); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
		}

		if _, err := s.repo.Customers().ClearActivationTokenTx(ctx, tx, customer.ID); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to consume activation token")
		}

		return nil
	})

	if err != nil {
		if !expected(err) {
			s.logger.Error("account activation failed", "error", err)
		}
		return fail[*User](s, err)
	}

	created.PasswordHash = ""

	return succeed(created, password)
}
