package accounts

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// ResendEmailActivation is the ResendActivation input
type ResendEmailActivation struct {
	Email string `json:"email" form:"email"`
}

func (r ResendEmailActivation) Type() string { return "customer.resend_activation" }

// Validate will run validation rules
func (r ResendEmailActivation) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required.Error(RuleEmailRequired),
			is.Email.Error(RuleInvalidEmail),
		),
	)
}

// ResendActivation rotates the customer's activation token to a fresh
// value, invalidating the previous one. Only prospects qualify: a
// missing account or an already activated one is a terminal error.
// The new token is surfaced once in Messages[0]; Data is always null.
func (s *Service) ResendActivation(ctx context.Context, input ResendEmailActivation) Envelope[Void] {
	select {
	case <-ctx.Done():
		return fail[Void](s, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during activation resend",
		))
	default:
	}

	if err := input.Validate(); err != nil {
		return fail[Void](s, err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	var token string

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.repo.Customers().GetByEmailTx(ctx, tx, input.Email); err != nil {
			if repository.IsRecordNotFound(err) {
				return ErrAccountNotFound
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up customer")
		}

		if _, err := s.repo.Users().GetByUsernameTx(ctx, tx, input.Email); err == nil {
			return ErrAlreadyActivated
		} else if !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check existing credentials")
		}

		rotated, err := s.repo.Customers().RotateActivationTokenTx(ctx, tx, input.Email)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to rotate activation token")
		}

		if rotated.EmailActivationToken != nil {
			token = *rotated.EmailActivationToken
		}

		return nil
	})

	if err != nil {
		if !expected(err) {
			s.logger.Error("activation resend failed", "error", err)
		}
		return fail[Void](s, err)
	}

	return succeed[Void](nil, token)
}
