package accounts

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-accounts/locale"
	goerrors "github.com/goliatone/go-errors"
)

// Service orchestrates the account lifecycle: Register, Activate and
// ResendActivation. Collaborators are injected through the
// constructor; the service keeps no mutable state of its own, so one
// instance serves concurrent requests.
type Service struct {
	repo           RepositoryManager
	locale         *locale.Resolver
	logger         Logger
	useHashids     bool
	bcryptCost     int
	passwordLength int
}

type ServiceOption func(*Service)

// WithServiceLogger replaces the default stdout logger.
func WithServiceLogger(logger Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHashidIDs derives customer IDs deterministically from the email
// instead of generating random UUIDs.
func WithHashidIDs() ServiceOption {
	return func(s *Service) {
		s.useHashids = true
	}
}

// WithPasswordLength overrides the generated password length.
func WithPasswordLength(length int) ServiceOption {
	return func(s *Service) {
		if length > 0 {
			s.passwordLength = length
		}
	}
}

// WithBcryptCost overrides the hashing cost for issued passwords.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		if cost > 0 {
			s.bcryptCost = cost
		}
	}
}

func NewService(repo RepositoryManager, resolver *locale.Resolver, opts ...ServiceOption) *Service {
	if repo == nil {
		panic("Missing RepositoryManager in accounts service...")
	}

	if resolver == nil {
		panic("Missing locale resolver in accounts service...")
	}

	s := &Service{
		repo:           repo,
		locale:         resolver,
		logger:         defLogger{},
		bcryptCost:     DefaultBcryptCost,
		passwordLength: DefaultPasswordLength,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// fail maps err to a failure envelope with localized messages. Errors
// that resolve to no message at all, infrastructure failures mostly,
// fall back to the generic ERROR entry so the cause never leaks.
func fail[T any](s *Service, err error) Envelope[T] {
	messages := s.locale.Messages(err)
	if len(messages) == 0 {
		if msg := s.locale.Message(TextCodeError); msg != "" {
			messages = []string{msg}
		}
	}
	return failed[T](messages)
}

// expected reports whether err is a named outcome of the flow rather
// than an infrastructure failure worth logging.
func expected(err error) bool {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode != "" && richErr.TextCode != TextCodeError
	}

	return false
}
