package accounts

import (
	goerrors "github.com/goliatone/go-errors"
)

// Message keys resolved by the locale package. Validation rules attach
// the Rule* keys to ozzo rules, conflict and state errors carry the
// TextCode* keys on rich errors. Both funnel into locale.Resolver.
const (
	// TextCodeError is the generic key for failures whose cause is not
	// leaked to the caller
	TextCodeError = "ERROR"

	TextCodeEmailAlreadyExists  = "EMAIL_ALREADY_EXIST"
	TextCodeMobileAlreadyExists = "MOBILE_ALREADY_EXIST"
	TextCodeInvalidCountry      = "INVALID_COUNTRY"
	TextCodeInvalidCity         = "INVALID_CITY"
	TextCodeTokenNotFound       = "EMAIL_ACTIVATION_TOKEN_NOT_FOUND"
	TextCodeAlreadyActivated    = "ACCOUNT_ALREADY_ACTIVATED"
	TextCodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
)

// Validation rule keys, one per named rule on the request payloads.
const (
	RuleFirstNameRequired = "FIRSTNAME_REQUIRED"
	RuleLastNameRequired  = "LASTNAME_REQUIRED"
	RuleEmailRequired     = "EMAIL_REQUIRED"
	RuleInvalidEmail      = "INVALID_EMAIL"
	RuleMobileRequired    = "MOBILE_REQUIRED"
	RuleInvalidMobile     = "INVALID_MOBILE"
	RuleStatusRequired    = "CUSTOMER_STATUS_REQUIRED"
	RuleInvalidStatus     = "INVALID_CUSTOMER_STATUS"
	RuleInvalidPhone      = "INVALID_PHONE"
	RuleTokenRequired     = "EMAIL_ACTIVATION_TOKEN_REQUIRED"
)

// ErrEmailAlreadyExists is returned when a customer with the draft's email exists
var ErrEmailAlreadyExists = goerrors.New("a customer with this email already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeEmailAlreadyExists)

// ErrMobileAlreadyExists is returned when a customer with the draft's mobile exists
var ErrMobileAlreadyExists = goerrors.New("a customer with this mobile number already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeMobileAlreadyExists)

// ErrInvalidCountry is returned when the country reference check fails
var ErrInvalidCountry = goerrors.New("country reference did not pass validation", goerrors.CategoryValidation).
	WithTextCode(TextCodeInvalidCountry)

// ErrInvalidCity is returned when the city reference check fails
var ErrInvalidCity = goerrors.New("city reference did not pass validation", goerrors.CategoryValidation).
	WithTextCode(TextCodeInvalidCity)

// ErrActivationTokenNotFound is returned for unknown or consumed activation tokens
var ErrActivationTokenNotFound = goerrors.New("email activation token not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeTokenNotFound)

// ErrAlreadyActivated is returned when credentials were already issued for the email
var ErrAlreadyActivated = goerrors.New("account has already been activated", goerrors.CategoryConflict).
	WithTextCode(TextCodeAlreadyActivated)

// ErrAccountNotFound is returned when no customer exists for the email
var ErrAccountNotFound = goerrors.New("account not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeAccountNotFound)

// ErrNoEmptyString is returned when hashing an empty password
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation)

// ErrMismatchedHashAndPassword is returned when a password does not match its hash
var ErrMismatchedHashAndPassword = goerrors.New("the credentials provided are invalid", goerrors.CategoryAuth)
