// Package accounts implements the customer account lifecycle: public
// registration, email-token activation, and activation resend, plus the
// localized error mapping that turns repository and validation failures
// into user facing messages.
//
// Account lifecycle:
//   - Register validates a CustomerDraft, checks email and mobile
//     uniqueness plus geographic references inside one transaction, and
//     persists a prospect Customer together with a fresh activation
//     token. The token is surfaced exactly once in the response envelope
//     so it can be mailed out, never in the stored record returned to
//     callers.
//   - Activate exchanges a token for login credentials: it creates the
//     User with a generated password, marks the customer activated, and
//     consumes the token so a replay reports it as not found.
//   - ResendActivation rotates the token for a prospect customer that
//     never finished activation.
//
// Responses:
//   - Every operation returns an Envelope rather than an error. Failures
//     carry localized messages resolved through the locale package;
//     callers inspect Status instead of unwrapping errors.
//
// Notifications:
//   - HTTP handlers render email templates through the mailer package on
//     a best-effort basis. Delivery failures are logged and never affect
//     the outcome of the account operation.
package accounts
