package accounts

import (
	"github.com/flosch/pongo2/v6"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-accounts/mailer"
)

// RenderEmailTemplate interpolates a stored template's HTML body with
// the given context and returns a deliverable message addressed to the
// recipient. Template placeholders use {{ name }} syntax; the account
// flows supply activationCode or userName/password.
func RenderEmailTemplate(tpl *EmailTemplate, to string, data map[string]any) (mailer.Message, error) {
	if tpl == nil {
		return mailer.Message{}, goerrors.New("email template is required", goerrors.CategoryBadInput)
	}

	t, err := pongo2.FromString(tpl.HTML)
	if err != nil {
		return mailer.Message{}, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse email template")
	}

	html, err := t.Execute(pongo2.Context(data))
	if err != nil {
		return mailer.Message{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to render email template")
	}

	return mailer.Message{
		From:    tpl.From,
		To:      to,
		Subject: tpl.Subject,
		Text:    tpl.Text,
		HTML:    html,
	}, nil
}
