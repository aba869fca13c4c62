package accounts

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// EmailTemplates fetches stored notification templates by type.
type EmailTemplates interface {
	GetByType(ctx context.Context, templateType EmailTemplateType) (*EmailTemplate, error)
	GetByTypeTx(ctx context.Context, tx bun.IDB, templateType EmailTemplateType) (*EmailTemplate, error)
}

type emailTemplates struct {
	db *bun.DB
}

var _ EmailTemplates = (*emailTemplates)(nil)

func NewEmailTemplatesRepository(db *bun.DB) EmailTemplates {
	return &emailTemplates{db: db}
}

func (r *emailTemplates) GetByType(ctx context.Context, templateType EmailTemplateType) (*EmailTemplate, error) {
	return r.GetByTypeTx(ctx, r.db, templateType)
}

func (r *emailTemplates) GetByTypeTx(ctx context.Context, tx bun.IDB, templateType EmailTemplateType) (*EmailTemplate, error) {
	record := &EmailTemplate{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.template_type = ?", templateType).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"template_type": templateType,
				})
		}
		return nil, err
	}

	return record, nil
}
