package accounts

import (
	"context"

	"github.com/uptrace/bun"
)

// Geo looks up the country and city reference tables. Read-only data,
// loaded out of band; the lifecycle flows only ever test existence.
type Geo interface {
	CountryExists(ctx context.Context, id int64) (bool, error)
	CountryExistsTx(ctx context.Context, tx bun.IDB, id int64) (bool, error)
	CityExists(ctx context.Context, countryID, id int64) (bool, error)
	CityExistsTx(ctx context.Context, tx bun.IDB, countryID, id int64) (bool, error)
}

type geo struct {
	db *bun.DB
}

var _ Geo = (*geo)(nil)

func NewGeoRepository(db *bun.DB) Geo {
	return &geo{db: db}
}

func (r *geo) CountryExists(ctx context.Context, id int64) (bool, error) {
	return r.CountryExistsTx(ctx, r.db, id)
}

func (r *geo) CountryExistsTx(ctx context.Context, tx bun.IDB, id int64) (bool, error) {
	return tx.NewSelect().
		Model((*Country)(nil)).
		Where("?TableAlias.id = ?", id).
		Exists(ctx)
}

func (r *geo) CityExists(ctx context.Context, countryID, id int64) (bool, error) {
	return r.CityExistsTx(ctx, r.db, countryID, id)
}

func (r *geo) CityExistsTx(ctx context.Context, tx bun.IDB, countryID, id int64) (bool, error) {
	return tx.NewSelect().
		Model((*City)(nil)).
		Where("?TableAlias.country_id = ?", countryID).
		Where("?TableAlias.id = ?", id).
		Exists(ctx)
}
