package tokenstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/totegamma/oairepo/internal/domain"
	"github.com/totegamma/oairepo/internal/infra/database/models"
	"github.com/totegamma/oairepo/internal/usecase"
)

// Database keeps tokens in the resumption_tokens table so that they survive
// restarts and are shared between replicas.
type Database struct {
	db  *gorm.DB
	ids *idGenerator
	now func() time.Time
}

var _ usecase.TokenStore = (*Database)(nil)

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db, ids: newIDGenerator(), now: time.Now}
}

// WithClock replaces the time source used for expiry checks.
func (d *Database) WithClock(now func() time.Time) *Database {
	d.now = now
	return d
}

func (d *Database) Create(ctx context.Context, token domain.ResumptionToken) (string, error) {
	ctx, span := tracer.Start(ctx, "TokenStore.Database.Create")
	defer span.End()

	token.ID = d.ids.next()
	row := models.ResumptionToken{
		ID:               token.ID,
		Verb:             token.Verb,
		MetadataPrefix:   token.MetadataPrefix,
		Set:              token.Set,
		From:             token.From,
		Until:            token.Until,
		Cursor:           token.Cursor,
		CompleteListSize: token.CompleteListSize,
		After:            token.After,
		IssuedAt:         token.IssuedAt.UTC(),
		ExpiresAt:        token.ExpiresAt.UTC(),
	}
	if err := d.db.WithContext(ctx).Create(&row).Error; err != nil {
		span.RecordError(err)
		return "", err
	}
	return token.ID, nil
}

func (d *Database) Resolve(ctx context.Context, id string) (domain.ResumptionToken, error) {
	ctx, span := tracer.Start(ctx, "TokenStore.Database.Resolve")
	defer span.End()

	var row models.ResumptionToken
	err := d.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ResumptionToken{}, domain.ErrTokenNotFound
		}
		span.RecordError(err)
		return domain.ResumptionToken{}, err
	}

	token := domain.ResumptionToken{
		ID:               row.ID,
		Verb:             row.Verb,
		MetadataPrefix:   row.MetadataPrefix,
		Set:              row.Set,
		From:             row.From,
		Until:            row.Until,
		Cursor:           row.Cursor,
		CompleteListSize: row.CompleteListSize,
		After:            row.After,
		IssuedAt:         row.IssuedAt.UTC(),
		ExpiresAt:        row.ExpiresAt.UTC(),
	}
	if token.Expired(d.now()) {
		return domain.ResumptionToken{}, domain.ErrTokenExpired
	}
	return token, nil
}

func (d *Database) Expire(ctx context.Context, now time.Time) error {
	ctx, span := tracer.Start(ctx, "TokenStore.Database.Expire")
	defer span.End()

	err := d.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&models.ResumptionToken{}).Error
	if err != nil {
		span.RecordError(err)
	}
	return err
}
