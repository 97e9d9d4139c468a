package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/totegamma/oairepo/internal/domain"
	"github.com/totegamma/oairepo/internal/infra/database/models"
)

type ItemSetRepository struct {
	db *gorm.DB
}

func NewItemSetRepository(db *gorm.DB) *ItemSetRepository {
	return &ItemSetRepository{db: db}
}

// ListItemSets returns the public item sets in id order.
func (r *ItemSetRepository) ListItemSets(ctx context.Context) ([]domain.ItemSet, error) {
	ctx, span := tracer.Start(ctx, "Repository.ItemSet.List")
	defer span.End()

	var sets []models.ItemSet
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("id").
		Find(&sets).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := make([]domain.ItemSet, 0, len(sets))
	for _, set := range sets {
		result = append(result, domain.ItemSet{
			ID:          set.ID,
			Title:       set.Title,
			Description: set.Description,
		})
	}
	return result, nil
}
