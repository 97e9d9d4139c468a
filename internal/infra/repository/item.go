package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/totegamma/oairepo/internal/domain"
	"github.com/totegamma/oairepo/internal/infra/database/models"
)

var tracer = otel.Tracer("repository")

// ItemRepository reads public items and their values from the database.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Find(ctx context.Context, id int64) (domain.Item, error) {
	ctx, span := tracer.Start(ctx, "Repository.Item.Find", trace.WithAttributes(attribute.Int64("id", id)))
	defer span.End()

	var item models.Item
	err := preload(r.db.WithContext(ctx)).
		Where("id = ? AND is_public = ?", id, true).
		Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Item{}, domain.NotFoundError{Resource: "item"}
		}
		span.RecordError(err)
		return domain.Item{}, err
	}

	return toDomainItem(item)
}

func (r *ItemRepository) List(ctx context.Context, filter domain.ListFilter, limit int) ([]domain.Item, error) {
	ctx, span := tracer.Start(ctx, "Repository.Item.List", trace.WithAttributes(
		attribute.Int64("after", filter.After),
		attribute.Int("limit", limit),
	))
	defer span.End()

	var items []models.Item
	err := preload(scope(r.db.WithContext(ctx), filter)).
		Where("items.id > ?", filter.After).
		Order("items.id").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := make([]domain.Item, 0, len(items))
	for _, item := range items {
		d, err := toDomainItem(item)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}

func (r *ItemRepository) Count(ctx context.Context, filter domain.ListFilter) (int, error) {
	ctx, span := tracer.Start(ctx, "Repository.Item.Count")
	defer span.End()

	var count int64
	err := scope(r.db.WithContext(ctx).Model(&models.Item{}), filter).Count(&count).Error
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return int(count), nil
}

func (r *ItemRepository) Earliest(ctx context.Context) (time.Time, error) {
	ctx, span := tracer.Start(ctx, "Repository.Item.Earliest")
	defer span.End()

	var item models.Item
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("modified").
		Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, domain.NotFoundError{Resource: "item"}
		}
		span.RecordError(err)
		return time.Time{}, err
	}
	return item.Modified.UTC(), nil
}

// scope applies the visibility and selective harvesting conditions.
func scope(db *gorm.DB, filter domain.ListFilter) *gorm.DB {
	db = db.Where("items.is_public = ?", true)
	if filter.From != nil {
		db = db.Where("items.modified >= ?", filter.From.UTC())
	}
	if filter.Until != nil {
		db = db.Where("items.modified < ?", filter.Until.UTC())
	}
	if filter.ItemSets != nil {
		if len(filter.ItemSets) == 0 {
			return db.Where("1 = 0")
		}
		members := db.Session(&gorm.Session{NewDB: true}).
			Table("item_item_sets").
			Select("item_id").
			Where("item_set_id IN ?", filter.ItemSets)
		db = db.Where("items.id IN (?)", members)
	}
	return db
}

func preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Values", func(db *gorm.DB) *gorm.DB {
			return db.Order("term, position, id")
		}).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_public = ?", true).Order("position, id")
		}).
		Preload("ItemSets", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_public = ?", true).Order("id")
		}).
		Preload("Thumbnail")
}

func toDomainItem(item models.Item) (domain.Item, error) {
	d := domain.Item{
		ID:       item.ID,
		Modified: item.Modified.UTC(),
		Values:   map[string][]domain.Value{},
	}

	for _, set := range item.ItemSets {
		d.ItemSets = append(d.ItemSets, set.ID)
	}

	for _, v := range item.Values {
		value := domain.Value{
			Type:          domain.ValueType(v.Type),
			Text:          v.Text,
			URI:           v.URI,
			Lang:          v.Lang,
			ResourceTitle: v.ResourceTitle,
		}
		if v.Annotation != "" {
			if err := json.Unmarshal([]byte(v.Annotation), &value.Annotation); err != nil {
				return domain.Item{}, err
			}
		}
		d.Values[v.Term] = append(d.Values[v.Term], value)
	}

	for _, m := range item.Media {
		media := domain.Media{
			ID:          m.ID,
			Ingester:    m.Ingester,
			OriginalURL: m.OriginalURL,
			MediaType:   m.MediaType,
		}
		if m.ThumbnailURLs != "" {
			if err := json.Unmarshal([]byte(m.ThumbnailURLs), &media.ThumbnailURLs); err != nil {
				return domain.Item{}, err
			}
		}
		if m.Data != "" {
			if err := json.Unmarshal([]byte(m.Data), &media.Data); err != nil {
				return domain.Item{}, err
			}
		}
		d.Media = append(d.Media, media)
	}

	if item.Thumbnail != nil {
		d.Thumbnail = &domain.Asset{
			ID:       item.Thumbnail.ID,
			AssetURL: item.Thumbnail.AssetURL,
		}
	}

	return d, nil
}
