package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/daypass-backend/internal/repo"
	"github.com/angelmondragon/daypass-backend/pkg/db/models"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

var upsertColumns = []string{
	"display_name",
	"description",
	"stock",
	"price_bracket_1",
	"price_bracket_2",
	"price_bracket_3",
	"price_bracket_4",
	"price_bracket_5",
	"price_bracket_6",
	"updated_at",
}

// Repository is the GORM-backed Store.
type Repository struct {
	repo.Base
	tx txRunner
}

// NewRepository builds a repository on conn; tx runs the multi-statement
// operations (activation, cascade delete).
func NewRepository(conn *gorm.DB, tx txRunner) *Repository {
	return &Repository{Base: repo.NewBase(conn), tx: tx}
}

func (r *Repository) ListBatches(ctx context.Context) ([]Batch, error) {
	var rows []models.Batch
	if err := r.DB(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Batch, 0, len(rows))
	for _, row := range rows {
		out = append(out, batchFromModel(row))
	}
	return out, nil
}

func (r *Repository) GetBatch(ctx context.Context, id uuid.UUID) (*Batch, error) {
	var row models.Batch
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	batch := batchFromModel(row)
	return &batch, nil
}

func (r *Repository) ActiveBatches(ctx context.Context) ([]Batch, error) {
	var rows []models.Batch
	if err := r.DB(ctx).
		Where("active = ?", true).
		Order("activated_at DESC NULLS LAST").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Batch, 0, len(rows))
	for _, row := range rows {
		out = append(out, batchFromModel(row))
	}
	return out, nil
}

func (r *Repository) CreateBatch(ctx context.Context, batch Batch) (*Batch, error) {
	row := batchToModel(batch)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := r.DB(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	created := batchFromModel(row)
	return &created, nil
}

// SetBatchActive flips the active flag. Activating a batch clears the flag on
// every other batch in the same transaction.
func (r *Repository) SetBatchActive(ctx context.Context, id uuid.UUID, active bool, at time.Time) (*Batch, error) {
	var row models.Batch
	err := r.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBatchNotFound
			}
			return err
		}

		if active {
			if err := tx.Model(&models.Batch{}).
				Where("id <> ? AND active = ?", id, true).
				Updates(map[string]any{"active": false, "activated_at": nil}).Error; err != nil {
				return err
			}
			activatedAt := at
			row.Active = true
			row.ActivatedAt = &activatedAt
		} else {
			row.Active = false
			row.ActivatedAt = nil
		}

		return tx.Model(&models.Batch{}).
			Where("id = ?", id).
			Updates(map[string]any{"active": row.Active, "activated_at": row.ActivatedAt}).Error
	})
	if err != nil {
		return nil, err
	}
	batch := batchFromModel(row)
	return &batch, nil
}

func (r *Repository) DeleteBatch(ctx context.Context, id uuid.UUID) error {
	return r.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("batch_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Batch{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBatchNotFound
		}
		return nil
	})
}

func (r *Repository) ListProducts(ctx context.Context, batchID uuid.UUID, key *Key) ([]Product, error) {
	query := r.DB(ctx).Where("batch_id = ?", batchID)
	if key != nil {
		query = query.Where("day = ? AND category = ?", key.Day, key.Category)
	}
	var rows []models.Product
	// M before F within a day
	if err := query.Order("day ASC").Order("category DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, productFromModel(row))
	}
	return out, nil
}

func (r *Repository) UpsertProduct(ctx context.Context, product Product) (*Product, error) {
	row := productToModel(product)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	conn := r.DB(ctx)
	if err := conn.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "batch_id"},
			{Name: "day"},
			{Name: "category"},
		},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(&row).Error; err != nil {
		return nil, err
	}

	var stored models.Product
	if err := conn.
		Where("batch_id = ? AND day = ? AND category = ?", row.BatchID, row.Day, row.Category).
		First(&stored).Error; err != nil {
		return nil, err
	}
	saved := productFromModel(stored)
	return &saved, nil
}
