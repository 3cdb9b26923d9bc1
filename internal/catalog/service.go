package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/daypass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
	"github.com/angelmondragon/daypass-backend/pkg/logger"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Service is the admin workflow over batches and their price matrices.
type Service interface {
	ListBatches(ctx context.Context) ([]Batch, error)
	CreateBatch(ctx context.Context, input CreateBatchInput) (*Batch, error)
	SetBatchActive(ctx context.Context, id uuid.UUID, active bool) (*Batch, error)
	DeleteBatch(ctx context.Context, id uuid.UUID) error
	LoadMatrix(ctx context.Context, id uuid.UUID) (*MatrixView, error)
	SaveProductMatrix(ctx context.Context, id uuid.UUID, entries []ProductInput) (*SaveResult, error)
}

type operationRecorder interface {
	RecordAdminOperation(operation, outcome string)
}

// ServiceParams bundles the dependencies of the admin service.
type ServiceParams struct {
	Store   Store
	Metrics operationRecorder
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	store   Store
	metrics operationRecorder
	logg    *logger.Logger
	now     func() time.Time
}

// NewService validates params and builds the admin service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("catalog store is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		store:   params.Store,
		metrics: params.Metrics,
		logg:    params.Logger,
		now:     now,
	}, nil
}

func (s *service) ListBatches(ctx context.Context) ([]Batch, error) {
	batches, err := s.store.ListBatches(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list batches")
	}
	return batches, nil
}

func (s *service) CreateBatch(ctx context.Context, input CreateBatchInput) (*Batch, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		s.record("create_batch", outcomeFailure)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "batch name is required").
			WithDetails(map[string]string{"name": "is required"})
	}

	batch := Batch{
		ID:          uuid.New(),
		Name:        name,
		Description: trimOptional(input.Description),
		Active:      false,
		CreatedAt:   s.now(),
	}
	created, err := s.store.CreateBatch(ctx, batch)
	if err != nil {
		s.record("create_batch", outcomeFailure)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create batch")
	}

	s.record("create_batch", outcomeSuccess)
	s.info(ctx, created.ID, "catalog.batch.created")
	return created, nil
}

func (s *service) SetBatchActive(ctx context.Context, id uuid.UUID, active bool) (*Batch, error) {
	op, event := "deactivate_batch", "catalog.batch.deactivated"
	if active {
		op, event = "activate_batch", "catalog.batch.activated"
	}

	batch, err := s.store.SetBatchActive(ctx, id, active, s.now())
	if err != nil {
		s.record(op, outcomeFailure)
		return nil, storeError(err, "set batch active")
	}

	s.record(op, outcomeSuccess)
	s.info(ctx, id, event)
	return batch, nil
}

func (s *service) DeleteBatch(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteBatch(ctx, id); err != nil {
		s.record("delete_batch", outcomeFailure)
		return storeError(err, "delete batch")
	}
	s.record("delete_batch", outcomeSuccess)
	s.info(ctx, id, "catalog.batch.deleted")
	return nil
}

func (s *service) LoadMatrix(ctx context.Context, id uuid.UUID) (*MatrixView, error) {
	batch, err := s.store.GetBatch(ctx, id)
	if err != nil {
		return nil, storeError(err, "load batch")
	}
	model, err := Load(ctx, s.store, *batch)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return &MatrixView{Batch: *batch, Products: model.Entries()}, nil
}

// SaveProductMatrix validates all twelve entries, then upserts them one by
// one in matrix order. The first failing upsert stops the save; rows written
// before it stay written.
func (s *service) SaveProductMatrix(ctx context.Context, id uuid.UUID, entries []ProductInput) (*SaveResult, error) {
	products, err := validateMatrix(id, entries)
	if err != nil {
		s.record("save_matrix", outcomeFailure)
		return nil, err
	}

	if _, err := s.store.GetBatch(ctx, id); err != nil {
		s.record("save_matrix", outcomeFailure)
		return nil, storeError(err, "load batch")
	}

	result := &SaveResult{
		BatchID:  id.String(),
		Products: make([]Product, 0, len(products)),
		Warnings: bracketWarnings(products),
	}

	for _, item := range products {
		saved, err := s.store.UpsertProduct(ctx, item.product)
		if err != nil {
			s.record("save_matrix", outcomeFailure)
			if s.logg != nil {
				logCtx := s.logg.WithBatchID(ctx, id.String())
				logCtx = s.logg.WithFields(logCtx, map[string]any{
					"day":      item.product.Day,
					"category": item.product.Category.String(),
					"saved":    result.Saved,
				})
				s.logg.Error(logCtx, "catalog.matrix.save_failed", err)
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("save product %s", item.product.Key)).
				WithDetails(map[string]any{
					"day":      item.product.Day,
					"category": item.product.Category,
					"index":    item.index,
					"saved":    result.Saved,
				})
		}
		result.Saved++
		result.Products = append(result.Products, *saved)
	}

	s.record("save_matrix", outcomeSuccess)
	s.info(ctx, id, "catalog.matrix.saved")
	return result, nil
}

type indexedProduct struct {
	index   int
	product Product
}

func validateMatrix(batchID uuid.UUID, entries []ProductInput) ([]indexedProduct, error) {
	if len(entries) != MatrixSize {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("expected %d products, got %d", MatrixSize, len(entries))).
			WithDetails(map[string]any{"products": fmt.Sprintf("must contain exactly %d entries", MatrixSize)})
	}

	details := map[string]string{}
	seen := make(map[Key]int, MatrixSize)
	out := make([]indexedProduct, 0, MatrixSize)
	for i, entry := range entries {
		field := fmt.Sprintf("products[%d]", i)
		category, catErr := enums.ParseCategory(string(entry.Category))
		key := Key{Day: entry.Day, Category: category}
		if catErr != nil || !key.Valid() {
			details[field] = "day must be 1..6 and category M or F"
			continue
		}
		if prev, dup := seen[key]; dup {
			details[field] = fmt.Sprintf("duplicates products[%d] (%s)", prev, key)
			continue
		}
		seen[key] = i
		if entry.Stock < 0 {
			details[field+".stock"] = "must be non-negative"
		} else if entry.Stock > MaxStock {
			details[field+".stock"] = fmt.Sprintf("must be at most %d", MaxStock)
		}
		brackets, err := BracketsFrom(entry.Brackets)
		if err != nil {
			details[field+".brackets"] = err.Error()
			continue
		}
		if err := brackets.Validate(); err != nil {
			details[field+".brackets"] = err.Error()
			continue
		}
		out = append(out, indexedProduct{
			index: i,
			product: Product{
				BatchID:     batchID,
				Key:         key,
				DisplayName: trimOptional(entry.DisplayName),
				Description: trimOptional(entry.Description),
				Stock:       entry.Stock,
				Brackets:    brackets,
			},
		})
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product matrix").WithDetails(details)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].product.Key.Index() < out[j].product.Key.Index()
	})
	return out, nil
}

func bracketWarnings(products []indexedProduct) []BracketWarning {
	warnings := []BracketWarning{}
	for _, item := range products {
		if !item.product.Brackets.NonIncreasing() {
			warnings = append(warnings, BracketWarning{
				Day:      item.product.Day,
				Category: item.product.Category,
				Message:  "brackets increase with more days; buyers may see negative savings",
			})
		}
	}
	return warnings
}

func storeError(err error, msg string) error {
	if errors.Is(err, ErrBatchNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "batch not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *service) record(operation, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordAdminOperation(operation, outcome)
	}
}

func (s *service) info(ctx context.Context, batchID uuid.UUID, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Info(s.logg.WithBatchID(ctx, batchID.String()), msg)
}
