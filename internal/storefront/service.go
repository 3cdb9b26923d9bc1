package storefront

import (
	"context"
	"fmt"

	"github.com/angelmondragon/daypass-backend/internal/catalog"
	"github.com/angelmondragon/daypass-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
	"github.com/angelmondragon/daypass-backend/pkg/logger"
)

const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeFailure  = "failure"
)

// Service serves the public catalog and prices buyer selections.
type Service interface {
	Catalog(ctx context.Context) (*CatalogView, error)
	Quote(ctx context.Context, items []pricing.Item) (*QuoteView, error)
}

type quoteRecorder interface {
	RecordQuote(outcome string, savings float64)
}

type ServiceParams struct {
	Store   catalog.ActiveReader
	Metrics quoteRecorder
	Logger  *logger.Logger
}

type service struct {
	store   catalog.ActiveReader
	metrics quoteRecorder
	logg    *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("catalog reader is required")
	}
	return &service{
		store:   params.Store,
		metrics: params.Metrics,
		logg:    params.Logger,
	}, nil
}

func (s *service) Catalog(ctx context.Context) (*CatalogView, error) {
	model, err := catalog.LoadActive(ctx, s.store)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active catalog")
	}
	view := newCatalogView(model)
	return &view, nil
}

// Quote prices items against the active batch. Items that select an
// unavailable entry are rejected before pricing.
func (s *service) Quote(ctx context.Context, items []pricing.Item) (*QuoteView, error) {
	sel, err := pricing.ParseSelection(items)
	if err != nil {
		s.record(outcomeRejected, 0)
		return nil, err
	}

	model, err := catalog.LoadActive(ctx, s.store)
	if err != nil {
		s.record(outcomeFailure, 0)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active catalog")
	}

	if unavailable := unavailableKeys(model, sel); len(unavailable) > 0 {
		s.record(outcomeRejected, 0)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selection includes unavailable passes").
			WithDetails(map[string]any{"unavailable": unavailable})
	}

	quote := pricing.Price(model, sel)
	view := &QuoteView{Quote: quote}
	if !model.IsEmpty() {
		id := model.BatchID()
		view.BatchID = &id
	}

	savings, _ := quote.Savings.Float64()
	s.record(outcomeSuccess, savings)
	if s.logg != nil && !sel.IsEmpty() {
		logCtx := s.logg.WithBatchID(ctx, model.BatchID().String())
		logCtx = s.logg.WithFields(logCtx, map[string]any{
			"selection":   sel.String(),
			"grand_total": quote.GrandTotal.String(),
		})
		s.logg.Debug(logCtx, "pricing.quote.computed")
	}
	return view, nil
}

func unavailableKeys(model *catalog.Model, sel pricing.Selection) []catalog.Key {
	out := []catalog.Key{}
	for _, key := range sel.Keys() {
		if !model.IsAvailable(key.Day, key.Category) {
			out = append(out, key)
		}
	}
	return out
}

func (s *service) record(outcome string, savings float64) {
	if s.metrics != nil {
		s.metrics.RecordQuote(outcome, savings)
	}
}
