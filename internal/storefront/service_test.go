package storefront

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/daypass-backend/internal/catalog"
	"github.com/angelmondragon/daypass-backend/internal/pricing"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
)

type stubReader struct {
	batches   []catalog.Batch
	products  []catalog.Product
	activeErr error
	listCalls int
}

func (s *stubReader) ActiveBatches(ctx context.Context) ([]catalog.Batch, error) {
	return s.batches, s.activeErr
}

func (s *stubReader) ListProducts(ctx context.Context, batchID uuid.UUID, key *catalog.Key) ([]catalog.Product, error) {
	s.listCalls++
	out := []catalog.Product{}
	for _, p := range s.products {
		if p.BatchID == batchID {
			out = append(out, p)
		}
	}
	return out, nil
}

type quoteCall struct {
	outcome string
	savings float64
}

type stubQuoteRecorder struct {
	calls []quoteCall
}

func (s *stubQuoteRecorder) RecordQuote(outcome string, savings float64) {
	if s == nil {
		return
	}
	s.calls = append(s.calls, quoteCall{outcome, savings})
}

func standardBrackets() catalog.Brackets {
	var b catalog.Brackets
	for i, v := range []int64{100, 90, 80, 70, 60, 50} {
		b[i] = decimal.NewFromInt(v)
	}
	return b
}

// activeReader returns a reader with one active batch where every entry has
// stock except day 6/F, and day 4/M has no stored row.
func activeReader() (*stubReader, catalog.Batch) {
	batch := catalog.Batch{ID: uuid.New(), Name: "Summer", Active: true}
	reader := &stubReader{batches: []catalog.Batch{batch}}
	name := "Opening night"
	for _, key := range catalog.Keys() {
		if key.Day == 4 && key.Category == enums.CategoryM {
			continue
		}
		p := catalog.Product{ID: uuid.New(), BatchID: batch.ID, Key: key, Stock: 25, Brackets: standardBrackets()}
		if key.Day == 6 && key.Category == enums.CategoryF {
			p.Stock = 0
		}
		if key.Day == 1 && key.Category == enums.CategoryM {
			p.DisplayName = &name
		}
		reader.products = append(reader.products, p)
	}
	return reader, batch
}

func newTestService(t *testing.T, reader catalog.ActiveReader, rec quoteRecorder) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Store: reader, Metrics: rec})
	require.NoError(t, err)
	return svc
}

func TestCatalogWithActiveBatch(t *testing.T) {
	reader, batch := activeReader()
	svc := newTestService(t, reader, nil)

	view, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	require.NotNil(t, view.Batch)
	assert.Equal(t, batch.ID, view.Batch.ID)
	require.Len(t, view.Entries, catalog.MatrixSize)

	assert.Equal(t, "Opening night", view.Entries[0].DisplayName)
	assert.Equal(t, "Day 1", view.Entries[1].DisplayName)
	assert.True(t, view.Entries[0].IsAvailable)

	// day 4/M is a placeholder, day 6/F is sold out
	assert.False(t, view.Entries[6].IsAvailable)
	assert.True(t, view.Entries[6].Brackets.IsZero())
	assert.False(t, view.Entries[11].IsAvailable)
}

func TestCatalogWithoutActiveBatch(t *testing.T) {
	reader := &stubReader{}
	svc := newTestService(t, reader, nil)

	view, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Nil(t, view.Batch)
	assert.Empty(t, view.Entries)
	assert.Zero(t, reader.listCalls)
}

func TestCatalogPicksFirstActiveBatch(t *testing.T) {
	reader, batch := activeReader()
	older := catalog.Batch{ID: uuid.New(), Name: "Older", Active: true}
	reader.batches = append(reader.batches, older)
	svc := newTestService(t, reader, nil)

	view, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, batch.ID, view.Batch.ID)
}

func TestCatalogStoreFailure(t *testing.T) {
	svc := newTestService(t, &stubReader{activeErr: errors.New("timeout")}, nil)
	_, err := svc.Catalog(context.Background())
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeDependency))
}

func TestQuotePricesSelection(t *testing.T) {
	reader, batch := activeReader()
	rec := &stubQuoteRecorder{}
	svc := newTestService(t, reader, rec)

	view, err := svc.Quote(context.Background(), []pricing.Item{
		{Day: 3, Category: "M", Quantity: 2},
		{Day: 5, Category: "M", Quantity: 1},
	})
	require.NoError(t, err)
	require.NotNil(t, view.BatchID)
	assert.Equal(t, batch.ID, *view.BatchID)
	assert.True(t, view.GrandTotal.Equal(decimal.NewFromInt(280)))
	assert.True(t, view.Savings.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, []quoteCall{{outcomeSuccess, 20}}, rec.calls)
}

func TestQuoteEmptySelection(t *testing.T) {
	svc := newTestService(t, &stubReader{}, nil)
	view, err := svc.Quote(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, view.BatchID)
	assert.True(t, view.GrandTotal.IsZero())
}

func TestQuoteRejectsUnavailableEntries(t *testing.T) {
	reader, _ := activeReader()
	rec := &stubQuoteRecorder{}
	svc := newTestService(t, reader, rec)

	_, err := svc.Quote(context.Background(), []pricing.Item{
		{Day: 1, Category: "M", Quantity: 1},
		{Day: 4, Category: "M", Quantity: 1},
		{Day: 6, Category: "F", Quantity: 2},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []catalog.Key{
		{Day: 4, Category: enums.CategoryM},
		{Day: 6, Category: enums.CategoryF},
	}, details["unavailable"])
	assert.Equal(t, []quoteCall{{outcomeRejected, 0}}, rec.calls)
}

func TestQuoteRejectsSelectionWithoutActiveBatch(t *testing.T) {
	svc := newTestService(t, &stubReader{}, nil)
	_, err := svc.Quote(context.Background(), []pricing.Item{{Day: 2, Category: "F", Quantity: 1}})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}

func TestQuoteRejectsMalformedItems(t *testing.T) {
	reader, _ := activeReader()
	svc := newTestService(t, reader, nil)
	_, err := svc.Quote(context.Background(), []pricing.Item{{Day: 9, Category: "M", Quantity: 1}})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	assert.Zero(t, reader.listCalls)
}

func TestQuoteWithTypedNilRecorder(t *testing.T) {
	reader, _ := activeReader()
	var rec *stubQuoteRecorder
	svc := newTestService(t, reader, rec)

	view, err := svc.Quote(context.Background(), []pricing.Item{{Day: 3, Category: "M", Quantity: 1}})
	require.NoError(t, err)
	assert.True(t, view.GrandTotal.Equal(decimal.NewFromInt(100)))
}
