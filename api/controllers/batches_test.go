package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/daypass-backend/internal/catalog"
	"github.com/angelmondragon/daypass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/daypass-backend/pkg/errors"
)

type stubCatalogService struct {
	batches   []catalog.Batch
	created   *catalog.CreateBatchInput
	activeFor map[uuid.UUID]bool
	deleted   []uuid.UUID
	saved     []catalog.ProductInput
	err       error
}

func (s *stubCatalogService) ListBatches(context.Context) ([]catalog.Batch, error) {
	return s.batches, s.err
}

func (s *stubCatalogService) CreateBatch(_ context.Context, input catalog.CreateBatchInput) (*catalog.Batch, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &input
	return &catalog.Batch{ID: uuid.New(), Name: input.Name, CreatedAt: time.Now()}, nil
}

func (s *stubCatalogService) SetBatchActive(_ context.Context, id uuid.UUID, active bool) (*catalog.Batch, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.activeFor == nil {
		s.activeFor = map[uuid.UUID]bool{}
	}
	s.activeFor[id] = active
	return &catalog.Batch{ID: id, Active: active}, nil
}

func (s *stubCatalogService) DeleteBatch(_ context.Context, id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubCatalogService) LoadMatrix(_ context.Context, id uuid.UUID) (*catalog.MatrixView, error) {
	if s.err != nil {
		return nil, s.err
	}
	view := &catalog.MatrixView{Batch: catalog.Batch{ID: id}}
	for _, key := range catalog.Keys() {
		view.Products = append(view.Products, catalog.Placeholder(id, key))
	}
	return view, nil
}

func (s *stubCatalogService) SaveProductMatrix(_ context.Context, id uuid.UUID, entries []catalog.ProductInput) (*catalog.SaveResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.saved = entries
	return &catalog.SaveResult{BatchID: id.String(), Saved: len(entries)}, nil
}

func TestAdminCreateBatch(t *testing.T) {
	svc := &stubCatalogService{}
	rec := httptest.NewRecorder()
	AdminCreateBatch(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/admin/v1/batches", `{"name":"Summer 2026","description":"six days"}`, nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Summer 2026", svc.created.Name)
	require.NotNil(t, svc.created.Description)
	assert.Equal(t, "six days", *svc.created.Description)

	var batch catalog.Batch
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &batch))
	assert.Equal(t, "Summer 2026", batch.Name)
	assert.False(t, batch.Active)
}

func TestAdminCreateBatchRejectsBadBody(t *testing.T) {
	cases := map[string]string{
		"missing name":  `{"description":"x"}`,
		"unknown field": `{"name":"a","colour":"red"}`,
		"not json":      `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &stubCatalogService{}
			rec := httptest.NewRecorder()
			AdminCreateBatch(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/admin/v1/batches", body, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.created)
		})
	}
}

func TestAdminListBatches(t *testing.T) {
	svc := &stubCatalogService{batches: []catalog.Batch{{ID: uuid.New(), Name: "newest"}, {ID: uuid.New(), Name: "older"}}}
	rec := httptest.NewRecorder()
	AdminListBatches(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodGet, "/api/admin/v1/batches", "", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var batches []catalog.Batch
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &batches))
	require.Len(t, batches, 2)
	assert.Equal(t, "newest", batches[0].Name)
}

func TestAdminSetBatchActive(t *testing.T) {
	id := uuid.New()
	svc := &stubCatalogService{}

	rec := httptest.NewRecorder()
	AdminSetBatchActive(svc, true, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/activate", "", map[string]string{"batchId": id.String()}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.activeFor[id])

	rec = httptest.NewRecorder()
	AdminSetBatchActive(svc, false, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/deactivate", "", map[string]string{"batchId": id.String()}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, svc.activeFor[id])
}

func TestAdminBatchRoutesRejectBadID(t *testing.T) {
	svc := &stubCatalogService{}
	handlers := map[string]http.HandlerFunc{
		"activate": AdminSetBatchActive(svc, true, testLogger()),
		"delete":   AdminDeleteBatch(svc, testLogger()),
		"load":     AdminLoadMatrix(svc, testLogger()),
		"save":     AdminSaveMatrix(svc, testLogger()),
	}
	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, newRequest(http.MethodPost, "/", `{"products":[]}`, map[string]string{"batchId": "not-a-uuid"}))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, string(pkgerrors.CodeValidation), decodeEnvelope(t, rec).Error.Code)
		})
	}
}

func TestAdminDeleteBatchNotFound(t *testing.T) {
	svc := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "batch not found")}
	rec := httptest.NewRecorder()
	AdminDeleteBatch(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodDelete, "/", "", map[string]string{"batchId": uuid.NewString()}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminLoadMatrixReturnsTwelveEntries(t *testing.T) {
	id := uuid.New()
	rec := httptest.NewRecorder()
	AdminLoadMatrix(&stubCatalogService{}, testLogger()).ServeHTTP(rec, newRequest(http.MethodGet, "/", "", map[string]string{"batchId": id.String()}))

	require.Equal(t, http.StatusOK, rec.Code)
	var view catalog.MatrixView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &view))
	assert.Len(t, view.Products, 12)
	assert.Equal(t, id, view.Batch.ID)
}

func TestAdminSaveMatrix(t *testing.T) {
	entries := make([]catalog.ProductInput, 0, 12)
	for _, key := range catalog.Keys() {
		entries = append(entries, catalog.ProductInput{
			Day:      key.Day,
			Category: key.Category,
			Stock:    10,
			Brackets: []decimal.Decimal{
				decimal.NewFromInt(100), decimal.NewFromInt(90), decimal.NewFromInt(80),
				decimal.NewFromInt(70), decimal.NewFromInt(60), decimal.NewFromInt(50),
			},
		})
	}
	body, err := json.Marshal(map[string]any{"products": entries})
	require.NoError(t, err)

	svc := &stubCatalogService{}
	id := uuid.New()
	rec := httptest.NewRecorder()
	AdminSaveMatrix(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPut, "/", string(body), map[string]string{"batchId": id.String()}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, svc.saved, 12)
	assert.Equal(t, enums.CategoryM, svc.saved[0].Category)
	assert.True(t, svc.saved[0].Brackets[5].Equal(decimal.NewFromInt(50)))
}

func TestAdminSaveMatrixRejectsShortBrackets(t *testing.T) {
	svc := &stubCatalogService{}
	rec := httptest.NewRecorder()
	body := `{"products":[{"day":1,"category":"M","stock":1,"brackets":["10","9"]}]}`
	AdminSaveMatrix(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPut, "/", body, map[string]string{"batchId": uuid.NewString()}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.saved)
}

func TestAdminSaveMatrixReportsFailedEntry(t *testing.T) {
	svc := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeDependency, "save product").
		WithDetails(map[string]any{"day": 3, "category": "M", "saved": 4})}
	rec := httptest.NewRecorder()
	body := `{"products":[{"day":1,"category":"M","stock":1,"brackets":["1","1","1","1","1","1"]}]}`
	AdminSaveMatrix(svc, testLogger()).ServeHTTP(rec, newRequest(http.MethodPut, "/", body, map[string]string{"batchId": uuid.NewString()}))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var details map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Error.Details, &details))
	assert.Equal(t, float64(3), details["day"])
	assert.Equal(t, float64(4), details["saved"])
}

func TestAdminHandlersWithoutService(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminListBatches(nil, nil).ServeHTTP(rec, newRequest(http.MethodGet, "/", "", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
