package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauv0809/asset-ranking/internal/models"
)

type fakeSource struct {
	records []models.FinancialRecord
	err     error
}

func (f *fakeSource) Load(context.Context) ([]models.FinancialRecord, error) {
	return f.records, f.err
}

type fakeStore struct {
	upserted  []models.FinancialRecord
	upsertErr error
	countErr  error
}

func (f *fakeStore) UpsertFinancialRecords(_ context.Context, records []models.FinancialRecord) (int, error) {
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	f.upserted = append(f.upserted, records...)
	return len(records), nil
}

func (f *fakeStore) GetRecordCount(context.Context) (int, error) {
	return len(f.upserted), f.countErr
}

func (f *fakeStore) GetCompanyCount(context.Context) (int, error) {
	seen := make(map[string]struct{})
	for _, r := range f.upserted {
		seen[r.Company] = struct{}{}
	}
	return len(seen), f.countErr
}

func newIngestServer(src *fakeSource, store *fakeStore) http.Handler {
	return NewServer(New(testRecords(), Options{}), NewIngestHandler(src, store))
}

func TestIngestRecords(t *testing.T) {
	store := &fakeStore{}
	srv := newIngestServer(&fakeSource{records: testRecords()}, store)

	req := httptest.NewRequest(http.MethodPost, "/admin/ingest/records", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"count":4`)
	assert.Len(t, store.upserted, 4)

	status := get(t, srv, "/admin/ingest/status")
	require.Equal(t, http.StatusOK, status.Code)
	assert.JSONEq(t, `{"records":4,"companies":3}`, status.Body.String())
}

func TestIngestRecords_LoadFailure(t *testing.T) {
	store := &fakeStore{}
	srv := newIngestServer(&fakeSource{err: errors.New("file missing")}, store)

	req := httptest.NewRequest(http.MethodPost, "/admin/ingest/records", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "file missing")
	assert.Empty(t, store.upserted)
}

func TestIngestRecords_UpsertFailure(t *testing.T) {
	srv := newIngestServer(&fakeSource{records: testRecords()}, &fakeStore{upsertErr: errors.New("deadlock")})

	req := httptest.NewRequest(http.MethodPost, "/admin/ingest/records", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "deadlock")
}

func TestIngestStatus_Error(t *testing.T) {
	srv := newIngestServer(&fakeSource{}, &fakeStore{countErr: errors.New("no db")})

	rec := get(t, srv, "/admin/ingest/status")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "no db")
}

func TestAdminRoutesAbsentWithoutDatabase(t *testing.T) {
	rec := get(t, newTestServer(), "/admin/ingest/status")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
