package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gls-plugin/config"
	"gls-plugin/service"
)

type stubStore struct {
	tracking     map[string]string
	trackingErr  error
	lookups      []string
	savedBatches []string
}

func (s *stubStore) LoadShipment(_ context.Context, shipmentID string) (service.Shipment, error) {
	return service.Shipment{}, fmt.Errorf("shipment %s not found", shipmentID)
}

func (s *stubStore) SaveShipmentSnapshot(service.Shipment) error { return nil }

func (s *stubStore) SaveAssignments(batchID, _ string, _ []service.LabelAssignment) error {
	s.savedBatches = append(s.savedBatches, batchID)
	return nil
}

func (s *stubStore) LoadTrackingNumber(shipmentID string) (string, error) {
	s.lookups = append(s.lookups, shipmentID)
	if s.trackingErr != nil {
		return "", s.trackingErr
	}
	return s.tracking[shipmentID], nil
}

func newTestApp(store *stubStore) *App {
	cfg := config.Config{}
	return &App{
		Config: cfg,
		Store:  store,
		Labels: service.NewLabelService(cfg, store),
	}
}

func postJSONRequest(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateLabel_ExistingLabelSkipped(t *testing.T) {
	store := &stubStore{tracking: map[string]string{"55": "50000000001"}}
	app := newTestApp(store)

	rec := httptest.NewRecorder()
	app.createLabel(rec, postJSONRequest("/labels", `{"shipment":{"id":"55"}}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"skipped":true`)
	assert.Contains(t, rec.Body.String(), "50000000001")
}

func TestCreateLabel_TrackingLookupFailureAbortsRequest(t *testing.T) {
	store := &stubStore{trackingErr: fmt.Errorf("db connection lost")}
	app := newTestApp(store)

	// A failed idempotency lookup must not be read as "no label yet";
	// proceeding could print a second label for the shipment.
	rec := httptest.NewRecorder()
	app.createLabel(rec, postJSONRequest("/labels", `{"shipment":{"id":"55"}}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "db connection lost")
}

func TestCreateBatchLabels_TrackingLookupFailureAbortsBatch(t *testing.T) {
	store := &stubStore{trackingErr: fmt.Errorf("db connection lost")}
	app := newTestApp(store)

	rec := httptest.NewRecorder()
	app.createBatchLabels(rec, postJSONRequest("/labels/batch", `{"shipment_ids":["55","77"]}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "db connection lost")
	// The batch stops at the first failed lookup.
	assert.Equal(t, []string{"55"}, store.lookups)
}

func TestCreateBatchLabels_AllAlreadyLabeledSkips(t *testing.T) {
	store := &stubStore{tracking: map[string]string{
		"55": "50000000001",
		"77": "50000000002",
	}}
	app := newTestApp(store)

	rec := httptest.NewRecorder()
	app.createBatchLabels(rec, postJSONRequest("/labels/batch", `{"shipment_ids":["55","77"]}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"skipped":true`)
}
