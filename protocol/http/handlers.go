package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"gls-plugin/service"
)

func (a *App) home(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "GLS Shipping Plugin")
}

// requireAdmin verifies the session token on mutating endpoints when a
// secret is configured. An empty secret leaves the surface open, which
// is the local-development default.
func (a *App) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret := strings.TrimSpace(a.Config.AdminSecret)
		if secret == "" {
			next(w, r)
			return
		}
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		claims, err := service.VerifyAdminToken(strings.TrimSpace(token), secret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}
		log.Printf("admin request: iss=%s admin_id=%d %s %s", claims.Iss, claims.AdminID, r.Method, r.URL.Path)
		next(w, r)
	}
}

type saveShipmentRequest struct {
	Shipment service.Shipment `json:"shipment"`
}

// saveShipment lets the order pipeline persist the snapshot a later
// batch run reads back.
func (a *App) saveShipment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var req saveShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid shipment payload")
		return
	}
	if err := a.Store.SaveShipmentSnapshot(req.Shipment); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"shipment_id": req.Shipment.ID})
}

type createLabelRequest struct {
	ShipmentID    string                    `json:"shipment_id,omitempty"`
	Shipment      *service.Shipment         `json:"shipment,omitempty"`
	Count         int                       `json:"count,omitempty"`
	PrintPosition int                       `json:"print_position,omitempty"`
	CODReference  string                    `json:"cod_reference,omitempty"`
	Services      *service.ServiceOverrides `json:"services,omitempty"`
}

type labelResponse struct {
	BatchID     string                    `json:"batch_id"`
	LabelURL    string                    `json:"label_url,omitempty"`
	Assignments []service.LabelAssignment `json:"assignments"`
	Failures    []perShipmentFailure      `json:"failures,omitempty"`
	Skipped     bool                      `json:"skipped,omitempty"`
	Tracking    string                    `json:"tracking_number,omitempty"`
}

type perShipmentFailure struct {
	ShipmentID  string `json:"shipment_id"`
	Code        int    `json:"code"`
	Description string `json:"description"`
}

func (a *App) createLabel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var req createLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid label request")
		return
	}

	var shipment service.Shipment
	switch {
	case req.Shipment != nil:
		shipment = *req.Shipment
	case strings.TrimSpace(req.ShipmentID) != "":
		loaded, err := a.Store.LoadShipment(r.Context(), req.ShipmentID)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		shipment = loaded
	default:
		writeError(w, http.StatusBadRequest, "shipment or shipment_id required")
		return
	}

	// A label that already exists is not regenerated; the carrier
	// would happily print a second one. A failed lookup aborts the
	// request rather than risking a duplicate label.
	tracking, err := a.Store.LoadTrackingNumber(shipment.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tracking != "" {
		writeJSON(w, http.StatusOK, labelResponse{Skipped: true, Tracking: tracking})
		return
	}

	opts := &service.BuildOptions{
		Count:         req.Count,
		PrintPosition: req.PrintPosition,
		CODReference:  req.CODReference,
		Services:      req.Services,
	}
	result, err := a.Labels.CreateLabel(r.Context(), shipment, opts)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	a.respondWithResult(w, result)
}

type batchLabelRequest struct {
	ShipmentIDs []string `json:"shipment_ids"`
}

func (a *App) createBatchLabels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var req batchLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid batch request")
		return
	}

	// Already-labeled shipments are skipped, not resubmitted. A failed
	// lookup aborts the batch; treating it as "not labeled yet" would
	// resubmit a shipment that already has a label.
	pending := make([]string, 0, len(req.ShipmentIDs))
	for _, id := range req.ShipmentIDs {
		tracking, err := a.Store.LoadTrackingNumber(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if tracking != "" {
			continue
		}
		pending = append(pending, id)
	}
	if len(pending) == 0 {
		writeJSON(w, http.StatusOK, labelResponse{Skipped: true})
		return
	}

	result, err := a.Labels.CreateBatchLabels(r.Context(), pending)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	a.respondWithResult(w, result)
}

// respondWithResult persists the successful side of a classified
// result and reports per-shipment failures for the admin to act on.
func (a *App) respondWithResult(w http.ResponseWriter, result *service.PrintLabelsResult) {
	batchID := uuid.NewString()

	labelURL := ""
	labelPath := ""
	if len(result.Labels) > 0 {
		path, err := a.saveLabelBlob(batchID, result.Labels)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		labelPath = path
		labelURL = "/files/labels/" + batchID + ".pdf"
	}

	if err := a.Store.SaveAssignments(batchID, labelPath, result.Assignments); err != nil {
		log.Println("failed to store label assignments:", err)
	}

	resp := labelResponse{
		BatchID:     batchID,
		LabelURL:    labelURL,
		Assignments: result.Assignments,
	}
	for _, failure := range result.Failures {
		resp.Failures = append(resp.Failures, perShipmentFailure{
			ShipmentID:  failure.ShipmentID,
			Code:        failure.Code,
			Description: failure.Description,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) trackParcel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/tracking/")
	parcelNumber, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || parcelNumber <= 0 {
		writeError(w, http.StatusBadRequest, "invalid parcel number")
		return
	}
	returnPOD := r.URL.Query().Get("pod") == "true"

	statuses, err := a.Labels.TrackParcel(r.Context(), parcelNumber, returnPOD)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (a *App) saveLabelBlob(batchID string, data []byte) (string, error) {
	if strings.ContainsAny(batchID, "/\\") || strings.Contains(batchID, "..") {
		return "", fmt.Errorf("invalid batch id")
	}
	dir := a.labelStoragePath()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, batchID+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (a *App) labelStoragePath() string {
	if path := strings.TrimSpace(a.Config.LabelStoragePath); path != "" {
		return path
	}
	return "files/labels"
}

// statusForError maps the service error taxonomy onto HTTP statuses:
// precondition failures are the caller's fault, everything the carrier
// or the network did wrong surfaces as a bad gateway.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingPickupInfo):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrCredentialMissing), errors.Is(err, service.ErrNoActiveAccount):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("failed to encode response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
