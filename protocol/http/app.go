package httpapi

import (
	"context"
	"net/http"

	"gls-plugin/config"
	"gls-plugin/database"
	"gls-plugin/service"
)

// labelStore is the slice of the database store the handlers use.
type labelStore interface {
	LoadShipment(ctx context.Context, shipmentID string) (service.Shipment, error)
	SaveShipmentSnapshot(shipment service.Shipment) error
	SaveAssignments(batchID, labelPath string, assignments []service.LabelAssignment) error
	LoadTrackingNumber(shipmentID string) (string, error)
}

type App struct {
	Config config.Config
	Store  labelStore
	Labels *service.LabelService
}

func NewApp(cfg config.Config, store *database.Store) *App {
	return &App{
		Config: cfg,
		Store:  store,
		Labels: service.NewLabelService(cfg, store),
	}
}

func (a *App) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", a.home)
	mux.HandleFunc("/shipments", a.requireAdmin(a.saveShipment))
	mux.HandleFunc("/labels", a.requireAdmin(a.createLabel))
	mux.HandleFunc("/labels/batch", a.requireAdmin(a.createBatchLabels))
	mux.HandleFunc("/tracking/", a.requireAdmin(a.trackParcel))
	mux.Handle(
		"/files/labels/",
		http.StripPrefix(
			"/files/labels/",
			http.FileServer(http.Dir(a.labelStoragePath())),
		),
	)
}
