package service

import (
	"context"
	"fmt"
	"strings"

	"gls-plugin/config"
)

// LabelService ties the vault, the request builder and the client
// together for the callers in protocol/http. It builds and sends; the
// caller owns persistence and the existing-label idempotency check.
type LabelService struct {
	Config config.Config
	Vault  *Vault
	Orders OrderStore
}

func NewLabelService(cfg config.Config, orders OrderStore) *LabelService {
	return &LabelService{
		Config: cfg,
		Vault:  NewVault(cfg),
		Orders: orders,
	}
}

// CreateLabel builds and sends a single-shipment request. Credential
// and pickup-point preconditions fail here, before any network call.
func (s *LabelService) CreateLabel(ctx context.Context, shipment Shipment, opts *BuildOptions) (*PrintLabelsResult, error) {
	account, err := s.Vault.ResolveActive()
	if err != nil {
		return nil, err
	}

	builder := NewBuilder(account, s.Config)
	req, err := builder.BuildSingle(shipment, opts)
	if err != nil {
		return nil, err
	}

	return NewGLSClient(account, s.Config).PrintLabels(ctx, req, false)
}

// CreateBatchLabels loads the saved shipment snapshots for the given
// ids and sends them as one wire request with one shared print
// configuration.
func (s *LabelService) CreateBatchLabels(ctx context.Context, shipmentIDs []string) (*PrintLabelsResult, error) {
	if s.Orders == nil {
		return nil, fmt.Errorf("order store not configured")
	}

	shipments := make([]Shipment, 0, len(shipmentIDs))
	for _, id := range shipmentIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		shipment, err := s.Orders.LoadShipment(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load shipment %s: %w", id, err)
		}
		shipments = append(shipments, shipment)
	}
	if len(shipments) == 0 {
		return nil, fmt.Errorf("no shipments to label")
	}

	account, err := s.Vault.ResolveActive()
	if err != nil {
		return nil, err
	}

	builder := NewBuilder(account, s.Config)
	req, err := builder.BuildBatch(shipments)
	if err != nil {
		return nil, err
	}

	return NewGLSClient(account, s.Config).PrintLabels(ctx, req, true)
}

// TrackParcel fetches the carrier status history for one parcel number.
func (s *LabelService) TrackParcel(ctx context.Context, parcelNumber int64, returnPOD bool) (*ParcelStatusResponse, error) {
	account, err := s.Vault.ResolveActive()
	if err != nil {
		return nil, err
	}
	return NewGLSClient(account, s.Config).GetParcelStatuses(ctx, parcelNumber, returnPOD)
}
