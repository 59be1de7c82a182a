package service

import (
	"context"
	"strings"
)

type DeliveryMode string

const (
	DeliveryModeHome        DeliveryMode = "home"
	DeliveryModePickupPoint DeliveryMode = "pickup_point"
)

const PaymentMethodCOD = "cod"

// Shipment is the read-only view of one outbound order, produced by the
// order pipeline before this layer is invoked. The core never mutates
// it; label assignments are returned to the caller for persistence.
type Shipment struct {
	ID string `json:"id"`

	Delivery     Address `json:"delivery"`
	BillingPhone string  `json:"billing_phone,omitempty"`
	BillingEmail string  `json:"billing_email,omitempty"`

	CustomerName string `json:"customer_name,omitempty"`
	CustomerNote string `json:"customer_note,omitempty"`

	TotalValue    float64 `json:"total_value"`
	Currency      string  `json:"currency"`
	PaymentMethod string  `json:"payment_method"`

	ShippingMethodName string       `json:"shipping_method_name,omitempty"`
	DeliveryMode       DeliveryMode `json:"delivery_mode"`
	PickupPointID      string       `json:"pickup_point_id,omitempty"`

	Count int `json:"count"`

	// Saved per-shipment preferences. Batch builds consult only these,
	// never caller-supplied per-call overrides.
	SavedOverrides     *ServiceOverrides `json:"saved_overrides,omitempty"`
	SavedPrintPosition int               `json:"saved_print_position,omitempty"`
	SavedPrinterType   string            `json:"saved_printer_type,omitempty"`

	// ClientReference is a previously assigned correlation reference.
	// Empty means the reference template decides.
	ClientReference string `json:"client_reference,omitempty"`
}

// DestinationCountry is the ISO code the eligibility rules key on.
func (s Shipment) DestinationCountry() string {
	return strings.ToUpper(strings.TrimSpace(s.Delivery.CountryIsoCode))
}

func (s Shipment) DestinationZip() string {
	return strings.TrimSpace(s.Delivery.ZipCode)
}

// Phone prefers the delivery contact phone over the billing phone.
func (s Shipment) Phone() string {
	if phone := strings.TrimSpace(s.Delivery.ContactPhone); phone != "" {
		return phone
	}
	return strings.TrimSpace(s.BillingPhone)
}

// RecipientName prefers the delivery contact name over the address name.
func (s Shipment) RecipientName() string {
	if name := strings.TrimSpace(s.Delivery.ContactName); name != "" {
		return name
	}
	return strings.TrimSpace(s.Delivery.Name)
}

func (s Shipment) ParcelCount() int {
	if s.Count > 0 {
		return s.Count
	}
	return 1
}

func (s Shipment) IsCOD() bool {
	return strings.EqualFold(strings.TrimSpace(s.PaymentMethod), PaymentMethodCOD)
}

// OrderStore is the external order data collaborator. Batch label
// creation reads previously saved shipment snapshots through it.
type OrderStore interface {
	LoadShipment(ctx context.Context, shipmentID string) (Shipment, error)
}
