package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteReference(t *testing.T) {
	assert.Equal(t, "Order:55", SubstituteReference("Order:{order_id}", "55"))
	assert.Equal(t, "REF-55-HR", SubstituteReference("REF-{order_id}-HR", "55"))

	// Empty template falls back to the stock reference form.
	assert.Equal(t, "Order:55", SubstituteReference("", "55"))
	assert.Equal(t, "Order:55", SubstituteReference("  ", " 55 "))
}

func TestReferencePrefix(t *testing.T) {
	assert.Equal(t, "Order:", ReferencePrefix("Order:{order_id}"))
	assert.Equal(t, "REF-", ReferencePrefix("REF-{order_id}-HR"))
	assert.Equal(t, "Order:", ReferencePrefix(""))
}

func TestSubstituteContent(t *testing.T) {
	shipment := testShipment()
	shipment.CustomerNote = "ring twice"
	shipment.ShippingMethodName = "GLS Home"

	content := SubstituteContent(
		"{order_id} {customer_name} {customer_email} {customer_note} {order_total} {shipping_method}",
		shipment,
	)
	assert.Equal(t, "55 Ana Horvat ana@example.com ring twice 200.00 GLS Home", content)
}

func TestSubstituteContent_EmptyTemplate(t *testing.T) {
	assert.Empty(t, SubstituteContent("", testShipment()))
	assert.Empty(t, SubstituteContent("   ", testShipment()))
}
