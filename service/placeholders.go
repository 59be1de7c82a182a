package service

import (
	"strconv"
	"strings"
)

const orderIDToken = "{order_id}"

// SubstituteReference expands the reference template into the
// carrier-facing correlation reference for one shipment.
func SubstituteReference(template, shipmentID string) string {
	template = strings.TrimSpace(template)
	if template == "" {
		template = "Order:" + orderIDToken
	}
	return strings.ReplaceAll(template, orderIDToken, strings.TrimSpace(shipmentID))
}

// ReferencePrefix is the fixed text before the order id token. The
// classifier strips it (never merely searches for it) when mapping a
// response reference back to a shipment id.
func ReferencePrefix(template string) string {
	template = strings.TrimSpace(template)
	if template == "" {
		template = "Order:" + orderIDToken
	}
	if idx := strings.Index(template, orderIDToken); idx >= 0 {
		return template[:idx]
	}
	return template
}

// SubstituteContent expands the free-text content template. Its token
// set is independent of the reference template.
func SubstituteContent(template string, shipment Shipment) string {
	if strings.TrimSpace(template) == "" {
		return ""
	}
	replacer := strings.NewReplacer(
		orderIDToken, shipment.ID,
		"{customer_name}", shipment.CustomerName,
		"{customer_email}", shipment.BillingEmail,
		"{customer_phone}", shipment.Phone(),
		"{customer_note}", shipment.CustomerNote,
		"{order_total}", strconv.FormatFloat(shipment.TotalValue, 'f', 2, 64),
		"{shipping_method}", shipment.ShippingMethodName,
	)
	return strings.TrimSpace(replacer.Replace(template))
}
