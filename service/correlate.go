package service

import (
	"strconv"
	"strings"
)

// LabelAssignment correlates one shipment with everything the carrier
// returned for it. A multi-parcel shipment (Count > 1) gets several
// parcel numbers under one reference, grouped here.
type LabelAssignment struct {
	ShipmentID    string   `json:"shipment_id"`
	ParcelNumbers []string `json:"parcel_numbers"`
	ParcelIDs     []int64  `json:"parcel_ids"`
}

// StripReference recovers the shipment id from a carrier-echoed
// correlation reference. The prefix is stripped, not searched for: a
// reference that does not start with it cannot be correlated.
func StripReference(reference, prefix string) (string, bool) {
	reference = strings.TrimSpace(reference)
	if prefix != "" && !strings.HasPrefix(reference, prefix) {
		return "", false
	}
	shipmentID := strings.TrimSpace(strings.TrimPrefix(reference, prefix))
	if shipmentID == "" {
		return "", false
	}
	return shipmentID, true
}

// BuildAssignments groups the response info entries by originating
// shipment, preserving the order shipments first appear in.
func BuildAssignments(infos []PrintLabelsInfo, referencePrefix string) []LabelAssignment {
	assignments := make([]LabelAssignment, 0, len(infos))
	index := make(map[string]int, len(infos))
	for _, info := range infos {
		shipmentID, ok := StripReference(info.ClientReference, referencePrefix)
		if !ok {
			continue
		}
		i, seen := index[shipmentID]
		if !seen {
			index[shipmentID] = len(assignments)
			assignments = append(assignments, LabelAssignment{ShipmentID: shipmentID})
			i = len(assignments) - 1
		}
		assignments[i].ParcelNumbers = append(assignments[i].ParcelNumbers, strconv.FormatInt(info.ParcelNumber, 10))
		assignments[i].ParcelIDs = append(assignments[i].ParcelIDs, info.ParcelID)
	}
	return assignments
}
