package service

// PrintLabelsResult is the classified success side of a PrintLabels
// call. Failures is only ever populated for batch calls: a single
// shipment either fully succeeds or the whole call errors.
type PrintLabelsResult struct {
	Labels      []byte
	Assignments []LabelAssignment
	Failures    []*PerShipmentError
}

// classifyPrintLabels turns a decoded carrier response into a typed
// result. A non-zero top-level code, or any error entry that cannot be
// attributed to a shipment, aborts the whole call. Attributable error
// entries become per-shipment failures, which stay a partial result
// for batches and escalate to the call error for single shipments.
func classifyPrintLabels(resp *PrintLabelsResponse, isBatch bool, referencePrefix string) (*PrintLabelsResult, error) {
	if resp.ErrorCode != 0 {
		return nil, &APIError{Code: resp.ErrorCode, Description: resp.ErrorDescription}
	}

	var failures []*PerShipmentError
	for _, entry := range resp.PrintLabelsErrorList {
		if len(entry.ClientReferenceList) == 0 {
			return nil, &APIError{Code: entry.ErrorCode, Description: entry.ErrorDescription}
		}
		attributed := false
		for _, reference := range entry.ClientReferenceList {
			shipmentID, ok := StripReference(reference, referencePrefix)
			if !ok {
				continue
			}
			attributed = true
			failures = append(failures, &PerShipmentError{
				ShipmentID:  shipmentID,
				Code:        entry.ErrorCode,
				Description: entry.ErrorDescription,
			})
		}
		// References that match no shipment of ours leave the error
		// unattributable, which makes it a general one.
		if !attributed {
			return nil, &APIError{Code: entry.ErrorCode, Description: entry.ErrorDescription}
		}
	}

	if !isBatch && len(failures) > 0 {
		return nil, failures[0]
	}

	return &PrintLabelsResult{
		Labels:      []byte(resp.Labels),
		Assignments: BuildAssignments(resp.PrintLabelsInfoList, referencePrefix),
		Failures:    failures,
	}, nil
}
