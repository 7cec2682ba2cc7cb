package offerpdf

import "lease_flow_app_go/models"

// Redact returns the working copy of the offer the rest of the pipeline
// operates on. In client mode every confidential figure (purchase price,
// margin) is removed from the copy, so no downstream component needs
// confidentiality awareness and nothing redacted can reach the byte stream.
// Internal mode is the identity transformation (still a copy, so the caller's
// record is never mutated).
func Redact(offer *models.Offer, mode RenderMode) *models.Offer {
	working := *offer
	working.Equipment = make([]models.EquipmentLine, len(offer.Equipment))
	copy(working.Equipment, offer.Equipment)

	if mode == ModeInternal {
		return &working
	}

	for i := range working.Equipment {
		working.Equipment[i].PurchasePrice = nil
		working.Equipment[i].Margin = nil
	}

	return &working
}
