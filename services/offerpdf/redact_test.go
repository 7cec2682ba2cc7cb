package offerpdf

import (
	"testing"

	"lease_flow_app_go/models"

	"github.com/stretchr/testify/assert"
)

func sampleOfferWithFigures() *models.Offer {
	purchase1, purchase2 := 100.0, 200.0
	margin1, margin2 := 5.0, 10.0
	return &models.Offer{
		ID: "aaaabbbb-cccc-dddd-eeee-ffff00001111",
		Equipment: []models.EquipmentLine{
			{Title: "Laptop", Quantity: 1, MonthlyPayment: 10, PurchasePrice: &purchase1, Margin: &margin1},
			{Title: "Screen", Quantity: 2, MonthlyPayment: 20, PurchasePrice: &purchase2, Margin: &margin2},
		},
	}
}

func TestRedactClientModeRemovesConfidentialFields(t *testing.T) {
	offer := sampleOfferWithFigures()

	redacted := Redact(offer, ModeClient)

	for _, line := range redacted.Equipment {
		assert.Nil(t, line.PurchasePrice)
		assert.Nil(t, line.Margin)
	}

	// Non-confidential fields survive
	assert.Equal(t, "Laptop", redacted.Equipment[0].Title)
	assert.Equal(t, 20.0, redacted.Equipment[1].MonthlyPayment)
}

func TestRedactInternalModeIsIdentity(t *testing.T) {
	offer := sampleOfferWithFigures()

	redacted := Redact(offer, ModeInternal)

	assert.NotNil(t, redacted.Equipment[0].PurchasePrice)
	assert.Equal(t, 100.0, *redacted.Equipment[0].PurchasePrice)
	assert.Equal(t, 10.0, *redacted.Equipment[1].Margin)
}

func TestRedactNeverMutatesTheInput(t *testing.T) {
	offer := sampleOfferWithFigures()

	_ = Redact(offer, ModeClient)

	assert.NotNil(t, offer.Equipment[0].PurchasePrice, "caller's record was mutated")
	assert.NotNil(t, offer.Equipment[1].Margin, "caller's record was mutated")
}
