package handlers

import (
	"net/http"

	"lease_flow_app_go/db"
	"lease_flow_app_go/middleware"
	"lease_flow_app_go/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// OfferLinePayload is one equipment line of a create request
type OfferLinePayload struct {
	Title          string   `json:"title"`
	Quantity       int      `json:"quantity"`
	MonthlyPayment float64  `json:"monthly_payment"`
	PurchasePrice  *float64 `json:"purchase_price,omitempty"`
	Margin         *float64 `json:"margin,omitempty"`
	Attributes     []KV     `json:"attributes,omitempty"`
	Specifications []KV     `json:"specifications,omitempty"`
}

// KV is one ordered key/value entry of an attribute or specification bag
type KV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CreateOfferPayload is the JSON body of POST /api/offers
type CreateOfferPayload struct {
	ClientID        string             `json:"client_id"`
	LeaserID        *string            `json:"leaser_id,omitempty"`
	DurationMonths  *int               `json:"duration_months,omitempty"`
	AdditionalTerms *string            `json:"additional_terms,omitempty"`
	Equipment       []OfferLinePayload `json:"equipment"`
}

// GetOffersHandler returns the offers of the current user's company
func GetOffersHandler(c echo.Context) error {
	var offers []models.Offer
	if err := middleware.GetCompanyScopedQuery(c, db.DB).
		Preload("Client").
		Preload("Equipment", orderByPosition).
		Order("created_at DESC").
		Find(&offers).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error fetching offers")
	}

	return c.JSON(http.StatusOK, offers)
}

// GetOfferHandler returns one offer with its full equipment tree
func GetOfferHandler(c echo.Context) error {
	offer, err := loadOffer(c, c.Param("id"))
	if err != nil {
		return c.String(http.StatusNotFound, "Offer not found")
	}

	return c.JSON(http.StatusOK, offer)
}

// CreateOfferHandler creates an offer with its nested equipment lines
func CreateOfferHandler(c echo.Context) error {
	var payload CreateOfferPayload
	if err := c.Bind(&payload); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request body")
	}

	if payload.ClientID == "" {
		return c.String(http.StatusBadRequest, "Client is required")
	}
	for _, line := range payload.Equipment {
		if line.Title == "" {
			return c.String(http.StatusBadRequest, "Equipment title is required")
		}
		if line.Quantity < 1 {
			return c.String(http.StatusBadRequest, "Equipment quantity must be at least 1")
		}
		if line.MonthlyPayment < 0 {
			return c.String(http.StatusBadRequest, "Equipment monthly payment must not be negative")
		}
	}

	user := middleware.GetCurrentUser(c)

	// Verify the client belongs to the same company
	var client models.Client
	if err := middleware.GetCompanyScopedQuery(c, db.DB).
		First(&client, "id = ?", payload.ClientID).Error; err != nil {
		return c.String(http.StatusBadRequest, "Unknown client")
	}

	offer := models.Offer{
		CompanyID:       user.CompanyID,
		ClientID:        payload.ClientID,
		LeaserID:        payload.LeaserID,
		DurationMonths:  payload.DurationMonths,
		AdditionalTerms: payload.AdditionalTerms,
		Status:          models.OfferStatusDraft,
	}
	for i, line := range payload.Equipment {
		eq := models.EquipmentLine{
			Position:       i,
			Title:          line.Title,
			Quantity:       line.Quantity,
			MonthlyPayment: line.MonthlyPayment,
			PurchasePrice:  line.PurchasePrice,
			Margin:         line.Margin,
		}
		for j, attr := range line.Attributes {
			eq.Attributes = append(eq.Attributes, models.EquipmentAttribute{Position: j, Key: attr.Key, Value: attr.Value})
		}
		for j, spec := range line.Specifications {
			eq.Specifications = append(eq.Specifications, models.EquipmentSpecification{Position: j, Key: spec.Key, Value: spec.Value})
		}
		offer.Equipment = append(offer.Equipment, eq)
	}

	if err := db.DB.Create(&offer).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error creating offer")
	}

	return c.JSON(http.StatusCreated, offer)
}

// DeleteOfferHandler soft-deletes an offer of the current company
func DeleteOfferHandler(c echo.Context) error {
	offer, err := loadOffer(c, c.Param("id"))
	if err != nil {
		return c.String(http.StatusNotFound, "Offer not found")
	}

	if err := db.DB.Delete(offer).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error deleting offer")
	}

	return c.NoContent(http.StatusNoContent)
}

// loadOffer fetches one company-scoped offer with the fully resolved tree
// the PDF core expects
func loadOffer(c echo.Context, id string) (*models.Offer, error) {
	var offer models.Offer
	err := middleware.GetCompanyScopedQuery(c, db.DB).
		Preload("Client").
		Preload("Company").
		Preload("Leaser").
		Preload("Equipment", orderByPosition).
		Preload("Equipment.Attributes", orderByPosition).
		Preload("Equipment.Specifications", orderByPosition).
		First(&offer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func orderByPosition(tx *gorm.DB) *gorm.DB {
	return tx.Order("position ASC")
}
