package handlers

import (
	"net/http"
	"time"

	"lease_flow_app_go/db"
	"lease_flow_app_go/middleware"
	"lease_flow_app_go/models"
	"lease_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// ExportOffersHandler serves the company's offer book as an Excel download
func ExportOffersHandler(c echo.Context) error {
	var offers []models.Offer
	if err := middleware.GetCompanyScopedQuery(c, db.DB).
		Preload("Client").
		Preload("Equipment", orderByPosition).
		Order("created_at DESC").
		Find(&offers).Error; err != nil {
		return c.String(http.StatusInternalServerError, "Error fetching offers")
	}

	buf, err := services.BuildOfferBook(offers)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Error building export")
	}

	filename := "offres-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
