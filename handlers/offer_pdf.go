package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"lease_flow_app_go/config"
	"lease_flow_app_go/middleware"
	"lease_flow_app_go/models"
	"lease_flow_app_go/services/offerpdf"

	"github.com/labstack/echo/v4"
)

// DownloadOfferPDFHandler renders an offer to PDF and serves it as an
// attachment. Mode and authorization are checked before any rendering work:
// the internal document carries purchase and margin figures and is restricted
// to admins.
func DownloadOfferPDFHandler(c echo.Context) error {
	mode, err := offerpdf.ParseMode(c.QueryParam("mode"))
	if err != nil {
		return respondPDFError(c, err)
	}

	if mode == offerpdf.ModeInternal && !middleware.HasRole(c, models.RoleAdmin) {
		return respondPDFError(c, offerpdf.NewError(offerpdf.KindForbidden, "internal documents require the admin role", nil))
	}

	offer, err := loadOffer(c, c.Param("id"))
	if err != nil {
		return respondPDFError(c, offerpdf.NewError(offerpdf.KindOfferNotFound, "offer not found", err))
	}

	cfg := c.Get("config").(*config.Config)
	generator := offerpdf.NewGenerator(cfg)

	result, err := generator.Generate(c.Request().Context(), offer, mode)
	if err != nil {
		return respondPDFError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.Filename))
	return c.Blob(http.StatusOK, result.MIME, result.PDF)
}

// respondPDFError maps the typed generation errors onto HTTP statuses
func respondPDFError(c echo.Context, err error) error {
	var genErr *offerpdf.Error
	if errors.As(err, &genErr) {
		switch genErr.Kind {
		case offerpdf.KindInvalidMode:
			return c.String(http.StatusBadRequest, genErr.Message)
		case offerpdf.KindForbidden:
			return c.String(http.StatusForbidden, genErr.Message)
		case offerpdf.KindOfferNotFound:
			return c.String(http.StatusNotFound, genErr.Message)
		}
	}
	return c.String(http.StatusInternalServerError, "Error generating PDF: "+err.Error())
}
