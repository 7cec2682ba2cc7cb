package middleware

import (
	"net/http"

	"lease_flow_app_go/db"
	"lease_flow_app_go/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	// ContextKeyUser is the echo context key holding the resolved user
	ContextKeyUser = "user"

	// HeaderUserID carries the authenticated user id, set by the identity
	// gateway in front of this service. Sessions and credentials never
	// reach this process.
	HeaderUserID = "X-Auth-User-Id"
)

// ResolveIdentity materializes the gateway-authenticated user into the
// request context. Requests without a resolvable, active user are rejected.
func ResolveIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := c.Request().Header.Get(HeaderUserID)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authenticated identity")
			}

			var user models.User
			if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unknown user")
			}

			if !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "User is deactivated")
			}

			c.Set(ContextKeyUser, &user)
			return next(c)
		}
	}
}

// RequireRole creates middleware that checks if the user has one of the required roles
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := c.Get(ContextKeyUser).(*models.User)

			// Check if user has one of the required roles
			hasRole := false
			for _, role := range roles {
				if user.Role == role {
					hasRole = true
					break
				}
			}

			if !hasRole {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}

			return next(c)
		}
	}
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// HasRole reports whether the current user holds one of the given roles
func HasRole(c echo.Context, roles ...string) bool {
	user := GetCurrentUser(c)
	if user == nil {
		return false
	}
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}

// GetCompanyScopedQuery returns a query scoped to the current user's company.
// Every tenant-owned table carries a company_id column.
func GetCompanyScopedQuery(c echo.Context, db *gorm.DB) *gorm.DB {
	currentUser := GetCurrentUser(c)
	if currentUser == nil || currentUser.CompanyID == "" {
		// Return query that matches nothing
		return db.Where("1 = 0")
	}

	return db.Where("company_id = ?", currentUser.CompanyID)
}
