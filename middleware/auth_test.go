package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lease_flow_app_go/db"
	"lease_flow_app_go/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(&models.Company{}, &models.User{}))
	db.DB = testDB
}

func newContext(headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/offers", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func seedUser(t *testing.T, role string, active bool) *models.User {
	company := &models.Company{Name: "LeaseFlow SAS"}
	require.NoError(t, db.DB.Create(company).Error)

	user := &models.User{
		Name:      "Test Operator",
		Email:     uuid.New().String() + "@leaseflow.example",
		Role:      role,
		IsActive:  active,
		CompanyID: company.ID,
	}
	require.NoError(t, db.DB.Create(user).Error)
	return user
}

func TestResolveIdentitySetsContextUser(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t, models.RoleMember, true)

	c, _ := newContext(map[string]string{HeaderUserID: user.ID})

	called := false
	err := ResolveIdentity()(func(c echo.Context) error {
		called = true
		resolved := GetCurrentUser(c)
		require.NotNil(t, resolved)
		assert.Equal(t, user.ID, resolved.ID)
		return nil
	})(c)

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestResolveIdentityRejectsMissingHeader(t *testing.T) {
	setupTestDB(t)
	c, _ := newContext(nil)

	err := ResolveIdentity()(func(c echo.Context) error { return nil })(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestResolveIdentityRejectsUnknownAndInactiveUsers(t *testing.T) {
	setupTestDB(t)
	inactive := seedUser(t, models.RoleMember, false)

	// The deactivated flag must survive the insert for the rejection to work
	var persisted models.User
	require.NoError(t, db.DB.First(&persisted, "id = ?", inactive.ID).Error)
	assert.False(t, persisted.IsActive, "user seeded as deactivated was persisted as active")

	for _, id := range []string{"00000000-0000-0000-0000-000000000000", inactive.ID} {
		c, _ := newContext(map[string]string{HeaderUserID: id})
		err := ResolveIdentity()(func(c echo.Context) error { return nil })(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	}
}

func TestRequireRole(t *testing.T) {
	setupTestDB(t)
	member := seedUser(t, models.RoleMember, true)
	admin := seedUser(t, models.RoleAdmin, true)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	c, _ := newContext(nil)
	c.Set(ContextKeyUser, member)
	err := RequireRole(models.RoleAdmin)(next)(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)

	c, rec := newContext(nil)
	c.Set(ContextKeyUser, admin)
	err = RequireRole(models.RoleAdmin)(next)(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCompanyScopedQuery(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t, models.RoleMember, true)
	other := seedUser(t, models.RoleMember, true)

	c, _ := newContext(nil)
	c.Set(ContextKeyUser, user)

	var users []models.User
	require.NoError(t, GetCompanyScopedQuery(c, db.DB).Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, user.ID, users[0].ID)
	assert.NotEqual(t, other.CompanyID, users[0].CompanyID)
}

func TestGetCompanyScopedQueryWithoutUserMatchesNothing(t *testing.T) {
	setupTestDB(t)
	seedUser(t, models.RoleMember, true)

	c, _ := newContext(nil)

	var users []models.User
	require.NoError(t, GetCompanyScopedQuery(c, db.DB).Find(&users).Error)
	assert.Empty(t, users)
}

func TestHasRole(t *testing.T) {
	c, _ := newContext(nil)
	assert.False(t, HasRole(c, models.RoleAdmin))

	c.Set(ContextKeyUser, &models.User{Role: models.RoleAdmin})
	assert.True(t, HasRole(c, models.RoleAdmin))
	assert.False(t, HasRole(c, "superadmin"))
}
