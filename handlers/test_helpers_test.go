package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"lease_flow_app_go/config"
	"lease_flow_app_go/db"
	"lease_flow_app_go/middleware"
	"lease_flow_app_go/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name to isolate tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Client{},
		&models.Leaser{},
		&models.Offer{},
		&models.EquipmentLine{},
		&models.EquipmentAttribute{},
		&models.EquipmentSpecification{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment: "test",
		PDFRenderer: config.PDFRendererBuiltin,
	})

	return e, c, rec
}

// seedCompanyAndUser creates a tenant with one user of the given role and
// puts the user in the request context
func seedCompanyAndUser(t *testing.T, c echo.Context, role string) (*models.Company, *models.User) {
	company := &models.Company{Name: "LeaseFlow SAS"}
	assert.NoError(t, db.DB.Create(company).Error)

	user := &models.User{
		Name:      "Test Operator",
		Email:     uuid.New().String() + "@leaseflow.example",
		Role:      role,
		IsActive:  true,
		CompanyID: company.ID,
	}
	assert.NoError(t, db.DB.Create(user).Error)

	c.Set(middleware.ContextKeyUser, user)
	return company, user
}

// seedOffer creates a complete offer tree for the company
func seedOffer(t *testing.T, company *models.Company) *models.Offer {
	client := &models.Client{CompanyID: company.ID, Name: "Marie Dupont"}
	assert.NoError(t, db.DB.Create(client).Error)

	purchase1, purchase2, purchase3 := 100.0, 200.0, 300.0
	margin1, margin2, margin3 := 5.0, 10.0, 15.0
	duration := 36

	offer := &models.Offer{
		CompanyID:      company.ID,
		ClientID:       client.ID,
		DurationMonths: &duration,
		Equipment: []models.EquipmentLine{
			{Position: 0, Title: "MacBook Pro 14", Quantity: 1, MonthlyPayment: 10, PurchasePrice: &purchase1, Margin: &margin1,
				Attributes: []models.EquipmentAttribute{{Key: "couleur", Value: "gris sidéral"}}},
			{Position: 1, Title: "Écran 27 pouces", Quantity: 1, MonthlyPayment: 20, PurchasePrice: &purchase2, Margin: &margin2},
			{Position: 2, Title: "Station d'accueil", Quantity: 1, MonthlyPayment: 30, PurchasePrice: &purchase3, Margin: &margin3},
		},
	}
	assert.NoError(t, db.DB.Create(offer).Error)

	return offer
}
