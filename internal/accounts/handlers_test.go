package accounts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"networth-backend/internal/database"
	"networth-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	h := &Handlers{Service: &Service{DB: db}}
	app := fiber.New()
	app.Get("/accounts", h.List)
	app.Post("/accounts", h.Create)
	app.Put("/accounts/:id", h.Update)
	app.Delete("/accounts/:id", h.Delete)
	return app, db
}

func TestCreateAccount_HTTP(t *testing.T) {
	app, db := setupApp(t)

	body := bytes.NewBufferString(`{"name":"Checking","bank":"N26","balance":1200.5}`)
	req := httptest.NewRequest("POST", "/accounts", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var out struct {
		Status string         `json:"status"`
		Data   domain.Account `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, "Checking", out.Data.Name)
	assert.Equal(t, "USD", out.Data.Currency)
	assert.NotEmpty(t, out.Data.ID)

	var count int64
	db.Model(&domain.Account{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateAccount_MissingBank(t *testing.T) {
	app, _ := setupApp(t)

	body := bytes.NewBufferString(`{"name":"Checking"}`)
	req := httptest.NewRequest("POST", "/accounts", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestListAccounts_HTTP(t *testing.T) {
	app, db := setupApp(t)
	require.NoError(t, db.Create(&domain.Account{Name: "A", Bank: "X", Balance: 10, Currency: "USD"}).Error)
	require.NoError(t, db.Create(&domain.Account{Name: "B", Bank: "Y", Balance: 20, Currency: "EUR"}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/accounts", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Data []domain.Account `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Data, 2)
}

func TestUpdateAccount_PartialMerge(t *testing.T) {
	app, db := setupApp(t)
	account := domain.Account{Name: "Old", Bank: "N26", Balance: 100, Currency: "USD"}
	require.NoError(t, db.Create(&account).Error)

	body := bytes.NewBufferString(`{"balance":999}`)
	req := httptest.NewRequest("PUT", fmt.Sprintf("/accounts/%s", account.ID), body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated domain.Account
	require.NoError(t, db.First(&updated, "id = ?", account.ID).Error)
	assert.Equal(t, "Old", updated.Name)
	assert.Equal(t, "N26", updated.Bank)
	assert.InDelta(t, 999, updated.Balance, 1e-9)
}

func TestUpdateAccount_NotFound(t *testing.T) {
	app, _ := setupApp(t)

	body := bytes.NewBufferString(`{"balance":1}`)
	req := httptest.NewRequest("PUT", "/accounts/6dba9dd0-6cf8-4d9e-9a61-78fbbd6ae1bc", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDeleteAccount_HTTP(t *testing.T) {
	app, db := setupApp(t)
	account := domain.Account{Name: "Gone", Bank: "N26", Currency: "USD"}
	require.NoError(t, db.Create(&account).Error)

	resp, err := app.Test(httptest.NewRequest("DELETE", fmt.Sprintf("/accounts/%s", account.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var count int64
	db.Model(&domain.Account{}).Count(&count)
	assert.EqualValues(t, 0, count)

	// deleting again reports not found
	resp, err = app.Test(httptest.NewRequest("DELETE", fmt.Sprintf("/accounts/%s", account.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDeleteAccount_InvalidID(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/accounts/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
