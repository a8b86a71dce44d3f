// /internal/handler/admin_handler_test.go
package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericoliveiras/avalia-loja/internal/model"
)

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app := setupTestRouter(t)
	_, userTok := app.login(t, "cliente@x.com", model.RoleUser)
	_, adminTok := app.login(t, "admin@x.com", model.RoleAdmin)

	for _, path := range []string{"/admin/dashboard", "/admin/users", "/admin/stores"} {
		assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodGet, path, "", nil).Code, path)
		assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodGet, path, userTok, nil).Code, path)
		assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, path, adminTok, nil).Code, path)
	}
}

func TestAdminCreateStoreFlow(t *testing.T) {
	app := setupTestRouter(t)
	_, adminTok := app.login(t, "admin@x.com", model.RoleAdmin)

	body := map[string]any{
		"name":          "Loja do Bairro",
		"email":         "bairro@x.com",
		"address":       "Praca Central, 1",
		"ownerName":     "Proprietario da Loja do Bairro",
		"ownerPassword": "Dono@1234",
	}
	rec := app.do(t, http.MethodPost, "/admin/stores", adminTok, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	store := decode(t, rec)["store"].(map[string]any)
	owner := store["owner"].(map[string]any)
	assert.Equal(t, "STORE_OWNER", owner["role"])

	// mesmo e-mail outra vez: conflito e nada novo gravado
	rec = app.do(t, http.MethodPost, "/admin/stores", adminTok, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// o dono entra com a senha definida pelo administrador
	rec = app.do(t, http.MethodPost, "/login", "", map[string]any{"email": "bairro@x.com", "password": "Dono@1234"})
	require.Equal(t, http.StatusOK, rec.Code)
	ownerTok := decode(t, rec)["token"].(string)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/store-owner/dashboard", ownerTok, nil).Code)

	rec = app.do(t, http.MethodGet, "/admin/dashboard", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.Equal(t, 2.0, stats["totalUsers"])
	assert.Equal(t, 1.0, stats["totalStores"])
	assert.Equal(t, 0.0, stats["totalRatings"])
}

func TestAdminCreateUser(t *testing.T) {
	app := setupTestRouter(t)
	_, adminTok := app.login(t, "admin@x.com", model.RoleAdmin)

	body := map[string]any{
		"name":     "Novo Administrador do Sistema",
		"email":    "novo.admin@x.com",
		"password": "Admin@123",
		"role":     "ADMIN",
	}
	rec := app.do(t, http.MethodPost, "/admin/users", adminTok, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "ADMIN", decode(t, rec)["user"].(map[string]any)["role"])

	body["email"] = "dono@x.com"
	body["role"] = "STORE_OWNER"
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodPost, "/admin/users", adminTok, body).Code)
}

func TestAdminListUsersFilters(t *testing.T) {
	app := setupTestRouter(t)
	_, adminTok := app.login(t, "admin@x.com", model.RoleAdmin)
	for i := 0; i < 3; i++ {
		app.login(t, fmt.Sprintf("cliente%d@x.com", i), model.RoleUser)
	}
	st := app.store(t, "Loja Filtrada", "filtrada@x.com")

	rec := app.do(t, http.MethodGet, "/admin/users?role=USER&sortBy=email&sortOrder=desc", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode(t, rec)["users"].([]any)
	require.Len(t, users, 3)
	assert.Equal(t, "cliente2@x.com", users[0].(map[string]any)["email"])

	rec = app.do(t, http.MethodGet, "/admin/users?search=filtrada", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users = decode(t, rec)["users"].([]any)
	require.Len(t, users, 1)
	assert.Contains(t, users[0].(map[string]any), "storeRating")

	rec = app.do(t, http.MethodGet, "/admin/users?role=CHEFE", adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/admin/users/%d", st.OwnerID), adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "STORE_OWNER", decode(t, rec)["user"].(map[string]any)["role"])

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/admin/users/9999", adminTok, nil).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/admin/users/abc", adminTok, nil).Code)
}

func TestAdminListStoresIncludesOwner(t *testing.T) {
	app := setupTestRouter(t)
	_, adminTok := app.login(t, "admin@x.com", model.RoleAdmin)
	app.store(t, "Loja Listada", "listada@x.com")

	rec := app.do(t, http.MethodGet, "/admin/stores?search=listada@", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stores := decode(t, rec)["stores"].([]any)
	require.Len(t, stores, 1)
	owner := stores[0].(map[string]any)["owner"].(map[string]any)
	assert.Equal(t, "listada@x.com", owner["email"])
}
