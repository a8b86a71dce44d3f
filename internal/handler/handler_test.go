// /internal/handler/handler_test.go
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ericoliveiras/avalia-loja/internal/auth"
	"github.com/ericoliveiras/avalia-loja/internal/model"
	"github.com/ericoliveiras/avalia-loja/internal/repository"
	"github.com/ericoliveiras/avalia-loja/internal/service"
	"github.com/ericoliveiras/avalia-loja/internal/testutil"
)

const testCookie = "auth-token"

type testApp struct {
	router *gin.Engine
	users  *repository.UserRepo
	stores *repository.StoreRepo
	tokens *auth.TokenIssuer
}

// setupTestRouter monta o roteador completo sobre um SQLite temporário.
func setupTestRouter(t *testing.T) *testApp {
	t.Helper()
	return setupTestRouterWith(t, nil)
}

// setupTestRouterWith permite ajustar a RouterConfig antes de montar o roteador.
func setupTestRouterWith(t *testing.T, tweak func(*RouterConfig)) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	log := testutil.Logger()
	users := repository.NewUserRepo(db)
	stores := repository.NewStoreRepo(db)
	ratings := repository.NewRatingRepo(db)
	hasher := auth.NewPasswordHasher(auth.DefaultCost)
	tokens := auth.NewTokenIssuer("segredo-de-teste", time.Hour)

	ratingSvc := service.NewRatingService(ratings, stores)
	directory := service.NewDirectoryService(users, stores, ratings, ratingSvc)

	rc := RouterConfig{
		DB:  db,
		Log: log,
		Auth: &AuthHandler{
			Accounts: service.NewAccountService(users, hasher, tokens),
			Cookie:   CookieConfig{Name: testCookie, TTL: time.Hour},
			Log:      log,
		},
		Stores: &StoreHandler{Directory: directory, Ratings: ratingSvc, Log: log},
		Admin: &AdminHandler{
			Admin:     service.NewAdminService(users, stores, ratings, hasher),
			Directory: directory,
			Log:       log,
		},
	}
	if tweak != nil {
		tweak(&rc)
	}
	router := NewRouter(rc)
	return &testApp{router: router, users: users, stores: stores, tokens: tokens}
}

// login cria um usuário com o papel pedido e devolve um token válido para ele.
// O hash é fictício, então esse usuário não consegue usar /login.
func (a *testApp) login(t *testing.T, email string, role model.Role) (*model.User, string) {
	t.Helper()
	u := &model.User{Name: "Usuario de Teste do Handler", Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, a.users.Create(context.Background(), u))
	tok, err := a.tokens.Issue(u.ID, u.Role)
	require.NoError(t, err)
	return u, tok
}

func (a *testApp) store(t *testing.T, name, email string) *model.Store {
	t.Helper()
	owner := &model.User{Name: "Dono da Loja de Teste", Email: email, PasswordHash: "x"}
	st := &model.Store{Name: name, Email: email, Address: "Rua de Teste"}
	require.NoError(t, a.stores.CreateWithOwner(context.Background(), owner, st))
	return st
}

// do executa a requisição. token vazio significa sem cookie.
func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func newJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(a *testApp, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}
