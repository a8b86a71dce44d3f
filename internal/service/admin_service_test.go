package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericoliveiras/avalia-loja/internal/apperr"
	"github.com/ericoliveiras/avalia-loja/internal/model"
	"github.com/ericoliveiras/avalia-loja/internal/service"
)

func TestAdminCreateUserRoles(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u, err := e.admin.CreateUser(ctx, service.CreateUserInput{
		Name: "Administrador Secundario", Email: "adm2@x.com", Password: "Admin@123", Role: "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)

	for _, role := range []string{"STORE_OWNER", "GERENTE", ""} {
		_, err := e.admin.CreateUser(ctx, service.CreateUserInput{
			Name: "Alguem Com Papel Invalido", Email: "x@x.com", Password: "Admin@123", Role: role,
		})
		assert.True(t, apperr.Is(err, apperr.KindValidation), "papel %q", role)
	}
}

func TestAdminCreateStore(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	st, err := e.admin.CreateStore(ctx, service.CreateStoreInput{
		Name:          "Loja Nova",
		Email:         "Nova@Loja.com",
		Address:       "Rua Nova, 1",
		OwnerName:     "Dono da Loja Nova Ltda",
		OwnerPassword: "Dono@1234",
	})
	require.NoError(t, err)
	require.NotNil(t, st.Owner)
	assert.Equal(t, model.RoleStoreOwner, st.Owner.Role)
	assert.Equal(t, "nova@loja.com", st.Email)

	_, tok, err := e.account.Login(ctx, "nova@loja.com", "Dono@1234")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
}

func TestAdminCreateStoreConflicts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.store(t, "Existente", "existe@x.com", "")
	e.user(t, "Usuario Comum Existente", "usuario@x.com", model.RoleUser)

	for _, email := range []string{"existe@x.com", "usuario@x.com"} {
		_, err := e.admin.CreateStore(ctx, service.CreateStoreInput{
			Name: "Outra", Email: email, OwnerName: "Dono Qualquer da Outra", OwnerPassword: "Dono@1234",
		})
		assert.True(t, apperr.Is(err, apperr.KindConflict), email)
	}

	stats, err := e.admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalStores)
}

func TestAdminDashboard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	st := e.store(t, "Loja", "loja@x.com", "")
	users := e.raters(t, 2)
	for _, u := range users {
		_, err := e.rating.Submit(ctx, u.ID, st.ID, 4)
		require.NoError(t, err)
	}

	stats, err := e.admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.DashboardStats{TotalUsers: 3, TotalStores: 1, TotalRatings: 2}, stats)
}
