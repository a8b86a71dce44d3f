package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericoliveiras/avalia-loja/internal/auth"
	"github.com/ericoliveiras/avalia-loja/internal/model"
	"github.com/ericoliveiras/avalia-loja/internal/repository"
	"github.com/ericoliveiras/avalia-loja/internal/service"
	"github.com/ericoliveiras/avalia-loja/internal/testutil"
)

type env struct {
	users     *repository.UserRepo
	stores    *repository.StoreRepo
	ratings   *repository.RatingRepo
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenIssuer
	rating    *service.RatingService
	directory *service.DirectoryService
	account   *service.AccountService
	admin     *service.AdminService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	e := &env{
		users:   repository.NewUserRepo(db),
		stores:  repository.NewStoreRepo(db),
		ratings: repository.NewRatingRepo(db),
		hasher:  auth.NewPasswordHasher(auth.DefaultCost),
		tokens:  auth.NewTokenIssuer("segredo-de-teste", auth.DefaultTokenTTL),
	}
	e.rating = service.NewRatingService(e.ratings, e.stores)
	e.directory = service.NewDirectoryService(e.users, e.stores, e.ratings, e.rating)
	e.account = service.NewAccountService(e.users, e.hasher, e.tokens)
	e.admin = service.NewAdminService(e.users, e.stores, e.ratings, e.hasher)
	return e
}

// user grava um usuário sem passar pelo bcrypt.
func (e *env) user(t *testing.T, name, email string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *env) store(t *testing.T, name, email, address string) *model.Store {
	t.Helper()
	owner := &model.User{Name: "Dono da " + name, Email: email, PasswordHash: "x"}
	st := &model.Store{Name: name, Email: email, Address: address}
	require.NoError(t, e.stores.CreateWithOwner(context.Background(), owner, st))
	return st
}

func (e *env) raters(t *testing.T, n int) []*model.User {
	t.Helper()
	out := make([]*model.User, n)
	for i := range out {
		out[i] = e.user(t, fmt.Sprintf("Cliente Avaliador Numero %d", i), fmt.Sprintf("c%d@x.com", i), model.RoleUser)
	}
	return out
}
