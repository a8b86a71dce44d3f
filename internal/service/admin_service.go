// /internal/service/admin_service.go
package service

import (
	"context"
	"strings"

	"github.com/ericoliveiras/avalia-loja/internal/apperr"
	"github.com/ericoliveiras/avalia-loja/internal/auth"
	"github.com/ericoliveiras/avalia-loja/internal/model"
	"github.com/ericoliveiras/avalia-loja/internal/repository"
)

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// CreateStoreInput cria a loja e a conta do dono. O dono usa o mesmo
// e-mail da loja.
type CreateStoreInput struct {
	Name          string
	Email         string
	Address       string
	OwnerName     string
	OwnerPassword string
}

type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

type AdminService struct {
	users   *repository.UserRepo
	stores  *repository.StoreRepo
	ratings *repository.RatingRepo
	hasher  *auth.PasswordHasher
}

func NewAdminService(users *repository.UserRepo, stores *repository.StoreRepo, ratings *repository.RatingRepo, hasher *auth.PasswordHasher) *AdminService {
	return &AdminService{users: users, stores: stores, ratings: ratings, hasher: hasher}
}

// CreateUser cria administradores ou usuários comuns. Donos de loja só
// nascem junto com a loja, em CreateStore.
func (s *AdminService) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	role, ok := model.ParseRole(in.Role)
	if !ok || role == model.RoleStoreOwner {
		return nil, apperr.Validation("Papel inválido: use ADMIN ou USER.")
	}
	return createUser(ctx, s.users, s.hasher, in.Name, in.Email, in.Password, in.Address, role)
}

// CreateStore cria dono e loja na mesma transação.
func (s *AdminService) CreateStore(ctx context.Context, in CreateStoreInput) (*model.Store, error) {
	email := NormalizeEmail(in.Email)

	exists, err := s.stores.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Já existe uma loja com este e-mail.")
	}
	if exists, err = s.users.EmailExists(ctx, email); err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Já existe um usuário com este e-mail.")
	}

	hash, err := s.hasher.Hash(in.OwnerPassword)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	address := strings.TrimSpace(in.Address)
	owner := &model.User{
		Name:         strings.TrimSpace(in.OwnerName),
		Email:        email,
		PasswordHash: hash,
		Address:      address,
	}
	store := &model.Store{
		Name:    strings.TrimSpace(in.Name),
		Email:   email,
		Address: address,
	}
	if err := s.stores.CreateWithOwner(ctx, owner, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *AdminService) Dashboard(ctx context.Context) (DashboardStats, error) {
	var (
		st  DashboardStats
		err error
	)
	if st.TotalUsers, err = s.users.Count(ctx); err != nil {
		return DashboardStats{}, err
	}
	if st.TotalStores, err = s.stores.Count(ctx); err != nil {
		return DashboardStats{}, err
	}
	if st.TotalRatings, err = s.ratings.Count(ctx); err != nil {
		return DashboardStats{}, err
	}
	return st, nil
}
