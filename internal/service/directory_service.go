// /internal/service/directory_service.go
package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/ericoliveiras/avalia-loja/internal/apperr"
	"github.com/ericoliveiras/avalia-loja/internal/model"
	"github.com/ericoliveiras/avalia-loja/internal/repository"
)

const sortByAverageRating = "averageRating"

// Campos aceitos em sortBy, com a coluna correspondente.
var (
	userSortColumns = map[string]string{
		"name":      "name",
		"email":     "email",
		"role":      "role",
		"address":   "address",
		"createdAt": "created_at",
	}
	storeSortColumns = map[string]string{
		"name":      "name",
		"email":     "email",
		"address":   "address",
		"createdAt": "created_at",
	}
)

func buildSort(columns map[string]string, sortBy, sortOrder string) repository.Sort {
	col, ok := columns[sortBy]
	if !ok {
		col = "name"
	}
	return repository.Sort{Column: col, Desc: strings.EqualFold(sortOrder, "desc")}
}

type UserQuery struct {
	Search    string
	Role      string
	SortBy    string
	SortOrder string
}

// UserEntry é um usuário da listagem. Donos de loja trazem a média da loja.
type UserEntry struct {
	model.User
	StoreRating *float64 `json:"storeRating"`
}

type StoreQuery struct {
	Search    string
	SortBy    string
	SortOrder string
	// ViewerID, quando diferente de zero, faz cada loja trazer a nota que
	// esse usuário deu.
	ViewerID uint
	// AdminView inclui o e-mail na busca e o resumo do dono no resultado.
	AdminView bool
}

type OwnerSummary struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type StoreEntry struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Address       string        `json:"address"`
	OwnerID       uint          `json:"ownerId"`
	Owner         *OwnerSummary `json:"owner,omitempty"`
	AverageRating float64       `json:"averageRating"`
	TotalRatings  int64         `json:"totalRatings"`
	UserRating    *int          `json:"userRating"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// DirectoryService faz buscas somente-leitura sobre usuários e lojas.
type DirectoryService struct {
	users   *repository.UserRepo
	stores  *repository.StoreRepo
	ratings *repository.RatingRepo
	agg     *RatingService
}

func NewDirectoryService(users *repository.UserRepo, stores *repository.StoreRepo, ratings *repository.RatingRepo, agg *RatingService) *DirectoryService {
	return &DirectoryService{users: users, stores: stores, ratings: ratings, agg: agg}
}

// ListUsers filtra por texto (nome, e-mail ou endereço) e papel exato.
func (s *DirectoryService) ListUsers(ctx context.Context, q UserQuery) ([]UserEntry, error) {
	filter := repository.UserFilter{Search: strings.TrimSpace(q.Search)}
	if q.Role != "" {
		role, ok := model.ParseRole(q.Role)
		if !ok {
			return nil, apperr.Validation("Papel inválido.")
		}
		filter.Role = role
	}

	users, err := s.users.List(ctx, filter, buildSort(userSortColumns, q.SortBy, q.SortOrder))
	if err != nil {
		return nil, err
	}
	return s.withStoreRatings(ctx, users)
}

// GetUser devolve um usuário no mesmo formato da listagem.
func (s *DirectoryService) GetUser(ctx context.Context, id uint) (*UserEntry, error) {
	u, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := s.withStoreRatings(ctx, []model.User{*u})
	if err != nil {
		return nil, err
	}
	return &entries[0], nil
}

func (s *DirectoryService) withStoreRatings(ctx context.Context, users []model.User) ([]UserEntry, error) {
	var ownerIDs []uint
	for _, u := range users {
		if u.Role == model.RoleStoreOwner {
			ownerIDs = append(ownerIDs, u.ID)
		}
	}
	stores, err := s.stores.ByOwnerIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	storeIDs := make([]uint, 0, len(stores))
	for _, st := range stores {
		storeIDs = append(storeIDs, st.ID)
	}
	aggs, err := s.agg.AggregateMany(ctx, storeIDs)
	if err != nil {
		return nil, err
	}

	out := make([]UserEntry, 0, len(users))
	for _, u := range users {
		e := UserEntry{User: u}
		if st, ok := stores[u.ID]; ok {
			if a := aggs[st.ID]; a.Count > 0 {
				avg := a.Average
				e.StoreRating = &avg
			}
		}
		out = append(out, e)
	}
	return out, nil
}

// ListStores lista lojas com a média calculada na hora e, se houver
// ViewerID, a nota do próprio usuário.
func (s *DirectoryService) ListStores(ctx context.Context, q StoreQuery) ([]StoreEntry, error) {
	filter := repository.StoreFilter{
		Search:       strings.TrimSpace(q.Search),
		IncludeEmail: q.AdminView,
		WithOwner:    q.AdminView,
	}
	byAverage := q.SortBy == sortByAverageRating
	srt := buildSort(storeSortColumns, q.SortBy, q.SortOrder)
	if byAverage {
		srt.Column = ""
	}

	stores, err := s.stores.List(ctx, filter, srt)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(stores))
	for _, st := range stores {
		ids = append(ids, st.ID)
	}
	aggs, err := s.agg.AggregateMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	mine := map[uint]int{}
	if q.ViewerID != 0 {
		if mine, err = s.ratings.UserValues(ctx, q.ViewerID, ids); err != nil {
			return nil, err
		}
	}

	out := make([]StoreEntry, 0, len(stores))
	for _, st := range stores {
		a := aggs[st.ID]
		e := StoreEntry{
			ID:            st.ID,
			Name:          st.Name,
			Email:         st.Email,
			Address:       st.Address,
			OwnerID:       st.OwnerID,
			AverageRating: a.Average,
			TotalRatings:  a.Count,
			CreatedAt:     st.CreatedAt,
		}
		if v, ok := mine[st.ID]; ok {
			v := v
			e.UserRating = &v
		}
		if st.Owner != nil {
			e.Owner = &OwnerSummary{Name: st.Owner.Name, Email: st.Owner.Email, Address: st.Owner.Address}
		}
		out = append(out, e)
	}

	if byAverage {
		sort.SliceStable(out, func(i, j int) bool {
			if srt.Desc {
				return out[i].AverageRating > out[j].AverageRating
			}
			return out[i].AverageRating < out[j].AverageRating
		})
	}
	return out, nil
}
