// /internal/service/rating_service.go
package service

import (
	"context"
	"math"
	"time"

	"github.com/ericoliveiras/avalia-loja/internal/apperr"
	"github.com/ericoliveiras/avalia-loja/internal/model"
	"github.com/ericoliveiras/avalia-loja/internal/repository"
)

// Aggregate é a média (uma casa decimal) e a quantidade de notas de uma loja.
type Aggregate struct {
	Average float64 `json:"averageRating"`
	Count   int64   `json:"totalRatings"`
}

func aggregateOf(st repository.RatingStats) Aggregate {
	if st.Count == 0 {
		return Aggregate{}
	}
	avg := float64(st.Total) / float64(st.Count)
	return Aggregate{Average: math.Round(avg*10) / 10, Count: st.Count}
}

type RatingService struct {
	ratings *repository.RatingRepo
	stores  *repository.StoreRepo
}

func NewRatingService(ratings *repository.RatingRepo, stores *repository.StoreRepo) *RatingService {
	return &RatingService{ratings: ratings, stores: stores}
}

// Submit grava (ou substitui) a nota do usuário para a loja.
func (s *RatingService) Submit(ctx context.Context, userID, storeID uint, value int) (*model.Rating, error) {
	if value < model.MinRating || value > model.MaxRating {
		return nil, apperr.Validation("A nota deve estar entre 1 e 5.")
	}
	if _, err := s.stores.ByID(ctx, storeID); err != nil {
		return nil, err
	}

	rating := &model.Rating{UserID: userID, StoreID: storeID, Value: value}
	if err := s.ratings.Upsert(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// Aggregate recalcula a média da loja a partir das linhas atuais.
func (s *RatingService) Aggregate(ctx context.Context, storeID uint) (Aggregate, error) {
	st, err := s.ratings.Stats(ctx, storeID)
	if err != nil {
		return Aggregate{}, err
	}
	return aggregateOf(st), nil
}

// AggregateMany faz o mesmo que Aggregate para várias lojas. Toda loja
// pedida aparece no mapa, com zeros quando não tem notas.
func (s *RatingService) AggregateMany(ctx context.Context, storeIDs []uint) (map[uint]Aggregate, error) {
	stats, err := s.ratings.StatsByStore(ctx, storeIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[uint]Aggregate, len(storeIDs))
	for _, id := range storeIDs {
		out[id] = aggregateOf(stats[id])
	}
	return out, nil
}

type RaterView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RatingView struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	User      RaterView `json:"user"`
}

type OwnerStoreView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Aggregate
}

type OwnerDashboard struct {
	Store   OwnerStoreView `json:"store"`
	Ratings []RatingView   `json:"ratings"`
}

// OwnerDashboard monta o painel do dono: a média da própria loja e quem a
// avaliou, mais recentes primeiro.
func (s *RatingService) OwnerDashboard(ctx context.Context, ownerID uint) (*OwnerDashboard, error) {
	store, err := s.stores.ByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	agg, err := s.Aggregate(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	views := make([]RatingView, 0, len(ratings))
	for _, r := range ratings {
		v := RatingView{ID: r.ID, Rating: r.Value, CreatedAt: r.CreatedAt}
		if r.User != nil {
			v.User = RaterView{Name: r.User.Name, Email: r.User.Email}
		}
		views = append(views, v)
	}
	return &OwnerDashboard{
		Store:   OwnerStoreView{ID: store.ID, Name: store.Name, Aggregate: agg},
		Ratings: views,
	}, nil
}
