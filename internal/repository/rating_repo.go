// /internal/repository/rating_repo.go
package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ericoliveiras/avalia-loja/internal/apperr"
	"github.com/ericoliveiras/avalia-loja/internal/model"
)

// RatingStats é a soma e a contagem das notas de uma loja.
type RatingStats struct {
	StoreID uint
	Total   int64
	Count   int64
}

type RatingRepo struct{ db *gorm.DB }

func NewRatingRepo(db *gorm.DB) *RatingRepo {
	return &RatingRepo{db: db}
}

// Upsert grava a nota do usuário para a loja. Se já existir uma linha para o
// par (user_id, store_id), nota e datas são substituídas no lugar. A
// atomicidade fica a cargo do ON CONFLICT sobre o índice único, e a linha
// devolvida vem do RETURNING da própria instrução.
func (r *RatingRepo) Upsert(ctx context.Context, rating *model.Rating) error {
	err := r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "created_at", "updated_at"}),
		},
		clause.Returning{},
	).Create(rating).Error
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Stats soma as notas atuais da loja. Loja sem notas devolve zeros.
func (r *RatingRepo) Stats(ctx context.Context, storeID uint) (RatingStats, error) {
	var rows []RatingStats
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("store_id, COALESCE(SUM(rating), 0) AS total, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Group("store_id").
		Scan(&rows).Error
	if err != nil {
		return RatingStats{}, apperr.Internal(err)
	}
	if len(rows) == 0 {
		return RatingStats{StoreID: storeID}, nil
	}
	return rows[0], nil
}

// StatsByStore faz o mesmo que Stats para várias lojas numa só consulta.
// Lojas sem notas ficam fora do mapa.
func (r *RatingRepo) StatsByStore(ctx context.Context, storeIDs []uint) (map[uint]RatingStats, error) {
	out := make(map[uint]RatingStats, len(storeIDs))
	if len(storeIDs) == 0 {
		return out, nil
	}
	var rows []RatingStats
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("store_id, COALESCE(SUM(rating), 0) AS total, COUNT(*) AS count").
		Where("store_id IN ?", storeIDs).
		Group("store_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for _, row := range rows {
		out[row.StoreID] = row
	}
	return out, nil
}

// UserValues devolve as notas que o usuário deu para as lojas informadas.
func (r *RatingRepo) UserValues(ctx context.Context, userID uint, storeIDs []uint) (map[uint]int, error) {
	out := make(map[uint]int)
	if len(storeIDs) == 0 {
		return out, nil
	}
	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id IN ?", userID, storeIDs).
		Find(&ratings).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for _, rt := range ratings {
		out[rt.StoreID] = rt.Value
	}
	return out, nil
}

// ListByStore lista as notas da loja com o autor, mais recentes primeiro.
func (r *RatingRepo) ListByStore(ctx context.Context, storeID uint) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return ratings, nil
}

func (r *RatingRepo) CountByStore(ctx context.Context, storeID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Rating{}).Where("store_id = ?", storeID).Count(&n).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}

func (r *RatingRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Rating{}).Count(&n).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}
