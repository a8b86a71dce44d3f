// /internal/model/rating.go
package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating guarda a nota atual de um usuário para uma loja. O índice único
// (user_id, store_id) garante no máximo uma linha por par.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rating_user_store" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	StoreID   uint      `gorm:"not null;uniqueIndex:idx_rating_user_store;index" json:"storeId"`
	Value     int       `gorm:"column:rating;not null;check:chk_ratings_range,rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
