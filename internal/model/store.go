// /internal/model/store.go
package model

import "time"

// Store é uma loja avaliável. Toda loja pertence a exatamente um usuário
// com papel STORE_OWNER.
type Store struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null;size:320" json:"email"`
	Address   string    `gorm:"size:400" json:"address"`
	OwnerID   uint      `gorm:"uniqueIndex;not null" json:"ownerId"`
	Owner     *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
