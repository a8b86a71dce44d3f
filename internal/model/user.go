// /internal/model/user.go
package model

import "time"

// Role é o papel de um usuário no sistema. Os papéis são mutuamente
// exclusivos: não existe herança entre eles.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
	RoleStoreOwner Role = "STORE_OWNER"
)

// ParseRole converte uma string externa em Role. Retorna false para valores
// desconhecidos.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return Role(s), true
	}
	return "", false
}

// Valid informa se o papel pertence ao conjunto fechado de papéis.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;size:60" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null;size:320" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Address      string    `gorm:"size:400" json:"address"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}
