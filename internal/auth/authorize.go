// /internal/auth/authorize.go
package auth

import (
	"github.com/ericoliveiras/avalia-loja/internal/apperr"
	"github.com/ericoliveiras/avalia-loja/internal/model"
)

// Authorize exige papel idêntico ao requerido. Sem usuário o resultado é
// erro de autenticação; com papel diferente, erro de autorização.
func Authorize(u *model.User, required model.Role) error {
	if u == nil {
		return apperr.Unauthenticated("Não autenticado.")
	}
	switch required {
	case model.RoleAdmin, model.RoleUser, model.RoleStoreOwner:
		if u.Role == required {
			return nil
		}
	}
	return apperr.Forbidden("Acesso negado.")
}
