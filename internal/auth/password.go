// /internal/auth/password.go
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost é o custo de bcrypt usado quando nenhum outro é configurado.
const DefaultCost = 12

// PasswordHasher gera e confere hashes bcrypt com custo fixo.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher cria um hasher; custos abaixo de DefaultCost são elevados
// para DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < DefaultCost {
		cost = DefaultCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Cost() int { return h.cost }

// Hash devolve o hash salgado da senha.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara a senha com o hash. Hash malformado resulta em false.
func (h *PasswordHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
