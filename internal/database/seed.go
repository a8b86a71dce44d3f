// /internal/database/seed.go
package database

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ericoliveiras/avalia-loja/internal/model"
)

// Hasher é o subconjunto do hasher de senhas usado pelo seed.
type Hasher interface {
	Hash(plain string) (string, error)
}

// AdminSeed descreve o administrador criado na inicialização.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// SeedAdmin garante que exista o administrador configurado. Não altera um
// usuário que já exista com o mesmo e-mail.
func SeedAdmin(ctx context.Context, db *gorm.DB, hasher Hasher, seed AdminSeed, log *logrus.Logger) error {
	if seed.Email == "" {
		return nil
	}

	var user model.User
	err := db.WithContext(ctx).Where("email = ?", seed.Email).First(&user).Error
	if err == nil {
		log.WithField("email", seed.Email).Info("Administrador já existe.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.WithField("email", seed.Email).Info("Administrador não encontrado, criando um novo...")
	hash, err := hasher.Hash(seed.Password)
	if err != nil {
		return err
	}

	admin := model.User{
		Name:         seed.Name,
		Email:        seed.Email,
		PasswordHash: hash,
		Address:      seed.Address,
		Role:         model.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	log.Info("Administrador criado com sucesso.")
	return nil
}
