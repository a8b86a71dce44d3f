// /internal/repository/user_repo.go
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ericoliveiras/avalia-loja/internal/apperr"
	"github.com/ericoliveiras/avalia-loja/internal/model"
)

const msgUserNotFound = "Usuário não encontrado."

// UserFilter restringe a listagem de usuários. Search casa, sem diferenciar
// maiúsculas, com nome, e-mail ou endereço.
type UserFilter struct {
	Search string
	Role   model.Role
}

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// WithTx devolve um repositório que opera dentro da transação tx.
func (r *UserRepo) WithTx(tx *gorm.DB) *UserRepo {
	return &UserRepo{db: tx}
}

// Create insere o usuário. E-mail duplicado resulta em erro de conflito e
// nenhuma linha é gravada.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return apperr.Conflict("Já existe um usuário com este e-mail.")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (r *UserRepo) ByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, msgUserNotFound)
	}
	return &u, nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err, msgUserNotFound)
	}
	return &u, nil
}

func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(msgUserNotFound)
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context, f UserFilter, s Sort) ([]model.User, error) {
	q := r.db.WithContext(ctx).Model(&model.User{})
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where(
			`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(address) LIKE ? ESCAPE '\')`,
			p, p, p,
		)
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}

	var users []model.User
	if err := s.apply(q, "users").Find(&users).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}
