// /internal/repository/store_repo.go
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ericoliveiras/avalia-loja/internal/apperr"
	"github.com/ericoliveiras/avalia-loja/internal/model"
)

const msgStoreNotFound = "Loja não encontrada."

// StoreFilter restringe a listagem de lojas. Search casa com nome e
// endereço, e também com o e-mail quando IncludeEmail é verdadeiro.
type StoreFilter struct {
	Search       string
	IncludeEmail bool
	WithOwner    bool
}

type StoreRepo struct{ db *gorm.DB }

func NewStoreRepo(db *gorm.DB) *StoreRepo {
	return &StoreRepo{db: db}
}

// CreateWithOwner cria o dono (papel STORE_OWNER) e a loja numa única
// transação. Se qualquer inserção falhar nada é gravado.
func (r *StoreRepo) CreateWithOwner(ctx context.Context, owner *model.User, store *model.Store) error {
	owner.Role = model.RoleStoreOwner
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(owner).Error; err != nil {
			if isDuplicate(err) {
				return apperr.Conflict("Já existe um usuário com este e-mail.")
			}
			return err
		}
		store.OwnerID = owner.ID
		if err := tx.Create(store).Error; err != nil {
			if isDuplicate(err) {
				return apperr.Conflict("Já existe uma loja com este e-mail.")
			}
			return err
		}
		return nil
	})
	if err != nil {
		owner.ID, store.ID, store.OwnerID = 0, 0, 0
		return translate(err, msgStoreNotFound)
	}
	store.Owner = owner
	return nil
}

func (r *StoreRepo) ByID(ctx context.Context, id uint) (*model.Store, error) {
	var s model.Store
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err, msgStoreNotFound)
	}
	return &s, nil
}

func (r *StoreRepo) ByOwnerID(ctx context.Context, ownerID uint) (*model.Store, error) {
	var s model.Store
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&s).Error; err != nil {
		return nil, translate(err, msgStoreNotFound)
	}
	return &s, nil
}

// ByOwnerIDs devolve as lojas dos donos informados, indexadas pelo dono.
func (r *StoreRepo) ByOwnerIDs(ctx context.Context, ownerIDs []uint) (map[uint]model.Store, error) {
	out := make(map[uint]model.Store, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	var stores []model.Store
	if err := r.db.WithContext(ctx).Where("owner_id IN ?", ownerIDs).Find(&stores).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	for _, s := range stores {
		out[s.OwnerID] = s
	}
	return out, nil
}

func (r *StoreRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Store{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

func (r *StoreRepo) List(ctx context.Context, f StoreFilter, s Sort) ([]model.Store, error) {
	q := r.db.WithContext(ctx).Model(&model.Store{})
	if f.Search != "" {
		p := likePattern(f.Search)
		if f.IncludeEmail {
			q = q.Where(
				`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(address) LIKE ? ESCAPE '\')`,
				p, p, p,
			)
		} else {
			q = q.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(address) LIKE ? ESCAPE '\')`, p, p)
		}
	}
	if f.WithOwner {
		q = q.Preload("Owner")
	}

	var stores []model.Store
	if err := s.apply(q, "stores").Find(&stores).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return stores, nil
}

func (r *StoreRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Store{}).Count(&n).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}
