package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/roden1999/money-tracking-app/internal/ledger"
	"github.com/roden1999/money-tracking-app/internal/model"
	"github.com/roden1999/money-tracking-app/internal/store"
)

type userStore struct {
	db *gorm.DB
}

func (us *userStore) Add(ctx context.Context, u *model.User) error {
	if u.Status == "" {
		u.Status = string(ledger.StatusActive)
	}
	return us.db.WithContext(ctx).Create(u).Error
}

func (us *userStore) FindByNameOrEmail(ctx context.Context, name, email string) (*model.User, error) {
	var u model.User
	err := us.db.WithContext(ctx).
		Where("(user_name = ? OR email = ?) AND status = ?", name, email, ledger.StatusActive).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (us *userStore) Get(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	err := us.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, ledger.StatusActive).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (us *userStore) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	res := us.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND status = ?", id, ledger.StatusActive).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
