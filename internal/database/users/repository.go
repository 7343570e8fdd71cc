// Package users provides database operations for catalog users.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByID(ctx, id)
package users

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a user unless another row already holds the same email.
func (r *Repository) Create(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := emailTaken(tx, user.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(user).Error
	})
}

// GetByID retrieves a user by id_user.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns every user in insertion order.
func (r *Repository) List(ctx context.Context) ([]entities.User, error) {
	users := []entities.User{}
	err := r.db.WithContext(ctx).Order("id_user ASC").Find(&users).Error
	return users, err
}

// Update loads the user, lets apply overlay the requested changes and writes
// every column back.
func (r *Repository) Update(ctx context.Context, id uint, apply func(*entities.User) error) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		previousEmail := user.Email
		if err := apply(&user); err != nil {
			return err
		}
		user.ID = id

		if user.Email != previousEmail {
			taken, err := emailTaken(tx, user.Email, id)
			if err != nil {
				return err
			}
			if taken {
				return gorm.ErrDuplicatedKey
			}
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user and its library links, returning the row as it
// was before deletion.
func (r *Repository) Delete(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if err := tx.Where("fk_id_user = ?", id).Delete(&entities.UserBook{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.User{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func emailTaken(tx *gorm.DB, email string, exceptID uint) (bool, error) {
	var existing entities.User
	query := tx.Where("email = ?", email)
	if exceptID > 0 {
		query = query.Where("id_user <> ?", exceptID)
	}
	err := query.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
