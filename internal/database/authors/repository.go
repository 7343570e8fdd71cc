// Package authors provides database operations for catalog authors.
package authors

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an author; the store assigns id_author.
func (r *Repository) Create(ctx context.Context, author *entities.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

// GetByID retrieves an author by id_author.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.WithContext(ctx).First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

// List returns every author in insertion order.
func (r *Repository) List(ctx context.Context) ([]entities.Author, error) {
	authors := []entities.Author{}
	err := r.db.WithContext(ctx).Order("id_author ASC").Find(&authors).Error
	return authors, err
}

// Update loads the author, lets apply overlay the requested changes and
// writes every column back.
func (r *Repository) Update(ctx context.Context, id uint, apply func(*entities.Author) error) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&author, id).Error; err != nil {
			return err
		}
		if err := apply(&author); err != nil {
			return err
		}
		author.ID = id
		return tx.Save(&author).Error
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Delete removes the author and its book credits, returning the row as it
// was before deletion.
func (r *Repository) Delete(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&author, id).Error; err != nil {
			return err
		}
		if err := tx.Where("fk_id_author = ?", id).Delete(&entities.BookAuthor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Author{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}
