// Package links manages the two join tables of the catalog: books placed in
// a user's library (User_Book) and authors credited on a book (Book_Author).
package links

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/entities"
)

// Missing-side errors name which end of a link does not exist.
var (
	ErrUserMissing   = errors.New("user not found")
	ErrBookMissing   = errors.New("book not found")
	ErrAuthorMissing = errors.New("author not found")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddUserBook places a book in a user's library. Both rows must exist and
// the pair must not be linked yet (gorm.ErrDuplicatedKey).
func (r *Repository) AddUserBook(ctx context.Context, userID, bookID uint) (*entities.UserBook, error) {
	link := &entities.UserBook{UserID: userID, BookID: bookID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &entities.User{}, userID, ErrUserMissing); err != nil {
			return err
		}
		if err := requireRow(tx, &entities.Book{}, bookID, ErrBookMissing); err != nil {
			return err
		}
		if err := ensureUnlinked(tx, &entities.UserBook{}, "fk_id_user = ? AND fk_id_book = ?", userID, bookID); err != nil {
			return err
		}
		return tx.Omit("User", "Book").Create(link).Error
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// RemoveUserBook takes a book out of a user's library; gorm.ErrRecordNotFound
// when the pair was never linked.
func (r *Repository) RemoveUserBook(ctx context.Context, userID, bookID uint) error {
	result := r.db.WithContext(ctx).
		Where("fk_id_user = ? AND fk_id_book = ?", userID, bookID).
		Delete(&entities.UserBook{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListUserBooks returns the books in a user's library in the order they were added.
func (r *Repository) ListUserBooks(ctx context.Context, userID uint) ([]entities.Book, error) {
	db := r.db.WithContext(ctx)
	if err := requireRow(db, &entities.User{}, userID, ErrUserMissing); err != nil {
		return nil, err
	}

	books := []entities.Book{}
	err := db.Model(&entities.Book{}).
		Joins("JOIN "+entities.TableUserBook+" ub ON ub.fk_id_book = "+entities.TableBook+".id_book").
		Where("ub.fk_id_user = ?", userID).
		Order("ub.id_user_book ASC").
		Find(&books).Error
	return books, err
}

// AddBookAuthor credits an author on a book.
func (r *Repository) AddBookAuthor(ctx context.Context, bookID, authorID uint) (*entities.BookAuthor, error) {
	link := &entities.BookAuthor{AuthorID: authorID, BookID: bookID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &entities.Book{}, bookID, ErrBookMissing); err != nil {
			return err
		}
		if err := requireRow(tx, &entities.Author{}, authorID, ErrAuthorMissing); err != nil {
			return err
		}
		if err := ensureUnlinked(tx, &entities.BookAuthor{}, "fk_id_book = ? AND fk_id_author = ?", bookID, authorID); err != nil {
			return err
		}
		return tx.Omit("Author", "Book").Create(link).Error
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (r *Repository) RemoveBookAuthor(ctx context.Context, bookID, authorID uint) error {
	result := r.db.WithContext(ctx).
		Where("fk_id_book = ? AND fk_id_author = ?", bookID, authorID).
		Delete(&entities.BookAuthor{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListBookAuthors returns the authors credited on a book in credit order.
func (r *Repository) ListBookAuthors(ctx context.Context, bookID uint) ([]entities.Author, error) {
	db := r.db.WithContext(ctx)
	if err := requireRow(db, &entities.Book{}, bookID, ErrBookMissing); err != nil {
		return nil, err
	}

	authors := []entities.Author{}
	err := db.Model(&entities.Author{}).
		Joins("JOIN "+entities.TableBookAuthor+" ba ON ba.fk_id_author = "+entities.TableAuthor+".id_author").
		Where("ba.fk_id_book = ?", bookID).
		Order("ba.id_book_author ASC").
		Find(&authors).Error
	return authors, err
}

func requireRow(tx *gorm.DB, model any, id uint, missing error) error {
	var count int64
	if err := tx.Model(model).Where(primaryKey(model)+" = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return missing
	}
	return nil
}

func ensureUnlinked(tx *gorm.DB, model any, cond string, args ...any) error {
	var count int64
	if err := tx.Model(model).Where(cond, args...).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return gorm.ErrDuplicatedKey
	}
	return nil
}

func primaryKey(model any) string {
	switch model.(type) {
	case *entities.User:
		return "id_user"
	case *entities.Book:
		return "id_book"
	case *entities.Author:
		return "id_author"
	}
	return "id"
}
