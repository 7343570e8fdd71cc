package services

import (
	"context"

	"github.com/mrlokans/library/internal/entities"
)

// UserStore is implemented by database/users.Repository.
type UserStore interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uint) (*entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	Update(ctx context.Context, id uint, apply func(*entities.User) error) (*entities.User, error)
	Delete(ctx context.Context, id uint) (*entities.User, error)
}

// BookStore is implemented by database/books.Repository.
type BookStore interface {
	Create(ctx context.Context, book *entities.Book) error
	GetByID(ctx context.Context, id uint) (*entities.Book, error)
	List(ctx context.Context) ([]entities.Book, error)
	Update(ctx context.Context, id uint, apply func(*entities.Book) error) (*entities.Book, error)
	Delete(ctx context.Context, id uint) (*entities.Book, error)
}

// AuthorStore is implemented by database/authors.Repository.
type AuthorStore interface {
	Create(ctx context.Context, author *entities.Author) error
	GetByID(ctx context.Context, id uint) (*entities.Author, error)
	List(ctx context.Context) ([]entities.Author, error)
	Update(ctx context.Context, id uint, apply func(*entities.Author) error) (*entities.Author, error)
	Delete(ctx context.Context, id uint) (*entities.Author, error)
}

// LinkStore is implemented by database/links.Repository.
type LinkStore interface {
	AddUserBook(ctx context.Context, userID, bookID uint) (*entities.UserBook, error)
	RemoveUserBook(ctx context.Context, userID, bookID uint) error
	ListUserBooks(ctx context.Context, userID uint) ([]entities.Book, error)
	AddBookAuthor(ctx context.Context, bookID, authorID uint) (*entities.BookAuthor, error)
	RemoveBookAuthor(ctx context.Context, bookID, authorID uint) error
	ListBookAuthors(ctx context.Context, bookID uint) ([]entities.Author, error)
}

// PasswordHasher turns a plaintext password into its stored form.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Journal records catalog changes. Implementations must not block the
// caller on delivery failures.
type Journal interface {
	Record(ctx context.Context, event *entities.AuditEvent)
}
