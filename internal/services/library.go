package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/database/links"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/schemas"
)

// LibraryService manages the User_Book and Book_Author links.
type LibraryService struct {
	store   LinkStore
	journal Journal
}

func NewLibraryService(store LinkStore, journal Journal) *LibraryService {
	return &LibraryService{store: store, journal: journalOrNop(journal)}
}

// AddBook places a book in a user's library.
func (s *LibraryService) AddBook(ctx context.Context, req schemas.UserBookLink) (*entities.UserBook, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, newError(ErrInvalid, "%s", err)
	}
	link, err := s.store.AddUserBook(ctx, req.UserID, req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(ErrConflict, "the book is already in the user's library")
		}
		return nil, linkError("add book to library", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventLink, "user_book", link.ID, "Added book %d to the library of user %d", req.BookID, req.UserID)
	return link, nil
}

// RemoveBook takes a book out of a user's library.
func (s *LibraryService) RemoveBook(ctx context.Context, userID, bookID uint) error {
	if err := requireID("id_user", userID); err != nil {
		return err
	}
	if err := requireID("id_book", bookID); err != nil {
		return err
	}
	if err := s.store.RemoveUserBook(ctx, userID, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotMember, "the book is not in the user's library")
		}
		return fmt.Errorf("remove book from library: %w", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventUnlink, "user_book", userID, "Removed book %d from the library of user %d", bookID, userID)
	return nil
}

// Books lists a user's library in the order the books were added.
func (s *LibraryService) Books(ctx context.Context, userID uint) ([]entities.Book, error) {
	if err := requireID("id_user", userID); err != nil {
		return nil, err
	}
	books, err := s.store.ListUserBooks(ctx, userID)
	if err != nil {
		return nil, linkError("list library", err)
	}
	return books, nil
}

// AddAuthor credits an author on a book.
func (s *LibraryService) AddAuthor(ctx context.Context, req schemas.BookAuthorLink) (*entities.BookAuthor, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, newError(ErrInvalid, "%s", err)
	}
	link, err := s.store.AddBookAuthor(ctx, req.BookID, req.AuthorID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(ErrConflict, "the author is already credited on the book")
		}
		return nil, linkError("credit author", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventLink, "book_author", link.ID, "Credited author %d on book %d", req.AuthorID, req.BookID)
	return link, nil
}

func (s *LibraryService) RemoveAuthor(ctx context.Context, bookID, authorID uint) error {
	if err := requireID("id_book", bookID); err != nil {
		return err
	}
	if err := requireID("id_author", authorID); err != nil {
		return err
	}
	if err := s.store.RemoveBookAuthor(ctx, bookID, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(ErrNotMember, "the author is not credited on the book")
		}
		return fmt.Errorf("remove author credit: %w", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventUnlink, "book_author", bookID, "Removed author %d from book %d", authorID, bookID)
	return nil
}

// Authors lists the authors credited on a book.
func (s *LibraryService) Authors(ctx context.Context, bookID uint) ([]entities.Author, error) {
	if err := requireID("id_book", bookID); err != nil {
		return nil, err
	}
	authors, err := s.store.ListBookAuthors(ctx, bookID)
	if err != nil {
		return nil, linkError("list book authors", err)
	}
	return authors, nil
}

func linkError(op string, err error) error {
	switch {
	case errors.Is(err, links.ErrUserMissing):
		return errMissing("user")
	case errors.Is(err, links.ErrBookMissing):
		return errMissing("book")
	case errors.Is(err, links.ErrAuthorMissing):
		return errMissing("author")
	}
	return fmt.Errorf("%s: %w", op, err)
}
