package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/schemas"
)

type BookService struct {
	store   BookStore
	journal Journal
	now     func() time.Time
}

func NewBookService(store BookStore, journal Journal) *BookService {
	return &BookService{store: store, journal: journalOrNop(journal), now: time.Now}
}

// WithClock replaces the clock used for date_add and date_update.
func (s *BookService) WithClock(now func() time.Time) *BookService {
	s.now = now
	return s
}

func (s *BookService) today() string {
	return s.now().Format(schemas.DateLayout)
}

func (s *BookService) Create(ctx context.Context, req schemas.BookCreate) (*entities.Book, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, newError(ErrInvalid, "%s", err)
	}

	book := req.ToEntity(s.today())
	if err := s.store.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventCreate, "book", book.ID, "Created book %d", book.ID)
	return book, nil
}

func (s *BookService) Get(ctx context.Context, id uint) (*entities.Book, error) {
	if err := requireID("id_book", id); err != nil {
		return nil, err
	}
	book, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get book", "book", err)
	}
	return book, nil
}

func (s *BookService) List(ctx context.Context) ([]entities.Book, error) {
	books, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Update overlays the supplied fields and stamps date_update with today.
func (s *BookService) Update(ctx context.Context, req schemas.BookUpdate) (*entities.Book, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, newError(ErrInvalid, "%s", err)
	}
	if req.ChangedFields() < 1 {
		return nil, errNeedsChange()
	}

	today := s.today()
	book, err := s.store.Update(ctx, req.ID, func(b *entities.Book) error {
		req.ApplyTo(b)
		b.DateUpdate = today
		return nil
	})
	if err != nil {
		return nil, storeError("update book", "book", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventUpdate, "book", book.ID, "Updated %d field(s) of book %d", req.ChangedFields(), book.ID)
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id uint) (*entities.Book, error) {
	if err := requireID("id_book", id); err != nil {
		return nil, err
	}
	book, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, storeError("delete book", "book", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventDelete, "book", id, "Deleted book %d", id)
	return book, nil
}
