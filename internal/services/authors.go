package services

import (
	"context"
	"fmt"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/schemas"
)

type AuthorService struct {
	store   AuthorStore
	journal Journal
}

func NewAuthorService(store AuthorStore, journal Journal) *AuthorService {
	return &AuthorService{store: store, journal: journalOrNop(journal)}
}

func (s *AuthorService) Create(ctx context.Context, req schemas.AuthorCreate) (*entities.Author, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, newError(ErrInvalid, "%s", err)
	}

	author := req.ToEntity()
	if err := s.store.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventCreate, "author", author.ID, "Created author %d", author.ID)
	return author, nil
}

func (s *AuthorService) Get(ctx context.Context, id uint) (*entities.Author, error) {
	if err := requireID("id_author", id); err != nil {
		return nil, err
	}
	author, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get author", "author", err)
	}
	return author, nil
}

func (s *AuthorService) List(ctx context.Context) ([]entities.Author, error) {
	authors, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (s *AuthorService) Update(ctx context.Context, req schemas.AuthorUpdate) (*entities.Author, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, newError(ErrInvalid, "%s", err)
	}
	if req.ChangedFields() < 1 {
		return nil, errNeedsChange()
	}

	author, err := s.store.Update(ctx, req.ID, func(a *entities.Author) error {
		req.ApplyTo(a)
		return nil
	})
	if err != nil {
		return nil, storeError("update author", "author", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventUpdate, "author", author.ID, "Updated %d field(s) of author %d", req.ChangedFields(), author.ID)
	return author, nil
}

func (s *AuthorService) Delete(ctx context.Context, id uint) (*entities.Author, error) {
	if err := requireID("id_author", id); err != nil {
		return nil, err
	}
	author, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, storeError("delete author", "author", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventDelete, "author", id, "Deleted author %d", id)
	return author, nil
}
