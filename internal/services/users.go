package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/mrlokans/library/internal/auth"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/schemas"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// UserFields are the columns the legacy single-field update may touch.
var UserFields = []string{"first_name", "last_name", "email", "birth_date", "password"}

type UserService struct {
	store   UserStore
	hasher  PasswordHasher
	journal Journal
}

func NewUserService(store UserStore, hasher PasswordHasher, journal Journal) *UserService {
	return &UserService{store: store, hasher: hasher, journal: journalOrNop(journal)}
}

func (s *UserService) Create(ctx context.Context, req schemas.UserCreate) (*entities.User, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, newError(ErrInvalid, "%s", err)
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, errBadEmail()
	}
	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := req.ToEntity()
	user.Password = entities.Secret(hash)
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errEmailTaken()
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventCreate, "user", user.ID, "Created user %d", user.ID)
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*entities.User, error) {
	if err := requireID("id_user", id); err != nil {
		return nil, err
	}
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get user", "user", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]entities.User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update overlays the supplied fields onto the stored user. A new email is
// checked for shape and uniqueness and a new password is re-hashed.
func (s *UserService) Update(ctx context.Context, req schemas.UserUpdate) (*entities.User, error) {
	if err := schemas.Validate(req); err != nil {
		return nil, newError(ErrInvalid, "%s", err)
	}
	if req.ChangedFields() < 1 {
		return nil, errNeedsChange()
	}
	if req.Email != nil && !emailPattern.MatchString(*req.Email) {
		return nil, errBadEmail()
	}

	var hash string
	if req.Password != nil {
		var err error
		if hash, err = s.hash(*req.Password); err != nil {
			return nil, err
		}
	}

	user, err := s.store.Update(ctx, req.ID, func(u *entities.User) error {
		req.ApplyTo(u)
		if hash != "" {
			u.Password = entities.Secret(hash)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errEmailTaken()
		}
		return nil, storeError("update user", "user", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventUpdate, "user", user.ID, "Updated %d field(s) of user %d", req.ChangedFields(), user.ID)
	return user, nil
}

// UpdateField backs the deprecated path-parameter update: feature must name
// one of UserFields and data is its new value.
func (s *UserService) UpdateField(ctx context.Context, id uint, feature, data string) (*entities.User, error) {
	if err := requireID("id_user", id); err != nil {
		return nil, err
	}
	req := schemas.UserUpdate{ID: id}
	switch feature {
	case "first_name":
		req.FirstName = &data
	case "last_name":
		req.LastName = &data
	case "email":
		req.Email = &data
	case "birth_date":
		req.BirthDate = &data
	case "password":
		req.Password = &data
	default:
		return nil, newError(ErrInvalid, "%q is not an updatable user field", feature)
	}
	return s.Update(ctx, req)
}

func (s *UserService) Delete(ctx context.Context, id uint) (*entities.User, error) {
	if err := requireID("id_user", id); err != nil {
		return nil, err
	}
	user, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, storeError("delete user", "user", err)
	}

	recordChange(ctx, s.journal, entities.AuditEventDelete, "user", id, "Deleted user %d", id)
	return user, nil
}

func (s *UserService) hash(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	switch {
	case errors.Is(err, auth.ErrPasswordTooShort), errors.Is(err, auth.ErrPasswordTooLong):
		return "", newError(ErrInvalid, "%s", err)
	case err != nil:
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

func errBadEmail() error {
	return newError(ErrNotAcceptable, "the email is not valid")
}

func errEmailTaken() error {
	return newError(ErrConflict, "this email already exists")
}
