// Package schemas declares the request bodies accepted by the catalog API:
// one create shape and one update shape per resource, plus the link bodies.
// Field rules are validator tags under the "binding" key so gin and the
// services check the same constraints.
package schemas

import (
	"github.com/mrlokans/library/internal/entities"
)

type UserCreate struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=50"`
	Email     string  `json:"email" binding:"required,max=255"`
	BirthDate *string `json:"birth_date" binding:"omitempty,isodate"`
	Password  string  `json:"password" binding:"required,min=8,max=64"`
}

// ToEntity copies everything but the password, which the caller hashes.
func (u UserCreate) ToEntity() *entities.User {
	return &entities.User{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		BirthDate: u.BirthDate,
	}
}

// UserUpdate carries the identity plus any fields to overwrite; nil leaves
// the stored value alone.
type UserUpdate struct {
	ID        uint    `json:"id_user" binding:"required,gt=0"`
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=50"`
	Email     *string `json:"email" binding:"omitempty,max=255"`
	BirthDate *string `json:"birth_date" binding:"omitempty,isodate"`
	Password  *string `json:"password" binding:"omitempty,min=8,max=64"`
}

func (u UserUpdate) ChangedFields() int {
	return countSet(u.FirstName, u.LastName, u.Email, u.BirthDate, u.Password)
}

// ApplyTo overlays the supplied non-secret fields onto user.
func (u UserUpdate) ApplyTo(user *entities.User) {
	overlay(&user.FirstName, u.FirstName)
	overlay(&user.LastName, u.LastName)
	overlay(&user.BirthDate, u.BirthDate)
	if u.Email != nil {
		user.Email = *u.Email
	}
}

type BookCreate struct {
	Title      string              `json:"title" binding:"required,min=1,max=100"`
	ReadingAge entities.ReadingAge `json:"reading_age" binding:"readingage"`
	Pages      int                 `json:"pages" binding:"required,min=1,max=10000"`
	Language   entities.Language   `json:"language" binding:"language"`
	Publisher  *string             `json:"publisher" binding:"omitempty,min=1,max=50"`
	DateAdd    *string             `json:"date_add" binding:"omitempty,isodate"`
}

// ToEntity builds the row; date_add falls back to today and date_update
// starts equal to it.
func (b BookCreate) ToEntity(today string) *entities.Book {
	added := today
	if b.DateAdd != nil {
		added = *b.DateAdd
	}
	return &entities.Book{
		Title:      b.Title,
		ReadingAge: b.ReadingAge,
		Pages:      b.Pages,
		Language:   b.Language,
		Publisher:  b.Publisher,
		DateAdd:    added,
		DateUpdate: added,
	}
}

type BookUpdate struct {
	ID         uint                 `json:"id_book" binding:"required,gt=0"`
	Title      *string              `json:"title" binding:"omitempty,min=1,max=100"`
	ReadingAge *entities.ReadingAge `json:"reading_age" binding:"omitempty,readingage"`
	Pages      *int                 `json:"pages" binding:"omitempty,min=1,max=10000"`
	Language   *entities.Language   `json:"language" binding:"omitempty,language"`
	Publisher  *string              `json:"publisher" binding:"omitempty,min=1,max=50"`
	DateAdd    *string              `json:"date_add" binding:"omitempty,isodate"`
}

func (b BookUpdate) ChangedFields() int {
	n := countSet(b.Title, b.Publisher, b.DateAdd)
	if b.ReadingAge != nil {
		n++
	}
	if b.Pages != nil {
		n++
	}
	if b.Language != nil {
		n++
	}
	return n
}

func (b BookUpdate) ApplyTo(book *entities.Book) {
	if b.Title != nil {
		book.Title = *b.Title
	}
	if b.ReadingAge != nil {
		book.ReadingAge = *b.ReadingAge
	}
	if b.Pages != nil {
		book.Pages = *b.Pages
	}
	if b.Language != nil {
		book.Language = *b.Language
	}
	overlay(&book.Publisher, b.Publisher)
	if b.DateAdd != nil {
		book.DateAdd = *b.DateAdd
	}
}

type AuthorCreate struct {
	Name        string  `json:"name" binding:"required,min=1,max=124"`
	Nationality *string `json:"nationality" binding:"omitempty,min=1,max=100"`
	Genre       *string `json:"genre" binding:"omitempty,min=1,max=100"`
	Birthdate   *string `json:"birthdate" binding:"omitempty,isodate"`
}

func (a AuthorCreate) ToEntity() *entities.Author {
	return &entities.Author{
		Name:        a.Name,
		Nationality: a.Nationality,
		Genre:       a.Genre,
		Birthdate:   a.Birthdate,
	}
}

type AuthorUpdate struct {
	ID          uint    `json:"id_author" binding:"required,gt=0"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=124"`
	Nationality *string `json:"nationality" binding:"omitempty,min=1,max=100"`
	Genre       *string `json:"genre" binding:"omitempty,min=1,max=100"`
	Birthdate   *string `json:"birthdate" binding:"omitempty,isodate"`
}

func (a AuthorUpdate) ChangedFields() int {
	return countSet(a.Name, a.Nationality, a.Genre, a.Birthdate)
}

func (a AuthorUpdate) ApplyTo(author *entities.Author) {
	if a.Name != nil {
		author.Name = *a.Name
	}
	overlay(&author.Nationality, a.Nationality)
	overlay(&author.Genre, a.Genre)
	overlay(&author.Birthdate, a.Birthdate)
}

// UserBookLink names a book in a user's library.
type UserBookLink struct {
	UserID uint `json:"id_user" binding:"required,gt=0"`
	BookID uint `json:"id_book" binding:"required,gt=0"`
}

// BookAuthorLink names an author credited on a book.
type BookAuthorLink struct {
	BookID   uint `json:"id_book" binding:"required,gt=0"`
	AuthorID uint `json:"id_author" binding:"required,gt=0"`
}

func countSet(fields ...*string) int {
	n := 0
	for _, f := range fields {
		if f != nil {
			n++
		}
	}
	return n
}

func overlay(dst **string, src *string) {
	if src != nil {
		v := *src
		*dst = &v
	}
}
