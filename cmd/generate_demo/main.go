// Command generate_demo creates a demo database with a small public domain catalogue.
// Usage: go run ./cmd/generate_demo [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/auth"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/links"
	"github.com/mrlokans/library/internal/database/users"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/schemas"
	"github.com/mrlokans/library/internal/services"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoBook struct {
	Book    schemas.BookCreate
	Authors []string
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	base, _ := zap.NewDevelopment()
	log := base.Sugar()
	defer func() { _ = log.Sync() }()

	log.Infof("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabaseWithOptions(*dbPath, database.Options{LogLevel: logger.Silent})
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	userService := services.NewUserService(users.NewRepository(db.DB), auth.NewBcryptHasher(bcrypt.DefaultCost), nil)
	bookService := services.NewBookService(books.NewRepository(db.DB), nil)
	authorService := services.NewAuthorService(authors.NewRepository(db.DB), nil)
	library := services.NewLibraryService(links.NewRepository(db.DB), nil)

	reader, err := userService.Create(ctx, schemas.UserCreate{
		FirstName: ptr("Demo"),
		LastName:  ptr("Reader"),
		Email:     "demo@example.com",
		Password:  "demo-password",
	})
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	authorIDs := make(map[string]uint)
	for _, a := range publicDomainAuthors() {
		author, err := authorService.Create(ctx, a)
		if err != nil {
			log.Warnf("Failed to save author %s: %v", a.Name, err)
			continue
		}
		authorIDs[a.Name] = author.ID
	}

	for _, cfg := range publicDomainBooks() {
		book, err := bookService.Create(ctx, cfg.Book)
		if err != nil {
			log.Warnf("Failed to save book %s: %v", cfg.Book.Title, err)
			continue
		}
		for _, name := range cfg.Authors {
			id, ok := authorIDs[name]
			if !ok {
				continue
			}
			if _, err := library.AddAuthor(ctx, schemas.BookAuthorLink{BookID: book.ID, AuthorID: id}); err != nil {
				log.Warnf("Failed to credit %s on %s: %v", name, book.Title, err)
			}
		}
		if _, err := library.AddBook(ctx, schemas.UserBookLink{UserID: reader.ID, BookID: book.ID}); err != nil {
			log.Warnf("Failed to shelve %s: %v", book.Title, err)
		}
		log.Infof("Saved: %s (%d pages)", book.Title, book.Pages)
	}

	log.Info("Demo database generated successfully!")
}

func publicDomainAuthors() []schemas.AuthorCreate {
	return []schemas.AuthorCreate{
		{Name: "Marcus Aurelius", Nationality: ptr("Roman"), Genre: ptr("Philosophy"), Birthdate: ptr("0121-04-26")},
		{Name: "Mary Shelley", Nationality: ptr("British"), Genre: ptr("Gothic fiction"), Birthdate: ptr("1797-08-30")},
		{Name: "Jules Verne", Nationality: ptr("French"), Genre: ptr("Adventure"), Birthdate: ptr("1828-02-08")},
		{Name: "Lewis Carroll", Nationality: ptr("British"), Genre: ptr("Fantasy"), Birthdate: ptr("1832-01-27")},
		{Name: "Johanna Spyri", Nationality: ptr("Swiss"), Genre: ptr("Children's literature"), Birthdate: ptr("1827-06-12")},
	}
}

func publicDomainBooks() []demoBook {
	return []demoBook{
		{
			Book:    schemas.BookCreate{Title: "Meditations", Pages: 254, ReadingAge: entities.ReadingAge18Plus, Language: entities.LanguageEnglish},
			Authors: []string{"Marcus Aurelius"},
		},
		{
			Book:    schemas.BookCreate{Title: "Frankenstein", Pages: 280, ReadingAge: entities.ReadingAge15To17, Language: entities.LanguageEnglish, Publisher: ptr("Lackington")},
			Authors: []string{"Mary Shelley"},
		},
		{
			Book:    schemas.BookCreate{Title: "Vingt mille lieues sous les mers", Pages: 432, ReadingAge: entities.ReadingAge11To14, Language: entities.LanguageFrench, Publisher: ptr("Hetzel")},
			Authors: []string{"Jules Verne"},
		},
		{
			Book:    schemas.BookCreate{Title: "Alice's Adventures in Wonderland", Pages: 192, ReadingAge: entities.ReadingAge8To10, Language: entities.LanguageEnglish, Publisher: ptr("Macmillan")},
			Authors: []string{"Lewis Carroll"},
		},
		{
			Book:    schemas.BookCreate{Title: "Heidi", Pages: 318, ReadingAge: entities.ReadingAge8To10, Language: entities.LanguageGerman},
			Authors: []string{"Johanna Spyri"},
		},
	}
}

func ptr(s string) *string {
	return &s
}
