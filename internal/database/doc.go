// Package database provides the data access layer for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and schema creation
//	├── users/           # User rows and email uniqueness
//	├── books/           # Book rows
//	├── authors/         # Author rows
//	├── links/           # User_Book and Book_Author join tables
//	└── audit/           # Change journal
//
// Each sub-package exposes a Repository built from the shared *gorm.DB:
//
//	db, err := database.NewDatabase("./library.db")
//	usersRepo := users.NewRepository(db.DB)
//	user, err := usersRepo.GetByID(ctx, 42)
//
// Read-modify-write and check-then-write sequences run inside a single
// transaction in the repository, so callers never hold a *gorm.Tx.
// Missing rows surface as gorm.ErrRecordNotFound and uniqueness violations
// as gorm.ErrDuplicatedKey.
package database
