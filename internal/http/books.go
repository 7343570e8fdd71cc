package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/schemas"
	"github.com/mrlokans/library/internal/services"
)

type BooksController struct {
	books *services.BookService
}

func NewBooksController(books *services.BookService) *BooksController {
	return &BooksController{books: books}
}

// Create adds a book to the catalog.
// POST /book/new
func (bc *BooksController) Create(c *gin.Context) {
	var req schemas.BookCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := bc.books.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// GET /books
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.books.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// GET /book/details?id_book=
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseQueryID(c, "id_book")
	if !ok {
		return
	}

	book, err := bc.books.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Update applies a partial update and stamps date_update.
// PUT /book/update
func (bc *BooksController) Update(c *gin.Context) {
	var req schemas.BookUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := bc.books.Update(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// DELETE /book/delete?id_book=
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseQueryID(c, "id_book")
	if !ok {
		return
	}

	book, err := bc.books.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}
