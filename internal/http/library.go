package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/schemas"
	"github.com/mrlokans/library/internal/services"
)

// LibraryController serves the user library and book credit links.
type LibraryController struct {
	library *services.LibraryService
}

func NewLibraryController(library *services.LibraryService) *LibraryController {
	return &LibraryController{library: library}
}

// AddBook places a book in a user's library.
// POST /user/library
func (lc *LibraryController) AddBook(c *gin.Context) {
	var req schemas.UserBookLink
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	link, err := lc.library.AddBook(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// Books lists a user's library.
// GET /user/library?id_user=
func (lc *LibraryController) Books(c *gin.Context) {
	userID, ok := parseQueryID(c, "id_user")
	if !ok {
		return
	}

	books, err := lc.library.Books(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// RemoveBook takes a book out of a user's library.
// DELETE /user/library?id_user=&id_book=
func (lc *LibraryController) RemoveBook(c *gin.Context) {
	userID, ok := parseQueryID(c, "id_user")
	if !ok {
		return
	}
	bookID, ok := parseQueryID(c, "id_book")
	if !ok {
		return
	}

	if err := lc.library.RemoveBook(c.Request.Context(), userID, bookID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from library", "id_user": userID, "id_book": bookID})
}

// AddAuthor credits an author on a book.
// POST /book/author
func (lc *LibraryController) AddAuthor(c *gin.Context) {
	var req schemas.BookAuthorLink
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	link, err := lc.library.AddAuthor(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// GET /book/authors?id_book=
func (lc *LibraryController) Authors(c *gin.Context) {
	bookID, ok := parseQueryID(c, "id_book")
	if !ok {
		return
	}

	authors, err := lc.library.Authors(c.Request.Context(), bookID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, authors)
}

// DELETE /book/author?id_book=&id_author=
func (lc *LibraryController) RemoveAuthor(c *gin.Context) {
	bookID, ok := parseQueryID(c, "id_book")
	if !ok {
		return
	}
	authorID, ok := parseQueryID(c, "id_author")
	if !ok {
		return
	}

	if err := lc.library.RemoveAuthor(c.Request.Context(), bookID, authorID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Author credit removed", "id_book": bookID, "id_author": authorID})
}
