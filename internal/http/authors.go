package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/schemas"
	"github.com/mrlokans/library/internal/services"
)

type AuthorsController struct {
	authors *services.AuthorService
}

func NewAuthorsController(authors *services.AuthorService) *AuthorsController {
	return &AuthorsController{authors: authors}
}

// POST /author/new
func (ac *AuthorsController) Create(c *gin.Context) {
	var req schemas.AuthorCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	author, err := ac.authors.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, author)
}

// GET /authors
func (ac *AuthorsController) List(c *gin.Context) {
	authors, err := ac.authors.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, authors)
}

// GET /author/details?id_author=
func (ac *AuthorsController) Get(c *gin.Context) {
	id, ok := parseQueryID(c, "id_author")
	if !ok {
		return
	}

	author, err := ac.authors.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

// PUT /author/update
func (ac *AuthorsController) Update(c *gin.Context) {
	var req schemas.AuthorUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	author, err := ac.authors.Update(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

// DELETE /author/delete?id_author=
func (ac *AuthorsController) Delete(c *gin.Context) {
	id, ok := parseQueryID(c, "id_author")
	if !ok {
		return
	}

	author, err := ac.authors.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}
