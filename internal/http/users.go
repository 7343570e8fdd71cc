package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/schemas"
	"github.com/mrlokans/library/internal/services"
)

type UsersController struct {
	users *services.UserService
}

func NewUsersController(users *services.UserService) *UsersController {
	return &UsersController{users: users}
}

// Create registers a user.
// POST /user/new
func (uc *UsersController) Create(c *gin.Context) {
	var req schemas.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := uc.users.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// List returns every user.
// GET /users
func (uc *UsersController) List(c *gin.Context) {
	users, err := uc.users.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get returns one user.
// GET /user/details?id_user=
func (uc *UsersController) Get(c *gin.Context) {
	id, ok := parseQueryID(c, "id_user")
	if !ok {
		return
	}

	user, err := uc.users.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update applies a partial update.
// PUT /user/update
func (uc *UsersController) Update(c *gin.Context) {
	var req schemas.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := uc.users.Update(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateField changes a single column named in the path.
// PUT /user/update_user/:id_user/:feature/:data
//
// Deprecated: use PUT /user/update.
func (uc *UsersController) UpdateField(c *gin.Context) {
	c.Header("Deprecation", "true")

	id, ok := parseIDParam(c, "id_user")
	if !ok {
		return
	}
	feature := c.Param("feature")
	data := c.Param("data")

	if _, err := uc.users.UpdateField(c.Request.Context(), id, feature, data); err != nil {
		respondServiceError(c, err)
		return
	}

	echoed := data
	if feature == "password" {
		echoed = entities.Secret(data).String()
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Update successful",
		"id_user": id,
		feature:   echoed,
	})
}

// Delete removes a user and returns the deleted row.
// DELETE /user/delete?id_user=
func (uc *UsersController) Delete(c *gin.Context) {
	id, ok := parseQueryID(c, "id_user")
	if !ok {
		return
	}

	user, err := uc.users.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
