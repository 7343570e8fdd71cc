package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const homePage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Library</title></head>
<body><h1>Hello from the library catalog</h1></body>
</html>
`

// Home serves the static greeting.
// GET /
func Home(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(homePage))
}
