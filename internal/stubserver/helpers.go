package stubserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ok writes a success envelope.
func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// fail writes a {success:false, message} envelope.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// bindAndValidate binds JSON body and runs validator tags. Returns false and
// writes the error envelope when the request is malformed — the caller must
// return immediately.
func bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, http.StatusBadRequest, "JSON invalido: "+err.Error())
		return false
	}
	if err := validate.Struct(req); err != nil {
		fail(c, http.StatusUnprocessableEntity, "Error de validacion: "+err.Error())
		return false
	}
	return true
}
