package stubserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/dto"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
)

type authHandler struct {
	db        *gorm.DB
	secret    string
	expiresIn time.Duration
}

func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var u model.Usuario
	err := h.db.Preload("Rol").Preload("Sucursal").
		Where("nombre_usuario = ? OR LOWER(correo) = LOWER(?)", req.LoginInput, req.LoginInput).
		First(&u).Error
	if err != nil {
		fail(c, http.StatusUnauthorized, "Credenciales invalidas")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "Credenciales invalidas")
		return
	}

	token, err := h.firmarToken(&u)
	if err != nil {
		fail(c, http.StatusInternalServerError, "No se pudo generar el token")
		return
	}

	ok(c, http.StatusOK, dto.LoginData{Token: token, Usuario: u})
}

func (h *authHandler) verificar(c *gin.Context) {
	claims := getClaims(c)

	var u model.Usuario
	err := h.db.Preload("Rol").Preload("Sucursal").
		First(&u, "usuario_id = ?", claims.UsuarioID).Error
	if err != nil {
		fail(c, http.StatusUnauthorized, "Usuario no encontrado")
		return
	}

	ok(c, http.StatusOK, dto.VerificarData{Usuario: u, TokenValido: true})
}

func (h *authHandler) logout(c *gin.Context) {
	// Tokens are stateless; logout only acknowledges so the client can wipe
	// its credentials.
	ok(c, http.StatusOK, nil)
}

func (h *authHandler) firmarToken(u *model.Usuario) (string, error) {
	claims := Claims{
		UsuarioID:     u.UsuarioID,
		NombreUsuario: u.NombreUsuario,
		RolID:         u.RolID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}
