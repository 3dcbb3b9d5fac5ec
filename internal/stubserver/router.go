// Package stubserver is a development/test double of the SIVEC backend: it
// implements exactly the HTTP contract this client consumes, over an embedded
// sqlite database. The real backend is owned elsewhere; this package exists
// so the client can be exercised end to end without it.
package stubserver

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/config"
)

// New wires the handlers and returns a configured Gin engine.
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID())
	r.Use(Logger())
	r.Use(Recovery())

	authH := &authHandler{
		db:        db,
		secret:    cfg.JWTSecret,
		expiresIn: time.Duration(cfg.JWTExpirationHours) * time.Hour,
	}
	facturasH := &facturasHandler{db: db}
	guiasH := &guiasHandler{db: db}
	viajesH := &viajesHandler{db: db}

	jwtMW := JWTAuth(cfg.JWTSecret)

	auth := r.Group("/auth")
	{
		auth.POST("/login", LoginRateLimiter(), authH.login)
		auth.POST("/verificar", jwtMW, authH.verificar)
		auth.POST("/logout", jwtMW, authH.logout)
	}

	api := r.Group("/api", jwtMW)
	{
		api.GET("/facturas/piloto/:usuarioID/guias-disponibles", facturasH.guiasDisponiblesView)
		api.GET("/facturas/piloto/:usuarioID/guias-vinculadas", facturasH.guiasVinculadasView)
		api.GET("/facturas/:numero/guias-disponibles", facturasH.guiasDisponiblesDeFactura)

		api.POST("/guias", guiasH.crear)
		api.PATCH("/guias/:id/estado", guiasH.actualizarEstado)

		api.POST("/viajes", viajesH.crear)
		api.GET("/viajes/piloto/:id", viajesH.porPiloto)
		api.GET("/viajes/historial", viajesH.historial)
	}

	return r
}
