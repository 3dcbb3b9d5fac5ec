package stubserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/dto"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
)

type viajesHandler struct{ db *gorm.DB }

// crear registers one trip row per invoice/guide pair in the batch.
func (h *viajesHandler) crear(c *gin.Context) {
	var req dto.CrearViajeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	viajes := make([]model.Viaje, 0, len(req.Facturas))
	now := time.Now()
	for _, fg := range req.Facturas {
		var guia model.GuiaVinculada
		if err := h.db.First(&guia, "numero_guia = ?", fg.NumeroGuia).Error; err != nil {
			fail(c, http.StatusNotFound, "Guia "+fg.NumeroGuia+" no encontrada")
			return
		}
		viajes = append(viajes, model.Viaje{
			NumeroGuia:      fg.NumeroGuia,
			NumeroFactura:   fg.NumeroFactura,
			Piloto:          req.Piloto,
			FechaViaje:      now,
			DetalleProducto: guia.DetalleProducto,
			Direccion:       guia.Direccion,
		})
	}

	if err := h.db.Create(&viajes).Error; err != nil {
		fail(c, http.StatusInternalServerError, "No se pudo registrar el viaje")
		return
	}
	ok(c, http.StatusCreated, viajes)
}

// porPiloto lists trips by pilot user id.
func (h *viajesHandler) porPiloto(c *gin.Context) {
	usuarioID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "id de piloto invalido")
		return
	}

	var u model.Usuario
	if err := h.db.First(&u, "usuario_id = ?", usuarioID).Error; err != nil {
		fail(c, http.StatusNotFound, "Piloto no encontrado")
		return
	}

	var viajes []model.Viaje
	if err := h.db.Where("piloto = ?", u.NombreUsuario).
		Order("fecha_viaje DESC").Find(&viajes).Error; err != nil {
		fail(c, http.StatusInternalServerError, "No se pudo cargar el historial")
		return
	}
	ok(c, http.StatusOK, viajes)
}

// historial lists the authenticated pilot's trips, newest first.
func (h *viajesHandler) historial(c *gin.Context) {
	claims := getClaims(c)

	var viajes []model.Viaje
	if err := h.db.Where("piloto = ?", claims.NombreUsuario).
		Order("fecha_viaje DESC").Find(&viajes).Error; err != nil {
		fail(c, http.StatusInternalServerError, "No se pudo cargar el historial")
		return
	}
	ok(c, http.StatusOK, viajes)
}
