package stubserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/dto"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
)

type guiasHandler struct{ db *gorm.DB }

// crear links a candidate guide to an invoice: the guide record is born here,
// in the assigned estado.
func (h *guiasHandler) crear(c *gin.Context) {
	var req dto.CrearGuiaRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var factura model.FacturaAsignada
	if err := h.db.First(&factura, "numero_factura = ?", req.NumeroFactura).Error; err != nil {
		fail(c, http.StatusNotFound, "Factura no encontrada")
		return
	}

	var existente model.GuiaVinculada
	if err := h.db.First(&existente, "numero_guia = ?", req.NumeroGuia).Error; err == nil {
		fail(c, http.StatusConflict, "La guia ya esta vinculada a una factura")
		return
	}

	emision := req.FechaEmision
	if emision == nil {
		now := time.Now()
		emision = &now
	}
	guia := model.GuiaVinculada{
		NumeroGuia:      req.NumeroGuia,
		NumeroFactura:   req.NumeroFactura,
		DetalleProducto: req.DetalleProducto,
		Direccion:       req.Direccion,
		EstadoID:        model.EstadoGuiaAsignada,
		FechaEmision:    emision,
	}
	if err := h.db.Omit(clause.Associations).Create(&guia).Error; err != nil {
		fail(c, http.StatusInternalServerError, "No se pudo vincular la guia")
		return
	}

	if err := h.db.Preload("Estados").First(&guia, guia.GuiaID).Error; err != nil {
		fail(c, http.StatusInternalServerError, "No se pudo leer la guia creada")
		return
	}
	ok(c, http.StatusCreated, guia)
}

// actualizarEstado transitions assigned → delivered / not delivered. Any
// other source state is rejected; terminal states are final.
func (h *guiasHandler) actualizarEstado(c *gin.Context) {
	guiaID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "id de guia invalido")
		return
	}

	var req dto.ActualizarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var guia model.GuiaVinculada
	if err := h.db.First(&guia, "guia_id = ?", guiaID).Error; err != nil {
		fail(c, http.StatusNotFound, "Guia no encontrada")
		return
	}
	if guia.EstadoID != model.EstadoGuiaAsignada {
		fail(c, http.StatusConflict, "Solo una guia asignada puede cambiar de estado")
		return
	}

	now := time.Now()
	updates := map[string]any{"estado_id": req.EstadoID, "fecha_entrega": now}
	if err := h.db.Model(&guia).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "No se pudo actualizar el estado")
		return
	}

	if err := h.db.Preload("Estados").First(&guia, guia.GuiaID).Error; err != nil {
		fail(c, http.StatusInternalServerError, "No se pudo leer la guia actualizada")
		return
	}
	ok(c, http.StatusOK, guia)
}
