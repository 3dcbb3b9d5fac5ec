package stubserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
)

type facturasHandler struct{ db *gorm.DB }

// guiasDisponiblesView lists the pilot's invoices with their pending
// candidates attached — the payload behind the active-work screen.
func (h *facturasHandler) guiasDisponiblesView(c *gin.Context) {
	usuarioID, err := strconv.Atoi(c.Param("usuarioID"))
	if err != nil {
		fail(c, http.StatusBadRequest, "usuarioID invalido")
		return
	}

	facturas, err := h.facturasDePiloto(usuarioID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "No se pudieron cargar las facturas")
		return
	}

	for i := range facturas {
		candidatas, err := h.candidatasDe(facturas[i].NumeroFactura, facturas[i].Piloto)
		if err != nil {
			fail(c, http.StatusInternalServerError, "No se pudieron cargar las guias disponibles")
			return
		}
		facturas[i].GuiasDisponibles = candidatas
	}

	ok(c, http.StatusOK, facturas)
}

// guiasVinculadasView lists the pilot's invoices with linked guides and
// aggregates — the payload behind history and guide lists.
func (h *facturasHandler) guiasVinculadasView(c *gin.Context) {
	usuarioID, err := strconv.Atoi(c.Param("usuarioID"))
	if err != nil {
		fail(c, http.StatusBadRequest, "usuarioID invalido")
		return
	}

	facturas, err := h.facturasDePiloto(usuarioID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "No se pudieron cargar las facturas")
		return
	}

	ok(c, http.StatusOK, facturas)
}

// guiasDisponiblesDeFactura returns the candidates for one invoice.
func (h *facturasHandler) guiasDisponiblesDeFactura(c *gin.Context) {
	numero := c.Param("numero")
	piloto := c.Query("piloto")

	var factura model.FacturaAsignada
	if err := h.db.First(&factura, "numero_factura = ?", numero).Error; err != nil {
		fail(c, http.StatusNotFound, "Factura no encontrada")
		return
	}

	candidatas, err := h.candidatasDe(numero, piloto)
	if err != nil {
		fail(c, http.StatusInternalServerError, "No se pudieron cargar las guias disponibles")
		return
	}
	ok(c, http.StatusOK, candidatas)
}

func (h *facturasHandler) facturasDePiloto(usuarioID int) ([]model.FacturaAsignada, error) {
	var facturas []model.FacturaAsignada
	err := h.db.
		Preload("GuiasVinculadas").
		Preload("GuiasVinculadas.Estados").
		Where("usuario_id = ?", usuarioID).
		Order("fecha_asignacion DESC").
		Find(&facturas).Error
	if err != nil {
		return nil, err
	}
	for i := range facturas {
		facturas[i].RecalcularTotales()
	}
	return facturas, nil
}

// candidatasDe returns yard-system guides for an invoice that are dispatched
// and not yet linked anywhere.
func (h *facturasHandler) candidatasDe(numeroFactura, piloto string) ([]model.GuiaDisponible, error) {
	q := h.db.
		Where("numero_factura = ?", numeroFactura).
		Where("estado IN ?", []int{model.DespachoCompleto, model.DespachoParcial}).
		Where("referencia NOT IN (?)", h.db.Model(&model.GuiaVinculada{}).Select("numero_guia"))
	if piloto != "" {
		q = q.Where("piloto = ?", piloto)
	}
	var candidatas []model.GuiaDisponible
	err := q.Find(&candidatas).Error
	return candidatas, err
}
