package views

import (
	"time"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/dto"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
)

// PuedeActualizar reports whether the status-update action is offered for a
// guide. Only the assigned state admits a transition; once delivered or not
// delivered the action is hidden.
func PuedeActualizar(g model.GuiaVinculada) bool {
	return g.EstadoID == model.EstadoGuiaAsignada
}

// EtiquetaEstado is the badge text for a linked guide.
func EtiquetaEstado(estadoID int) string {
	switch estadoID {
	case model.EstadoGuiaAsignada:
		return "PENDIENTE"
	case model.EstadoGuiaEntregada:
		return "ENTREGADA"
	case model.EstadoGuiaNoEntregada:
		return "NO ENTREGADA"
	default:
		return "DESCONOCIDO"
	}
}

// EtiquetaDespacho is the badge text for a candidate guide's dispatch state
// as reported by the yard system.
func EtiquetaDespacho(estado int) string {
	switch estado {
	case model.DespachoCompleto:
		return "Despachado"
	case model.DespachoParcial:
		return "Despachado Parcial"
	default:
		return "Despachado (otro)"
	}
}

// SolicitudVinculacion is the one place a GuiaDisponible becomes a link
// request. It applies the same fallbacks the app always used for candidates
// with missing detail.
func SolicitudVinculacion(g model.GuiaDisponible, numeroFactura string, ahora time.Time) dto.CrearGuiaRequest {
	req := dto.CrearGuiaRequest{
		NumeroGuia:      g.Referencia,
		NumeroFactura:   numeroFactura,
		DetalleProducto: g.DetalleProducto,
		Direccion:       g.DireccionEntrega,
	}
	if req.DetalleProducto == "" {
		req.DetalleProducto = "Sin descripción"
	}
	if req.Direccion == "" {
		req.Direccion = "Sin dirección"
	}
	emision := g.FechaEmision
	if emision.IsZero() {
		emision = ahora
	}
	req.FechaEmision = &emision
	return req
}
