package dto

import "time"

// CrearGuiaRequest links a candidate guide to an invoice. The backend
// answers with the created model.GuiaVinculada in its initial estado.
type CrearGuiaRequest struct {
	NumeroGuia      string     `json:"numero_guia" validate:"required"`
	NumeroFactura   string     `json:"numero_factura" validate:"required"`
	DetalleProducto string     `json:"detalle_producto,omitempty"`
	Direccion       string     `json:"direccion,omitempty"`
	FechaEmision    *time.Time `json:"fecha_emision,omitempty"`
}

// ActualizarEstadoRequest carries the target terminal state: 4 (entregada)
// or 5 (no entregada). The assigned state is never a target.
type ActualizarEstadoRequest struct {
	EstadoID int `json:"estado_id" validate:"required,oneof=4 5"`
}
