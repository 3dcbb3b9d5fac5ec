package model

import "time"

// Viaje records one invoice/guide pair completed in a trip. The backend
// creates them from the create-trip call; the client only lists history.
type Viaje struct {
	ViajeID         int       `json:"viaje_id" gorm:"primaryKey;column:viaje_id"`
	NumeroGuia      string    `json:"numero_guia" gorm:"not null"`
	NumeroFactura   string    `json:"numero_factura" gorm:"not null"`
	Piloto          string    `json:"piloto" gorm:"index;not null"`
	FechaViaje      time.Time `json:"fecha_viaje"`
	Cliente         string    `json:"cliente,omitempty"`
	DetalleProducto string    `json:"detalle_producto,omitempty"`
	Direccion       string    `json:"direccion,omitempty"`
}

func (Viaje) TableName() string { return "viajes" }
