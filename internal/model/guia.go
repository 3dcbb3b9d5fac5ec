package model

import "time"

// GuiaVinculada is a delivery guide already linked to an invoice. Created by
// the pilot selecting a candidate, mutated only through the estado endpoint,
// never deleted from the client.
type GuiaVinculada struct {
	GuiaID          int        `json:"guia_id" gorm:"primaryKey;column:guia_id"`
	NumeroGuia      string     `json:"numero_guia" gorm:"uniqueIndex;not null"`
	NumeroFactura   string     `json:"numero_factura" gorm:"index;not null"`
	DetalleProducto string     `json:"detalle_producto,omitempty"`
	Direccion       string     `json:"direccion,omitempty"`
	EstadoID        int        `json:"estado_id" gorm:"not null"`
	FechaEmision    *time.Time `json:"fecha_emision,omitempty"`
	FechaEntrega    *time.Time `json:"fecha_entrega,omitempty"`

	Estados EstadoGuia `json:"estados" gorm:"foreignKey:EstadoID;references:EstadoID"`
}

func (GuiaVinculada) TableName() string { return "guias" }

// GuiaDisponible is a candidate guide from the yard system: guide-like data
// not yet linked to any invoice. Deliberately a distinct type from
// GuiaVinculada — the field names diverge on the wire (referencia vs
// numero_guia, direccion_entrega vs direccion) and the two must only meet
// through the explicit link request.
type GuiaDisponible struct {
	ID               uint      `json:"-" gorm:"primaryKey"`
	Documento        string    `json:"documento"`
	Referencia       string    `json:"referencia" gorm:"index;not null"`
	NumeroFactura    string    `json:"-" gorm:"index"`
	Piloto           string    `json:"piloto"`
	DetalleProducto  string    `json:"detalle_producto"`
	DireccionEntrega string    `json:"direccion_entrega"`
	Estado           int       `json:"estado"`
	FechaEmision     time.Time `json:"fecha_emision"`
	Cliente          string    `json:"cliente,omitempty"`
}

func (GuiaDisponible) TableName() string { return "guias_disponibles" }
