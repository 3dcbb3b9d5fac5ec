package dto

type ViajeFactura struct {
	NumeroFactura string `json:"numero_factura" validate:"required"`
	NumeroGuia    string `json:"numero_guia" validate:"required"`
}

type CrearViajeRequest struct {
	Facturas []ViajeFactura `json:"facturas" validate:"required,min=1,dive"`
	Piloto   string         `json:"piloto" validate:"required"`
}
