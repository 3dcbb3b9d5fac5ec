package model

import "time"

// FacturaAsignada is an invoice a jefe de yarda assigned to a pilot. The
// client only reads it and links guides against it; creation and deletion
// happen server-side.
type FacturaAsignada struct {
	FacturaID       int       `json:"factura_id" gorm:"primaryKey;column:factura_id"`
	NumeroFactura   string    `json:"numero_factura" gorm:"uniqueIndex;not null"`
	UsuarioID       int       `json:"usuario_id" gorm:"index;not null"`
	Piloto          string    `json:"piloto"`
	NumeroVehiculo  string    `json:"numero_vehiculo"`
	FechaAsignacion time.Time `json:"fecha_asignacion"`
	NotasJefe       string    `json:"notas_jefe,omitempty"`

	GuiasVinculadas  []GuiaVinculada  `json:"guias_vinculadas" gorm:"foreignKey:NumeroFactura;references:NumeroFactura"`
	GuiasDisponibles []GuiaDisponible `json:"guias_disponibles,omitempty" gorm:"-"`

	// Aggregates over GuiasVinculadas, recomputed on every read.
	TotalGuias      int `json:"total_guias" gorm:"-"`
	GuiasPendientes int `json:"guias_pendientes" gorm:"-"`
	GuiasEntregadas int `json:"guias_entregadas" gorm:"-"`
}

func (FacturaAsignada) TableName() string { return "facturas_asignadas" }

// RecalcularTotales refreshes the aggregate counters from the linked guides.
func (f *FacturaAsignada) RecalcularTotales() {
	f.TotalGuias = len(f.GuiasVinculadas)
	f.GuiasPendientes = 0
	f.GuiasEntregadas = 0
	for _, g := range f.GuiasVinculadas {
		switch {
		case g.EstadoID == EstadoGuiaEntregada:
			f.GuiasEntregadas++
		case !EsTerminal(g.EstadoID):
			f.GuiasPendientes++
		}
	}
}
