// Package views holds the pure presentation rules of the client: which
// invoices count as active vs. historical, which guide actions are offered,
// and the single mapping from a candidate guide to a link request. Everything
// here is re-derived from the freshest fetch; there is no cache to invalidate.
package views

import "github.com/AnubisPsy/Mobile-SIVEC/internal/model"

// EsHistorial is the canonical partition rule: an invoice belongs to history
// once it has linked guides and none of them is still pending. Invoices with
// zero linked guides are active (work not started yet).
func EsHistorial(f model.FacturaAsignada) bool {
	return f.TotalGuias > 0 && f.GuiasPendientes == 0
}

// Activas filters the invoices the pilot still has work on.
func Activas(facturas []model.FacturaAsignada) []model.FacturaAsignada {
	out := make([]model.FacturaAsignada, 0, len(facturas))
	for _, f := range facturas {
		if !EsHistorial(f) {
			out = append(out, f)
		}
	}
	return out
}

// Historial filters the completed invoices. Together with Activas it
// partitions any fetch: every invoice lands in exactly one of the two.
func Historial(facturas []model.FacturaAsignada) []model.FacturaAsignada {
	out := make([]model.FacturaAsignada, 0, len(facturas))
	for _, f := range facturas {
		if EsHistorial(f) {
			out = append(out, f)
		}
	}
	return out
}

// FiltroHistorial narrows the history view by delivery outcome.
type FiltroHistorial int

const (
	FiltroTodas FiltroHistorial = iota
	FiltroEntregadas
	FiltroNoEntregadas
)

func FiltrarHistorial(facturas []model.FacturaAsignada, filtro FiltroHistorial) []model.FacturaAsignada {
	if filtro == FiltroTodas {
		return facturas
	}
	out := make([]model.FacturaAsignada, 0, len(facturas))
	for _, f := range facturas {
		switch filtro {
		case FiltroEntregadas:
			if f.GuiasEntregadas == f.TotalGuias {
				out = append(out, f)
			}
		case FiltroNoEntregadas:
			if f.GuiasEntregadas == 0 {
				out = append(out, f)
			}
		}
	}
	return out
}

// PorcentajeExito is the delivered-over-total percentage shown on history
// cards; 0 for an invoice without guides.
func PorcentajeExito(f model.FacturaAsignada) int {
	if f.TotalGuias == 0 {
		return 0
	}
	return f.GuiasEntregadas * 100 / f.TotalGuias
}
