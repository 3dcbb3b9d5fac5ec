package model

// Estados of a linked guide. 3 is the only non-terminal state; once a guide
// reaches 4 or 5 the client hides the transition action.
const (
	EstadoGuiaAsignada    = 3
	EstadoGuiaEntregada   = 4
	EstadoGuiaNoEntregada = 5
)

// Dispatch states of a candidate guide as reported by the yard system.
// These live in a different numbering space than the guide estados above.
const (
	DespachoCompleto = 5
	DespachoParcial  = 6
)

// EstadoGuia is the catalog row embedded in guide responses as "estados".
type EstadoGuia struct {
	EstadoID int    `json:"estado_id" gorm:"primaryKey;column:estado_id"`
	Codigo   string `json:"codigo" gorm:"uniqueIndex;not null"`
	Nombre   string `json:"nombre" gorm:"not null"`
}

func (EstadoGuia) TableName() string { return "estados_guia" }

// CatalogoEstados returns the full guide-state catalog, used to seed the
// stub backend and to resolve display names.
func CatalogoEstados() []EstadoGuia {
	return []EstadoGuia{
		{EstadoID: EstadoGuiaAsignada, Codigo: "guia_asignada", Nombre: "Asignada"},
		{EstadoID: EstadoGuiaEntregada, Codigo: "guia_entregada", Nombre: "Entregada"},
		{EstadoID: EstadoGuiaNoEntregada, Codigo: "guia_no_entregada", Nombre: "No entregada"},
	}
}

// EstadoPorID resolves a catalog entry; ok is false for unknown ids.
func EstadoPorID(id int) (EstadoGuia, bool) {
	for _, e := range CatalogoEstados() {
		if e.EstadoID == id {
			return e, true
		}
	}
	return EstadoGuia{}, false
}

// EsTerminal reports whether a guide state admits no further transitions.
func EsTerminal(estadoID int) bool {
	return estadoID == EstadoGuiaEntregada || estadoID == EstadoGuiaNoEntregada
}
