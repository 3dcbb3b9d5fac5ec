// cmd/seedpiloto/main.go — Crea/actualiza un piloto de demo con facturas y
// guías candidatas en la base del stub.
// Uso: go run ./cmd/seedpiloto
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/stubserver"
)

func main() {
	path := os.Getenv("SIVEC_DB_PATH")
	if path == "" {
		path = "sivec_stub.db"
	}

	db, err := stubserver.Open(path)
	if err != nil {
		log.Fatalf("abrir base: %v", err)
	}

	piloto, err := stubserver.CrearUsuario(db, "piloto_demo", "piloto@sivec.hn", "piloto123", model.RolPiloto)
	if err != nil {
		log.Fatalf("crear piloto: %v", err)
	}
	if _, err := stubserver.CrearUsuario(db, "jefe_demo", "jefe@sivec.hn", "jefe123", model.RolJefeDeYarda); err != nil {
		log.Fatalf("crear jefe: %v", err)
	}

	facturas := []struct {
		factura    model.FacturaAsignada
		candidatas []model.GuiaDisponible
	}{
		{
			factura: model.FacturaAsignada{
				FacturaID:       1,
				NumeroFactura:   "F-2026-0001",
				UsuarioID:       piloto.UsuarioID,
				Piloto:          piloto.NombreUsuario,
				NumeroVehiculo:  "C-104",
				FechaAsignacion: time.Now().AddDate(0, 0, -1),
				NotasJefe:       "Entregar antes del mediodía",
			},
			candidatas: []model.GuiaDisponible{
				{Documento: "DOC-9001", Referencia: "G-5001", DetalleProducto: "Cemento 50 bolsas", DireccionEntrega: "Col. Kennedy, Tegucigalpa", Estado: model.DespachoCompleto, Cliente: "Ferretería El Martillo"},
				{Documento: "DOC-9002", Referencia: "G-5002", DetalleProducto: "Varilla 3/8", DireccionEntrega: "Anillo Periférico km 7", Estado: model.DespachoParcial, Cliente: "Constructora Lempira"},
			},
		},
		{
			factura: model.FacturaAsignada{
				FacturaID:       2,
				NumeroFactura:   "F-2026-0002",
				UsuarioID:       piloto.UsuarioID,
				Piloto:          piloto.NombreUsuario,
				NumeroVehiculo:  "C-112",
				FechaAsignacion: time.Now(),
			},
			candidatas: []model.GuiaDisponible{
				{Documento: "DOC-9003", Referencia: "G-5003", DetalleProducto: "Lámina de zinc", DireccionEntrega: "San Pedro Sula, barrio Guamilito", Estado: model.DespachoCompleto},
			},
		},
	}

	for _, f := range facturas {
		if err := stubserver.SembrarFactura(db, f.factura, f.candidatas); err != nil {
			log.Fatalf("sembrar factura %s: %v", f.factura.NumeroFactura, err)
		}
	}

	fmt.Println("Listo. Usuario: piloto_demo / piloto123 (rol piloto)")
	fmt.Println("       Usuario: jefe_demo / jefe123 (rol jefe, rechazado por la app)")
}
