package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/dto"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
)

// CrearViaje registers a completed trip for a batch of invoice/guide pairs.
func (c *Client) CrearViaje(ctx context.Context, req dto.CrearViajeRequest) ([]model.Viaje, error) {
	var viajes []model.Viaje
	if err := c.do(ctx, http.MethodPost, "/api/viajes", req, &viajes); err != nil {
		return nil, err
	}
	return viajes, nil
}

// ViajesPorPiloto lists the trips of one pilot by user id.
func (c *Client) ViajesPorPiloto(ctx context.Context, usuarioID int) ([]model.Viaje, error) {
	var viajes []model.Viaje
	path := fmt.Sprintf("/api/viajes/piloto/%d", usuarioID)
	if err := c.do(ctx, http.MethodGet, path, nil, &viajes); err != nil {
		return nil, err
	}
	return viajes, nil
}

// HistorialViajes lists the authenticated pilot's trips, newest first.
func (c *Client) HistorialViajes(ctx context.Context) ([]model.Viaje, error) {
	var viajes []model.Viaje
	if err := c.do(ctx, http.MethodGet, "/api/viajes/historial", nil, &viajes); err != nil {
		return nil, err
	}
	return viajes, nil
}
