package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/dto"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
)

// CrearGuia links a candidate guide to an invoice. On success the backend
// returns the created guide in its initial (assigned) estado.
func (c *Client) CrearGuia(ctx context.Context, req dto.CrearGuiaRequest) (*model.GuiaVinculada, error) {
	var guia model.GuiaVinculada
	if err := c.do(ctx, http.MethodPost, "/api/guias", req, &guia); err != nil {
		return nil, err
	}
	return &guia, nil
}

// ActualizarEstadoGuia transitions a guide to a terminal state and returns
// the updated record; callers refetch their lists instead of patching local
// copies.
func (c *Client) ActualizarEstadoGuia(ctx context.Context, guiaID, estadoID int) (*model.GuiaVinculada, error) {
	var guia model.GuiaVinculada
	path := fmt.Sprintf("/api/guias/%d/estado", guiaID)
	req := dto.ActualizarEstadoRequest{EstadoID: estadoID}
	if err := c.do(ctx, http.MethodPatch, path, req, &guia); err != nil {
		return nil, err
	}
	return &guia, nil
}
