package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
)

// FacturasConGuiasDisponibles lists the pilot's invoices with their matching
// candidate guides attached — the "active work" view.
func (c *Client) FacturasConGuiasDisponibles(ctx context.Context, usuarioID int) ([]model.FacturaAsignada, error) {
	var facturas []model.FacturaAsignada
	path := fmt.Sprintf("/api/facturas/piloto/%d/guias-disponibles", usuarioID)
	if err := c.do(ctx, http.MethodGet, path, nil, &facturas); err != nil {
		return nil, err
	}
	return facturas, nil
}

// FacturasConGuiasVinculadas lists the pilot's invoices with linked guides
// and aggregate counts — the source for the history view.
func (c *Client) FacturasConGuiasVinculadas(ctx context.Context, usuarioID int) ([]model.FacturaAsignada, error) {
	var facturas []model.FacturaAsignada
	path := fmt.Sprintf("/api/facturas/piloto/%d/guias-vinculadas", usuarioID)
	if err := c.do(ctx, http.MethodGet, path, nil, &facturas); err != nil {
		return nil, err
	}
	return facturas, nil
}

// GuiasDisponibles fetches the candidate guides for one invoice.
func (c *Client) GuiasDisponibles(ctx context.Context, numeroFactura, piloto string) ([]model.GuiaDisponible, error) {
	var guias []model.GuiaDisponible
	path := fmt.Sprintf("/api/facturas/%s/guias-disponibles?piloto=%s",
		url.PathEscape(numeroFactura), url.QueryEscape(piloto))
	if err := c.do(ctx, http.MethodGet, path, nil, &guias); err != nil {
		return nil, err
	}
	return guias, nil
}
