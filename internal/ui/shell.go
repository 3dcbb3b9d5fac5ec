// Package ui is the terminal shell of the client: the list/detail flows a
// pilot walks through. It holds no state of its own — every screen re-fetches
// and re-derives its data, and all decisions about what may be shown or done
// live in the views and session packages.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/api"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/apierror"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/session"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/store"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/views"
)

// errSesionPerdida ends the current flow and returns to the login prompt.
// By the time it is raised the api layer already wiped the stored token.
var errSesionPerdida = errors.New("sesion expirada")

type Shell struct {
	sesion *session.Manager
	api    *api.Client
	cache  store.CacheRepository
	in     *bufio.Reader
	out    io.Writer
	log    zerolog.Logger
}

func New(sesion *session.Manager, client *api.Client, cache store.CacheRepository, in io.Reader, out io.Writer, log zerolog.Logger) *Shell {
	return &Shell{
		sesion: sesion,
		api:    client,
		cache:  cache,
		in:     bufio.NewReader(in),
		out:    out,
		log:    log,
	}
}

// Run drives the whole app: restore → login → main menu. It returns when the
// pilot quits or the input stream ends.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "SIVEC — aplicación de pilotos")

	s.sesion.Restaurar(ctx)

	for {
		if !s.sesion.Autenticado() {
			if !s.login(ctx) {
				return nil
			}
		}
		if err := s.menu(ctx); err != nil {
			if errors.Is(err, errSesionPerdida) {
				s.sesion.Logout(ctx)
				fmt.Fprintln(s.out, "Tu sesión expiró, inicia sesión nuevamente.")
				continue
			}
			return err
		}
		return nil
	}
}

// login loops until a session exists or the pilot gives up (empty user).
func (s *Shell) login(ctx context.Context) bool {
	for {
		usuario := s.prompt("Usuario o correo (vacío para salir): ")
		if usuario == "" {
			return false
		}
		password := s.prompt("Contraseña: ")

		err := s.sesion.Login(ctx, usuario, password)
		if err == nil {
			u := s.sesion.Usuario()
			fmt.Fprintf(s.out, "Bienvenido, %s\n", u.NombreUsuario)
			return true
		}
		if errors.Is(err, session.ErrRolNoPermitido) {
			fmt.Fprintln(s.out, "Acceso denegado: esta aplicación es exclusiva para pilotos.")
			fmt.Fprintln(s.out, "Los jefes y administradores deben usar el panel web.")
			continue
		}
		fmt.Fprintf(s.out, "No se pudo iniciar sesión: %v\n", err)
	}
}

func (s *Shell) menu(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "[1] Mis facturas   [2] Historial   [3] Viajes   [4] Perfil   [c] Cerrar sesión   [q] Salir")
		switch s.prompt("> ") {
		case "1":
			if err := s.facturasActivas(ctx); err != nil {
				return err
			}
		case "2":
			if err := s.historial(ctx); err != nil {
				return err
			}
		case "3":
			if err := s.viajes(ctx); err != nil {
				return err
			}
		case "4":
			s.perfil()
		case "c":
			s.sesion.Logout(ctx)
			fmt.Fprintln(s.out, "Sesión cerrada.")
			if !s.login(ctx) {
				return nil
			}
		case "q", "":
			return nil
		}
	}
}

// ── Facturas activas ─────────────────────────────────────────────────────────

func (s *Shell) facturasActivas(ctx context.Context) error {
	for {
		u := s.sesion.Usuario()
		facturas, desdeCache, err := s.cargarFacturas(ctx, store.VistaActivas, func() ([]model.FacturaAsignada, error) {
			return s.api.FacturasConGuiasDisponibles(ctx, u.UsuarioID)
		})
		if err != nil {
			return err
		}

		activas := views.Activas(facturas)
		fmt.Fprintf(s.out, "\nMis facturas — %s (%d)\n", u.NombreUsuario, len(activas))
		if desdeCache {
			fmt.Fprintln(s.out, "(sin conexión — datos de la última sincronización)")
		}
		if len(activas) == 0 {
			fmt.Fprintln(s.out, "No tienes facturas asignadas. Cuando tu jefe te asigne facturas, aparecerán aquí.")
		} else {
			s.renderFacturas(activas, true)
		}

		sel := s.prompt("Número de factura para ver guías, r=actualizar, enter=volver: ")
		switch sel {
		case "":
			return nil
		case "r":
			continue
		default:
			f, ok := buscarFactura(activas, sel)
			if !ok {
				fmt.Fprintln(s.out, "Factura no encontrada en la lista.")
				continue
			}
			if err := s.seleccionarGuia(ctx, f); err != nil {
				return err
			}
		}
	}
}

func (s *Shell) seleccionarGuia(ctx context.Context, factura model.FacturaAsignada) error {
	u := s.sesion.Usuario()
	guias, err := s.api.GuiasDisponibles(ctx, factura.NumeroFactura, u.NombreUsuario)
	if err != nil {
		return s.alerta(err, "No se pudieron cargar las guías disponibles")
	}

	fmt.Fprintf(s.out, "\nGuías disponibles para %s (%d)\n", factura.NumeroFactura, len(guias))
	if len(guias) == 0 {
		fmt.Fprintln(s.out, "Esperando guías del sistema.")
		return nil
	}

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REFERENCIA\tESTADO\tPRODUCTO\tDIRECCIÓN")
	for _, g := range guias {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			g.Referencia, views.EtiquetaDespacho(g.Estado), g.DetalleProducto, g.DireccionEntrega)
	}
	w.Flush()

	ref := s.prompt("Referencia a vincular (enter=volver): ")
	if ref == "" {
		return nil
	}
	var candidata *model.GuiaDisponible
	for i := range guias {
		if guias[i].Referencia == ref {
			candidata = &guias[i]
			break
		}
	}
	if candidata == nil {
		fmt.Fprintln(s.out, "Referencia no encontrada.")
		return nil
	}

	if !s.confirmar(fmt.Sprintf("¿Vincular la guía %s a esta factura?", candidata.Referencia)) {
		return nil
	}

	req := views.SolicitudVinculacion(*candidata, factura.NumeroFactura, time.Now())
	guia, err := s.api.CrearGuia(ctx, req)
	if err != nil {
		return s.alerta(err, "No se pudo vincular la guía")
	}
	fmt.Fprintln(s.out, "Guía vinculada correctamente.")
	return s.detalleGuia(ctx, *guia)
}

// ── Historial ────────────────────────────────────────────────────────────────

func (s *Shell) historial(ctx context.Context) error {
	for {
		u := s.sesion.Usuario()
		facturas, desdeCache, err := s.cargarFacturas(ctx, store.VistaHistorial, func() ([]model.FacturaAsignada, error) {
			return s.api.FacturasConGuiasVinculadas(ctx, u.UsuarioID)
		})
		if err != nil {
			return err
		}

		completadas := views.Historial(facturas)
		filtro := views.FiltroTodas
		switch s.prompt("Filtro: t=todas, e=entregadas, n=no entregadas (enter=todas): ") {
		case "e":
			filtro = views.FiltroEntregadas
		case "n":
			filtro = views.FiltroNoEntregadas
		}
		completadas = views.FiltrarHistorial(completadas, filtro)

		fmt.Fprintf(s.out, "\nHistorial (%d)\n", len(completadas))
		if desdeCache {
			fmt.Fprintln(s.out, "(sin conexión — datos de la última sincronización)")
		}
		if len(completadas) == 0 {
			fmt.Fprintln(s.out, "Sin facturas completadas todavía.")
			return nil
		}

		w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FACTURA\tVEHÍCULO\tGUÍAS\tENTREGADAS\tÉXITO")
		for _, f := range completadas {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d%%\n",
				f.NumeroFactura, f.NumeroVehiculo, f.TotalGuias, f.GuiasEntregadas, views.PorcentajeExito(f))
		}
		w.Flush()

		sel := s.prompt("Número de factura para ver sus guías, r=actualizar, enter=volver: ")
		switch sel {
		case "":
			return nil
		case "r":
			continue
		default:
			f, ok := buscarFactura(completadas, sel)
			if !ok {
				fmt.Fprintln(s.out, "Factura no encontrada en la lista.")
				continue
			}
			if err := s.listaGuias(ctx, f); err != nil {
				return err
			}
		}
	}
}

func (s *Shell) listaGuias(ctx context.Context, factura model.FacturaAsignada) error {
	fmt.Fprintf(s.out, "\nGuías de %s — %d pendientes · %d entregadas\n",
		factura.NumeroFactura, factura.GuiasPendientes, factura.GuiasEntregadas)

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GUÍA\tESTADO\tPRODUCTO\tENTREGA")
	for _, g := range factura.GuiasVinculadas {
		entrega := ""
		if g.FechaEntrega != nil {
			entrega = g.FechaEntrega.Format("02/01/2006")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			g.NumeroGuia, views.EtiquetaEstado(g.EstadoID), g.DetalleProducto, entrega)
	}
	w.Flush()

	sel := s.prompt("Número de guía para ver detalle (enter=volver): ")
	if sel == "" {
		return nil
	}
	for _, g := range factura.GuiasVinculadas {
		if g.NumeroGuia == sel {
			return s.detalleGuia(ctx, g)
		}
	}
	fmt.Fprintln(s.out, "Guía no encontrada.")
	return nil
}

// ── Detalle de guía ──────────────────────────────────────────────────────────

func (s *Shell) detalleGuia(ctx context.Context, guia model.GuiaVinculada) error {
	fmt.Fprintf(s.out, "\nGuía %s — factura %s\n", guia.NumeroGuia, guia.NumeroFactura)
	fmt.Fprintf(s.out, "  Estado:    %s\n", views.EtiquetaEstado(guia.EstadoID))
	fmt.Fprintf(s.out, "  Producto:  %s\n", guia.DetalleProducto)
	fmt.Fprintf(s.out, "  Dirección: %s\n", guia.Direccion)
	if guia.FechaEntrega != nil {
		fmt.Fprintf(s.out, "  Entrega:   %s\n", guia.FechaEntrega.Format("02/01/2006 15:04"))
	}

	if !views.PuedeActualizar(guia) {
		return nil
	}

	var estadoID int
	var mensaje string
	switch s.prompt("e=marcar entregada, n=marcar no entregada, enter=volver: ") {
	case "e":
		estadoID = model.EstadoGuiaEntregada
		mensaje = "¿Confirmas que esta guía fue entregada?"
	case "n":
		estadoID = model.EstadoGuiaNoEntregada
		mensaje = "¿Confirmas que NO se pudo entregar esta guía?"
	default:
		return nil
	}
	if !s.confirmar(mensaje) {
		return nil
	}

	actualizada, err := s.api.ActualizarEstadoGuia(ctx, guia.GuiaID, estadoID)
	if err != nil {
		return s.alerta(err, "No se pudo actualizar el estado")
	}
	fmt.Fprintf(s.out, "Guía marcada como %s.\n", views.EtiquetaEstado(actualizada.EstadoID))
	return nil
}

// ── Viajes y perfil ──────────────────────────────────────────────────────────

func (s *Shell) viajes(ctx context.Context) error {
	viajes, err := s.api.HistorialViajes(ctx)
	if err != nil {
		return s.alerta(err, "No se pudo cargar el historial de viajes")
	}

	fmt.Fprintf(s.out, "\nViajes (%d)\n", len(viajes))
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FECHA\tFACTURA\tGUÍA\tPRODUCTO")
	for _, v := range viajes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			v.FechaViaje.Format("02/01/2006"), v.NumeroFactura, v.NumeroGuia, v.DetalleProducto)
	}
	w.Flush()
	return nil
}

func (s *Shell) perfil() {
	u := s.sesion.Usuario()
	fmt.Fprintf(s.out, "\n%s\n", u.NombreUsuario)
	fmt.Fprintf(s.out, "  Correo:   %s\n", u.Correo)
	fmt.Fprintf(s.out, "  Rol:      %s\n", u.Rol.NombreRol)
	fmt.Fprintf(s.out, "  Sucursal: %s\n", u.Sucursal.NombreSucursal)
	fmt.Fprintf(s.out, "  Backend:  %s\n", s.api.EstadoBackend())
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// cargarFacturas fetches a view, refreshing the snapshot on success and
// falling back to it when the backend is unreachable.
func (s *Shell) cargarFacturas(ctx context.Context, vista string, fetch func() ([]model.FacturaAsignada, error)) ([]model.FacturaAsignada, bool, error) {
	facturas, err := fetch()
	if err == nil {
		if cacheErr := s.cache.GuardarFacturas(ctx, vista, facturas); cacheErr != nil {
			s.log.Warn().Err(cacheErr).Msg("no se pudo guardar el snapshot")
		}
		return facturas, false, nil
	}

	if apierror.EsAutorizacion(err) {
		return nil, false, errSesionPerdida
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		// The backend answered: show its message, nothing to fall back to.
		fmt.Fprintf(s.out, "Error: %s\n", apiErr.Error())
		return nil, false, nil
	}

	cached, actualizado, cacheErr := s.cache.Facturas(ctx, vista)
	if cacheErr != nil {
		fmt.Fprintf(s.out, "Sin conexión y sin datos locales: %v\n", err)
		return nil, false, nil
	}
	s.log.Info().Time("sincronizado", actualizado).Msg("mostrando snapshot local")
	return cached, true, nil
}

// alerta shows a user-facing message for a failed action. A 401 aborts the
// flow back to login; everything else keeps the shell alive.
func (s *Shell) alerta(err error, mensaje string) error {
	if apierror.EsAutorizacion(err) {
		return errSesionPerdida
	}
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		fmt.Fprintf(s.out, "Error: %s\n", apiErr.Message)
		return nil
	}
	fmt.Fprintf(s.out, "%s: %v\n", mensaje, err)
	return nil
}

func (s *Shell) prompt(label string) string {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func (s *Shell) confirmar(mensaje string) bool {
	resp := s.prompt(mensaje + " (s/n): ")
	return resp == "s" || resp == "si" || resp == "sí"
}

func buscarFactura(facturas []model.FacturaAsignada, numero string) (model.FacturaAsignada, bool) {
	for _, f := range facturas {
		if f.NumeroFactura == numero {
			return f, true
		}
	}
	return model.FacturaAsignada{}, false
}

func (s *Shell) renderFacturas(facturas []model.FacturaAsignada, conDisponibles bool) {
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	if conDisponibles {
		fmt.Fprintln(w, "FACTURA\tVEHÍCULO\tASIGNADA\tVINCULADAS\tDISPONIBLES\tNOTAS")
		for _, f := range facturas {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
				f.NumeroFactura, f.NumeroVehiculo, f.FechaAsignacion.Format("02/01/2006"),
				f.TotalGuias, len(f.GuiasDisponibles), f.NotasJefe)
		}
	} else {
		fmt.Fprintln(w, "FACTURA\tVEHÍCULO\tASIGNADA\tGUÍAS\tNOTAS")
		for _, f := range facturas {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				f.NumeroFactura, f.NumeroVehiculo, f.FechaAsignacion.Format("02/01/2006"),
				f.TotalGuias, f.NotasJefe)
		}
	}
	w.Flush()
}
