// Package session owns the authentication state of the client: who is logged
// in, whether the stored session survived a restart, and the role gate that
// keeps non-pilots out of this app.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/dto"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/store"
)

// Estado is the session state machine. The only transitions are
// Cargando → {Autenticado, NoAutenticado} on restore, NoAutenticado →
// Autenticado on login, and anything → NoAutenticado on logout or
// verification failure.
type Estado int

const (
	EstadoCargando Estado = iota
	EstadoAutenticado
	EstadoNoAutenticado
)

func (e Estado) String() string {
	switch e {
	case EstadoCargando:
		return "cargando"
	case EstadoAutenticado:
		return "autenticado"
	case EstadoNoAutenticado:
		return "no_autenticado"
	default:
		return "desconocido"
	}
}

// ErrRolNoPermitido rejects a structurally successful login whose user is
// not a pilot. Nothing is persisted in that case. This is a UX gate, not a
// security boundary — the backend still authorizes every call.
var ErrRolNoPermitido = errors.New("esta aplicacion es exclusiva para pilotos; jefes y administradores deben usar el panel web")

// API is the slice of the backend client the session needs.
type API interface {
	Login(ctx context.Context, loginInput, password string) (*dto.LoginData, error)
	VerificarToken(ctx context.Context) (*dto.VerificarData, error)
	Logout(ctx context.Context) error
}

// Manager is the single source of truth for "is someone logged in and who".
// It is built once at the composition root and injected into the shell; all
// operations are serialized so restore/login/logout never interleave.
type Manager struct {
	mu           sync.Mutex
	api          API
	creds        store.CredencialRepository
	rolPermitido int
	estado       Estado
	usuario      *model.Usuario
	log          zerolog.Logger
}

func NewManager(api API, creds store.CredencialRepository, rolPermitido int, log zerolog.Logger) *Manager {
	return &Manager{
		api:          api,
		creds:        creds,
		rolPermitido: rolPermitido,
		estado:       EstadoCargando,
		log:          log,
	}
}

// Restaurar tries to resume a persisted session on app start. Network errors
// mean "not authenticated", never a crash; the loading state clears on every
// path.
func (m *Manager) Restaurar(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() {
		if m.estado == EstadoCargando {
			m.estado = EstadoNoAutenticado
		}
	}()

	token, err := m.creds.Token(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("no se pudo leer el token almacenado")
		return
	}
	usuario, err := m.creds.Usuario(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("no se pudo leer el usuario almacenado")
		return
	}
	if token == "" || usuario == nil {
		return
	}

	// A stored session for a non-pilot (role changed, or an experiment left
	// it behind) is cleaned up silently.
	if usuario.RolID != m.rolPermitido {
		if err := m.creds.Limpiar(ctx); err != nil {
			m.log.Warn().Err(err).Msg("no se pudieron limpiar credenciales de rol no permitido")
		}
		return
	}

	resp, err := m.api.VerificarToken(ctx)
	if err != nil || !resp.TokenValido {
		m.log.Info().Err(err).Msg("token almacenado invalido, cerrando sesion")
		m.logoutLocked(ctx)
		return
	}

	m.usuario = usuario
	m.estado = EstadoAutenticado
	m.log.Info().Str("usuario", usuario.NombreUsuario).Msg("sesion restaurada")
}

// Login authenticates against the backend and persists the session. On any
// failure — transport, application, or role gate — nothing is persisted and
// the state stays unauthenticated.
func (m *Manager) Login(ctx context.Context, loginInput, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.api.Login(ctx, loginInput, password)
	if err != nil {
		m.estado = EstadoNoAutenticado
		return err
	}

	if data.Usuario.RolID != m.rolPermitido {
		m.estado = EstadoNoAutenticado
		m.log.Info().
			Str("usuario", data.Usuario.NombreUsuario).
			Int("rol_id", data.Usuario.RolID).
			Msg("login rechazado por rol")
		return ErrRolNoPermitido
	}

	if err := m.creds.GuardarSesion(ctx, data.Token, &data.Usuario); err != nil {
		m.estado = EstadoNoAutenticado
		return err
	}

	usuario := data.Usuario
	m.usuario = &usuario
	m.estado = EstadoAutenticado
	m.log.Info().Str("usuario", usuario.NombreUsuario).Msg("login exitoso")
	return nil
}

// Logout always succeeds from the caller's point of view: the server call is
// best-effort, the local wipe is unconditional.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutLocked(ctx)
}

func (m *Manager) logoutLocked(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.log.Warn().Err(err).Msg("logout en el servidor fallo, continuando")
	}
	if err := m.creds.Limpiar(ctx); err != nil {
		m.log.Warn().Err(err).Msg("no se pudieron limpiar credenciales locales")
	}
	m.usuario = nil
	m.estado = EstadoNoAutenticado
}

func (m *Manager) Estado() Estado {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.estado
}

func (m *Manager) Autenticado() bool { return m.Estado() == EstadoAutenticado }

// Usuario returns the current user, or nil when logged out.
func (m *Manager) Usuario() *model.Usuario {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usuario
}
