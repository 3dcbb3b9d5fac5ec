package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/dto"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/store"
)

// ── Backend falso ────────────────────────────────────────────────────────────

type fakeAPI struct {
	loginData  *dto.LoginData
	loginErr   error
	verifyData *dto.VerificarData
	verifyErr  error
	logoutErr  error

	verifyCalls int
	logoutCalls int
}

func (f *fakeAPI) Login(context.Context, string, string) (*dto.LoginData, error) {
	return f.loginData, f.loginErr
}

func (f *fakeAPI) VerificarToken(context.Context) (*dto.VerificarData, error) {
	f.verifyCalls++
	return f.verifyData, f.verifyErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func testCreds(t *testing.T) store.CredencialRepository {
	t.Helper()
	db, err := store.NewDatabase(filepath.Join(t.TempDir(), "piloto.db"))
	require.NoError(t, err)
	return store.NewCredencialRepository(db)
}

func piloto() model.Usuario {
	return model.Usuario{
		UsuarioID:     7,
		NombreUsuario: "piloto_x",
		Correo:        "piloto_x@sivec.hn",
		RolID:         model.RolPiloto,
		SucursalID:    1,
	}
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_PilotoPersisteSesion(t *testing.T) {
	creds := testCreds(t)
	api := &fakeAPI{loginData: &dto.LoginData{Token: "tok-7", Usuario: piloto()}}
	m := NewManager(api, creds, model.RolPiloto, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, m.Login(ctx, "piloto_x", "secreto123"))

	assert.Equal(t, EstadoAutenticado, m.Estado())
	require.NotNil(t, m.Usuario())
	assert.Equal(t, 7, m.Usuario().UsuarioID)

	token, err := creds.Token(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "tok-7", token)
	u, err := creds.Usuario(ctx)
	assert.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "piloto_x", u.NombreUsuario)
}

func TestLogin_RolNoPermitido(t *testing.T) {
	creds := testCreds(t)
	jefe := piloto()
	jefe.UsuarioID = 9
	jefe.NombreUsuario = "jefe_y"
	jefe.RolID = model.RolJefeDeYarda
	api := &fakeAPI{loginData: &dto.LoginData{Token: "tok-9", Usuario: jefe}}
	m := NewManager(api, creds, model.RolPiloto, zerolog.Nop())
	ctx := context.Background()

	err := m.Login(ctx, "jefe_y", "secreto123")
	assert.ErrorIs(t, err, ErrRolNoPermitido)
	assert.Equal(t, EstadoNoAutenticado, m.Estado())
	assert.Nil(t, m.Usuario())

	// El login estructuralmente exitoso pero con rol ajeno no deja rastro.
	token, err := creds.Token(ctx)
	assert.NoError(t, err)
	assert.Empty(t, token)
	u, err := creds.Usuario(ctx)
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestLogin_ErrorDelBackend(t *testing.T) {
	creds := testCreds(t)
	api := &fakeAPI{loginErr: errors.New("credenciales invalidas")}
	m := NewManager(api, creds, model.RolPiloto, zerolog.Nop())

	err := m.Login(context.Background(), "piloto_x", "mala")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrRolNoPermitido)
	assert.Equal(t, EstadoNoAutenticado, m.Estado())
}

// ── Restaurar ────────────────────────────────────────────────────────────────

func TestRestaurar_SesionValida(t *testing.T) {
	creds := testCreds(t)
	ctx := context.Background()
	u := piloto()
	require.NoError(t, creds.GuardarSesion(ctx, "tok-7", &u))

	api := &fakeAPI{verifyData: &dto.VerificarData{Usuario: u, TokenValido: true}}
	m := NewManager(api, creds, model.RolPiloto, zerolog.Nop())

	m.Restaurar(ctx)

	assert.Equal(t, EstadoAutenticado, m.Estado())
	require.NotNil(t, m.Usuario())
	assert.Equal(t, u.UsuarioID, m.Usuario().UsuarioID)
	assert.Equal(t, u.NombreUsuario, m.Usuario().NombreUsuario)
	assert.Equal(t, 1, api.verifyCalls)
}

func TestRestaurar_SinSesionGuardada(t *testing.T) {
	api := &fakeAPI{}
	m := NewManager(api, testCreds(t), model.RolPiloto, zerolog.Nop())

	m.Restaurar(context.Background())

	assert.Equal(t, EstadoNoAutenticado, m.Estado())
	// Sin token guardado no hay nada que verificar contra el backend.
	assert.Zero(t, api.verifyCalls)
}

func TestRestaurar_TokenInvalidoCierraSesion(t *testing.T) {
	creds := testCreds(t)
	ctx := context.Background()
	u := piloto()
	require.NoError(t, creds.GuardarSesion(ctx, "tok-vencido", &u))

	api := &fakeAPI{verifyErr: errors.New("401")}
	m := NewManager(api, creds, model.RolPiloto, zerolog.Nop())

	m.Restaurar(ctx)

	assert.Equal(t, EstadoNoAutenticado, m.Estado())
	token, err := creds.Token(ctx)
	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestRestaurar_RolAjenoLimpiaSinVerificar(t *testing.T) {
	creds := testCreds(t)
	ctx := context.Background()
	jefe := piloto()
	jefe.RolID = model.RolJefeDeYarda
	require.NoError(t, creds.GuardarSesion(ctx, "tok-jefe", &jefe))

	api := &fakeAPI{verifyData: &dto.VerificarData{Usuario: jefe, TokenValido: true}}
	m := NewManager(api, creds, model.RolPiloto, zerolog.Nop())

	m.Restaurar(ctx)

	assert.Equal(t, EstadoNoAutenticado, m.Estado())
	assert.Zero(t, api.verifyCalls)
	token, err := creds.Token(ctx)
	assert.NoError(t, err)
	assert.Empty(t, token)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestLogout_LimpiaAunqueElServidorFalle(t *testing.T) {
	creds := testCreds(t)
	ctx := context.Background()
	u := piloto()
	api := &fakeAPI{
		loginData: &dto.LoginData{Token: "tok-7", Usuario: u},
		logoutErr: errors.New("backend inaccesible"),
	}
	m := NewManager(api, creds, model.RolPiloto, zerolog.Nop())
	require.NoError(t, m.Login(ctx, "piloto_x", "secreto123"))

	m.Logout(ctx)

	assert.Equal(t, EstadoNoAutenticado, m.Estado())
	assert.Nil(t, m.Usuario())
	assert.Equal(t, 1, api.logoutCalls)
	token, err := creds.Token(ctx)
	assert.NoError(t, err)
	assert.Empty(t, token)
}
