package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/model"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "piloto.db"))
	require.NoError(t, err)
	return db
}

// ── Credenciales ─────────────────────────────────────────────────────────────

func TestCredenciales_RoundTrip(t *testing.T) {
	repo := NewCredencialRepository(testDB(t))
	ctx := context.Background()

	u := &model.Usuario{
		UsuarioID:     7,
		NombreUsuario: "piloto_x",
		Correo:        "piloto_x@sivec.hn",
		RolID:         model.RolPiloto,
		SucursalID:    1,
	}
	require.NoError(t, repo.GuardarSesion(ctx, "tok-123", u))

	token, err := repo.Token(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	leido, err := repo.Usuario(ctx)
	assert.NoError(t, err)
	require.NotNil(t, leido)
	assert.Equal(t, 7, leido.UsuarioID)
	assert.Equal(t, "piloto_x", leido.NombreUsuario)
	assert.Equal(t, model.RolPiloto, leido.RolID)
}

func TestCredenciales_GuardarSobrescribe(t *testing.T) {
	repo := NewCredencialRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.GuardarSesion(ctx, "tok-viejo", &model.Usuario{UsuarioID: 1, NombreUsuario: "a"}))
	require.NoError(t, repo.GuardarSesion(ctx, "tok-nuevo", &model.Usuario{UsuarioID: 2, NombreUsuario: "b"}))

	token, err := repo.Token(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "tok-nuevo", token)

	u, err := repo.Usuario(ctx)
	assert.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, 2, u.UsuarioID)
}

func TestCredenciales_SinSesion(t *testing.T) {
	repo := NewCredencialRepository(testDB(t))
	ctx := context.Background()

	token, err := repo.Token(ctx)
	assert.NoError(t, err)
	assert.Empty(t, token)

	u, err := repo.Usuario(ctx)
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestCredenciales_Limpiar(t *testing.T) {
	db := testDB(t)
	repo := NewCredencialRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.GuardarSesion(ctx, "tok", &model.Usuario{UsuarioID: 7, NombreUsuario: "piloto_x"}))
	require.NoError(t, repo.Limpiar(ctx))

	token, err := repo.Token(ctx)
	assert.NoError(t, err)
	assert.Empty(t, token)

	u, err := repo.Usuario(ctx)
	assert.NoError(t, err)
	assert.Nil(t, u)

	var n int64
	require.NoError(t, db.Model(&Credencial{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCredenciales_UsuarioCorrupto(t *testing.T) {
	db := testDB(t)
	repo := NewCredencialRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&Credencial{Clave: "sivec_user", Valor: "{esto no es json"}).Error)

	// Un registro corrupto se trata como ausencia: el próximo arranque
	// empieza deslogueado en vez de fallar.
	u, err := repo.Usuario(ctx)
	assert.NoError(t, err)
	assert.Nil(t, u)
}

// ── Snapshot de facturas ─────────────────────────────────────────────────────

func TestCache_SinSnapshot(t *testing.T) {
	repo := NewCacheRepository(testDB(t))

	_, _, err := repo.Facturas(context.Background(), VistaActivas)
	assert.ErrorIs(t, err, ErrSinSnapshot)
}

func TestCache_RoundTrip(t *testing.T) {
	repo := NewCacheRepository(testDB(t))
	ctx := context.Background()

	facturas := []model.FacturaAsignada{
		{
			NumeroFactura:   "F-2026-0001",
			UsuarioID:       7,
			Piloto:          "piloto_x",
			NumeroVehiculo:  "V-12",
			FechaAsignacion: time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC),
			TotalGuias:      2,
			GuiasPendientes: 1,
			GuiasEntregadas: 1,
		},
	}
	antes := time.Now()
	require.NoError(t, repo.GuardarFacturas(ctx, VistaActivas, facturas))

	leidas, actualizado, err := repo.Facturas(ctx, VistaActivas)
	require.NoError(t, err)
	require.Len(t, leidas, 1)
	assert.Equal(t, "F-2026-0001", leidas[0].NumeroFactura)
	assert.Equal(t, 2, leidas[0].TotalGuias)
	assert.Equal(t, 1, leidas[0].GuiasPendientes)
	assert.False(t, actualizado.Before(antes.Truncate(time.Second)))
}

func TestCache_VistasIndependientes(t *testing.T) {
	repo := NewCacheRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.GuardarFacturas(ctx, VistaActivas, []model.FacturaAsignada{{NumeroFactura: "F-A"}}))
	require.NoError(t, repo.GuardarFacturas(ctx, VistaHistorial, []model.FacturaAsignada{{NumeroFactura: "F-H"}}))

	activas, _, err := repo.Facturas(ctx, VistaActivas)
	require.NoError(t, err)
	require.Len(t, activas, 1)
	assert.Equal(t, "F-A", activas[0].NumeroFactura)

	historial, _, err := repo.Facturas(ctx, VistaHistorial)
	require.NoError(t, err)
	require.Len(t, historial, 1)
	assert.Equal(t, "F-H", historial[0].NumeroFactura)
}

func TestCache_SobrescribePorVista(t *testing.T) {
	repo := NewCacheRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.GuardarFacturas(ctx, VistaActivas, []model.FacturaAsignada{{NumeroFactura: "F-1"}, {NumeroFactura: "F-2"}}))
	require.NoError(t, repo.GuardarFacturas(ctx, VistaActivas, []model.FacturaAsignada{{NumeroFactura: "F-3"}}))

	leidas, _, err := repo.Facturas(ctx, VistaActivas)
	require.NoError(t, err)
	require.Len(t, leidas, 1)
	assert.Equal(t, "F-3", leidas[0].NumeroFactura)
}
