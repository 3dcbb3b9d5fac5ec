package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnubisPsy/Mobile-SIVEC/internal/apierror"
	"github.com/AnubisPsy/Mobile-SIVEC/internal/dto"
)

func crearGuiaFixture() dto.CrearGuiaRequest {
	return dto.CrearGuiaRequest{NumeroGuia: "G-5001", NumeroFactura: "F-2026-0001"}
}

// ── TokenSource en memoria ───────────────────────────────────────────────────

type memTokens struct {
	mu       sync.Mutex
	token    string
	limpiado int
}

func (m *memTokens) Token(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) Limpiar(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.limpiado++
	return nil
}

func (m *memTokens) vecesLimpiado() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.limpiado
}

func envelope(c *gin.Context, status int, success bool, data any, message string) {
	c.JSON(status, gin.H{"success": success, "data": data, "message": message})
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, tokens, zerolog.Nop())
}

// ── Cabeceras salientes ──────────────────────────────────────────────────────

func TestClient_AdjuntaBearerYRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var gotAuth, gotReqID string
	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		gotAuth = c.GetHeader("Authorization")
		gotReqID = c.GetHeader("X-Request-ID")
		envelope(c, http.StatusOK, true, nil, "")
	})

	tokens := &memTokens{token: "tok-abc"}
	client := newTestClient(t, r, tokens)

	require.NoError(t, client.Logout(context.Background()))
	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestClient_SinTokenNoManda_Authorization(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var gotAuth string
	hasAuth := true
	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		gotAuth = c.GetHeader("Authorization")
		_, hasAuth = c.Request.Header["Authorization"]
		envelope(c, http.StatusOK, true, nil, "")
	})

	client := newTestClient(t, r, &memTokens{})
	require.NoError(t, client.Logout(context.Background()))
	assert.Empty(t, gotAuth)
	assert.False(t, hasAuth)
}

// ── 401 limpia credenciales antes de propagar el error ───────────────────────

func TestClient_401LimpiaCredenciales(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/viajes/historial", func(c *gin.Context) {
		envelope(c, http.StatusUnauthorized, false, nil, "Token invalido")
	})

	tokens := &memTokens{token: "tok-vencido"}
	client := newTestClient(t, r, tokens)

	_, err := client.HistorialViajes(context.Background())
	require.Error(t, err)
	assert.True(t, apierror.EsAutorizacion(err))

	// Para cuando el llamador ve el error, las credenciales ya no existen.
	assert.Equal(t, 1, tokens.vecesLimpiado())
	tok, _ := tokens.Token(context.Background())
	assert.Empty(t, tok)
}

func TestClient_ErrorDeAplicacion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/guias", func(c *gin.Context) {
		envelope(c, http.StatusConflict, false, nil, "La guia ya esta vinculada a una factura")
	})

	tokens := &memTokens{token: "tok"}
	client := newTestClient(t, r, tokens)

	_, err := client.CrearGuia(context.Background(), crearGuiaFixture())
	require.Error(t, err)

	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "La guia ya esta vinculada a una factura", apiErr.Message)
	// Un rechazo de aplicación no toca las credenciales.
	assert.Zero(t, tokens.vecesLimpiado())
}

// ── Circuit breaker ──────────────────────────────────────────────────────────

func TestBreaker_AbrePorFallasDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // el backend no existe: cada llamada falla al conectar

	client := NewWithBreaker(srv.URL, time.Second, &memTokens{}, zerolog.Nop(), BreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      time.Hour,
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		err := client.Logout(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCircuitOpen)
	}

	err := client.Logout(ctx)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, "open", client.EstadoBackend())
}

func TestBreaker_RechazosDeAplicacionNoLoAbren(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		envelope(c, http.StatusConflict, false, nil, "no")
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := NewWithBreaker(srv.URL, time.Second, &memTokens{}, zerolog.Nop(), BreakerConfig{
		FailureThreshold: 1,
		OpenTimeout:      time.Hour,
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		err := client.Logout(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCircuitOpen)
	}
	assert.Equal(t, "closed", client.EstadoBackend())
}

func TestBreaker_5xxCuentaComoFalla(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		envelope(c, http.StatusInternalServerError, false, nil, "boom")
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := NewWithBreaker(srv.URL, time.Second, &memTokens{}, zerolog.Nop(), BreakerConfig{
		FailureThreshold: 1,
		OpenTimeout:      time.Hour,
	})

	ctx := context.Background()
	require.Error(t, client.Logout(ctx))
	assert.ErrorIs(t, client.Logout(ctx), ErrCircuitOpen)
}

func TestBreaker_SeRecuperaTrasElTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var mu sync.Mutex
	sano := false
	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		mu.Lock()
		okAhora := sano
		mu.Unlock()
		if !okAhora {
			envelope(c, http.StatusInternalServerError, false, nil, "boom")
			return
		}
		envelope(c, http.StatusOK, true, nil, "")
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := NewWithBreaker(srv.URL, time.Second, &memTokens{}, zerolog.Nop(), BreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		OpenTimeout:      20 * time.Millisecond,
	})

	ctx := context.Background()
	require.Error(t, client.Logout(ctx))
	assert.Equal(t, "open", client.EstadoBackend())

	mu.Lock()
	sano = true
	mu.Unlock()
	time.Sleep(30 * time.Millisecond)

	assert.NoError(t, client.Logout(ctx))
	assert.Equal(t, "closed", client.EstadoBackend())
}
