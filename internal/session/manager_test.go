package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oldschoolted/tienda-cli/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// almacenMemoria implementa Almacen en memoria para tests.
type almacenMemoria struct {
	token    string
	usuario  *domain.AuthResponse
	guardados int
	limpiezas int
}

func (a *almacenMemoria) Cargar() (string, *domain.AuthResponse, error) {
	return a.token, a.usuario, nil
}

func (a *almacenMemoria) Guardar(token string, usuario *domain.AuthResponse) error {
	a.guardados++
	a.token = token
	a.usuario = usuario
	return nil
}

func (a *almacenMemoria) Limpiar() error {
	a.limpiezas++
	a.token = ""
	a.usuario = nil
	return nil
}

type apiAuthFalsa struct {
	resp    domain.AuthResponse
	mensaje string
	err     error

	llamadas   int
	ultimaRuta string
}

func (a *apiAuthFalsa) Post(_ context.Context, path string, _ any, out any) error {
	a.llamadas++
	a.ultimaRuta = path
	if a.err != nil {
		return a.err
	}
	switch v := out.(type) {
	case *domain.AuthResponse:
		*v = a.resp
	case *domain.Mensaje:
		*v = domain.Mensaje{Message: a.mensaje}
	}
	return nil
}

func usuarioCliente() domain.AuthResponse {
	return domain.AuthResponse{
		Token:  "tok-123",
		ID:     7,
		Nombre: "Teodoro",
		Email:  "teo@oldschool.com",
		Roles:  []string{"Cliente"},
	}
}

func managerConAPI(t *testing.T, api apiAuth) (*Manager, *almacenMemoria) {
	t.Helper()
	alm := &almacenMemoria{}
	m := New(alm, nil)
	m.ConectarAPI(api)
	return m, alm
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso: tras un login exitoso, token y usuario quedan fijados a la vez en
// memoria y en el almacén; nunca hay estado mixto.
func TestLogin_Atomicidad(t *testing.T) {
	api := &apiAuthFalsa{resp: usuarioCliente()}
	m, alm := managerConAPI(t, api)

	u, err := m.Login(context.Background(), domain.LoginRequest{Email: "teo@oldschool.com", Password: "secreta"})
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.True(t, m.IsLoggedIn())
	assert.Equal(t, "tok-123", m.Token())
	assert.NotNil(t, m.UsuarioActual())
	assert.Equal(t, "/auth/login", api.ultimaRuta)

	// Persistido junto, nunca por separado.
	assert.Equal(t, 1, alm.guardados)
	assert.Equal(t, "tok-123", alm.token)
	require.NotNil(t, alm.usuario)
	assert.Equal(t, "teo@oldschool.com", alm.usuario.Email)
}

// Caso: un login fallido deja el estado previo intacto.
func TestLogin_FalloNoTocaEstado(t *testing.T) {
	api := &apiAuthFalsa{err: domain.ErrSesionExpirada} // 401 del backend
	m, alm := managerConAPI(t, api)

	_, err := m.Login(context.Background(), domain.LoginRequest{Email: "teo@oldschool.com", Password: "mala"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCredencialesInvalidas,
		"un 401 en el login son credenciales inválidas, no sesión expirada")

	assert.False(t, m.IsLoggedIn())
	assert.Nil(t, m.UsuarioActual())
	assert.Equal(t, 0, alm.guardados)
}

// Caso: credenciales sin validar no viajan a la red.
func TestLogin_ValidacionLocal(t *testing.T) {
	api := &apiAuthFalsa{}
	m, _ := managerConAPI(t, api)

	_, err := m.Login(context.Background(), domain.LoginRequest{Email: "no-es-email", Password: ""})
	assert.ErrorIs(t, err, domain.ErrValidacion)
	assert.Equal(t, 0, api.llamadas)
}

// Caso: un cuerpo de error que menciona bloqueo se clasifica como cuenta
// bloqueada.
func TestLogin_CuentaBloqueada(t *testing.T) {
	api := &apiAuthFalsa{err: errors.New("acceso denegado: cuenta bloqueada por intentos fallidos")}
	m, _ := managerConAPI(t, api)

	_, err := m.Login(context.Background(), domain.LoginRequest{Email: "teo@oldschool.com", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrCuentaBloqueada)
}

// Caso: registrar implica iniciar sesión con el mismo contrato que Login.
func TestRegister_AutenticaInmediatamente(t *testing.T) {
	api := &apiAuthFalsa{resp: usuarioCliente()}
	m, _ := managerConAPI(t, api)

	_, err := m.Register(context.Background(), domain.RegisterRequest{
		Nombre: "Teodoro", Email: "teo@oldschool.com", Password: "secreta1",
	})
	require.NoError(t, err)
	assert.True(t, m.IsLoggedIn())
	assert.Equal(t, "/auth/register", api.ultimaRuta)
}

// Caso: round-trip de persistencia. Reconstruir el manager desde el mismo
// archivo reproduce token y usuario.
func TestPersistencia_RoundTrip(t *testing.T) {
	ruta := filepath.Join(t.TempDir(), "sesion.json")
	alm := NewAlmacenArchivo(ruta)

	api := &apiAuthFalsa{resp: usuarioCliente()}
	m1 := New(alm, nil)
	m1.ConectarAPI(api)
	_, err := m1.Login(context.Background(), domain.LoginRequest{Email: "teo@oldschool.com", Password: "secreta"})
	require.NoError(t, err)

	// Proceso nuevo: mismo archivo, manager nuevo.
	m2 := New(NewAlmacenArchivo(ruta), nil)
	assert.True(t, m2.IsLoggedIn())
	assert.Equal(t, m1.Token(), m2.Token())
	u1, u2 := m1.UsuarioActual(), m2.UsuarioActual()
	require.NotNil(t, u2)
	assert.Equal(t, u1.Email, u2.Email)
	assert.Equal(t, u1.Roles, u2.Roles)
}

// Caso: IsAdmin responde exactamente a la presencia del rol Administrador.
func TestIsAdmin(t *testing.T) {
	casos := []struct {
		nombre string
		roles  []string
		espera bool
	}{
		{"sin usuario", nil, false},
		{"solo cliente", []string{"Cliente"}, false},
		{"admin y cliente", []string{"Administrador", "Cliente"}, true},
		{"solo admin", []string{"Administrador"}, true},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			alm := &almacenMemoria{}
			if c.roles != nil {
				u := usuarioCliente()
				u.Roles = c.roles
				alm.token = u.Token
				alm.usuario = &u
			}
			m := New(alm, nil)
			assert.Equal(t, c.espera, m.IsAdmin())
		})
	}
}

// Caso: logout es idempotente, nunca falla y dispara los hooks registrados.
func TestLogout_IdempotenteConHooks(t *testing.T) {
	api := &apiAuthFalsa{resp: usuarioCliente()}
	m, alm := managerConAPI(t, api)

	hooks := 0
	m.RegistrarHookLogout(func() { hooks++ })

	_, err := m.Login(context.Background(), domain.LoginRequest{Email: "teo@oldschool.com", Password: "secreta"})
	require.NoError(t, err)

	m.Logout()
	assert.False(t, m.IsLoggedIn())
	assert.Nil(t, m.UsuarioActual())
	assert.Empty(t, alm.token)
	assert.Nil(t, alm.usuario)
	assert.Equal(t, 1, hooks)

	// Repetir no cambia nada y tampoco falla.
	m.Logout()
	assert.False(t, m.IsLoggedIn())
	assert.Equal(t, 2, hooks)
}

// Caso: InvalidarPorRechazo equivale a un logout (política de 401).
func TestInvalidarPorRechazo(t *testing.T) {
	api := &apiAuthFalsa{resp: usuarioCliente()}
	m, _ := managerConAPI(t, api)

	_, err := m.Login(context.Background(), domain.LoginRequest{Email: "teo@oldschool.com", Password: "secreta"})
	require.NoError(t, err)

	m.InvalidarPorRechazo()
	assert.False(t, m.IsLoggedIn())
}

// Caso: las operaciones de desbloqueo son pasarelas sin estado; devuelven el
// mensaje del servidor y no tocan la sesión.
func TestDesbloqueo_NoMutaSesion(t *testing.T) {
	api := &apiAuthFalsa{mensaje: "Código enviado al correo"}
	m, _ := managerConAPI(t, api)

	msg, err := m.SolicitarCodigoDesbloqueo(context.Background(), "teo@oldschool.com")
	require.NoError(t, err)
	assert.Equal(t, "Código enviado al correo", msg)
	assert.Equal(t, "/auth/request-reset", api.ultimaRuta)
	assert.False(t, m.IsLoggedIn())

	api.mensaje = "Cuenta desbloqueada"
	msg, err = m.DesbloquearCuenta(context.Background(), domain.UnlockRequest{
		Email: "teo@oldschool.com", Code: "123456", NewPassword: "nueva-clave",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cuenta desbloqueada", msg)
	assert.Equal(t, "/auth/unlock", api.ultimaRuta)
	assert.False(t, m.IsLoggedIn())
}

// Caso: una sesión persistida solo con token (estado parcial) se descarta al
// restaurar; el invariante token ⇔ usuario también aplica al arranque.
func TestRestaurar_DescartaEstadoParcial(t *testing.T) {
	alm := &almacenMemoria{token: "tok-colgado"}
	m := New(alm, nil)
	assert.False(t, m.IsLoggedIn())
	assert.Nil(t, m.UsuarioActual())
}
