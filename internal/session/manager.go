package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/oldschoolted/tienda-cli/internal/domain"
	pkgjwt "github.com/oldschoolted/tienda-cli/pkg/jwt"
	"github.com/oldschoolted/tienda-cli/pkg/logger"
)

// apiAuth subset del cliente HTTP que usa el manager. Interfaz propia para
// poder stubearlo en tests sin levantar red.
type apiAuth interface {
	Post(ctx context.Context, path string, body, out any) error
}

// Manager fuente única de verdad sobre quién tiene sesión iniciada y con qué
// privilegios, durable entre ejecuciones. Invariante: token presente ⇔
// usuario presente; nunca se observa estado parcial.
type Manager struct {
	mu      sync.RWMutex
	api     apiAuth
	almacen Almacen
	log     *logger.Logger
	validar *validator.Validate

	token   string
	usuario *domain.AuthResponse

	hooksLogout []func()
}

// New construye el manager y restaura el estado persistido. Una sesión
// ilegible en disco se descarta con un warning: arrancar sin sesión siempre
// es preferible a no arrancar.
func New(almacen Almacen, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	m := &Manager{
		almacen: almacen,
		log:     log,
		validar: validator.New(),
	}
	token, usuario, err := almacen.Cargar()
	if err != nil {
		log.Warn().Err(err).Msg("sesión persistida ilegible, se arranca sin sesión")
		return m
	}
	// El invariante token ⇔ usuario también aplica a lo restaurado.
	if token != "" && usuario != nil {
		m.token = token
		m.usuario = usuario
	}
	return m
}

// ConectarAPI enlaza el cliente HTTP. Se hace en dos fases porque el cliente
// necesita al manager como TokenSource para el relay.
func (m *Manager) ConectarAPI(api apiAuth) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.api = api
}

// RegistrarHookLogout registra una función que se ejecuta tras cada cierre de
// sesión (el carrito se limpia por esta vía, sin que un manager posea al otro).
func (m *Manager) RegistrarHookLogout(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooksLogout = append(m.hooksLogout, fn)
}

// ── Lecturas derivadas (síncronas, sin efectos) ──────────────────────────────

// Token implementa backend.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// IsLoggedIn true si hay token vigente en memoria.
func (m *Manager) IsLoggedIn() bool {
	return m.Token() != ""
}

// IsAdmin true si el usuario actual tiene el rol Administrador.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.usuario.EsAdmin()
}

// UsuarioActual devuelve una copia del registro de usuario, o nil sin sesión.
func (m *Manager) UsuarioActual() *domain.AuthResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.usuario == nil {
		return nil
	}
	u := *m.usuario
	u.Roles = append([]string(nil), m.usuario.Roles...)
	return &u
}

// SesionExpira devuelve cuándo vence el token actual según su claim exp.
func (m *Manager) SesionExpira() (time.Time, error) {
	tok := m.Token()
	if tok == "" {
		return time.Time{}, domain.ErrSinSesion
	}
	info, err := pkgjwt.Inspeccionar(tok)
	if err != nil {
		return time.Time{}, err
	}
	return info.Expira, nil
}

// ── Mutaciones ───────────────────────────────────────────────────────────────

// Login autentica contra el backend. En éxito fija token y usuario de forma
// atómica en memoria y disco; en fallo el estado previo queda intacto y se
// devuelve un error clasificado. No hay reintentos automáticos.
func (m *Manager) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	if err := m.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	return m.autenticar(ctx, "/auth/login", req)
}

// Register da de alta al usuario; el alta exitosa autentica inmediatamente
// (mismo contrato que Login).
func (m *Manager) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if err := m.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	return m.autenticar(ctx, "/auth/register", req)
}

func (m *Manager) autenticar(ctx context.Context, path string, req any) (*domain.AuthResponse, error) {
	api := m.apiActual()
	if api == nil {
		return nil, fmt.Errorf("%w: cliente HTTP no conectado", domain.ErrDesconocido)
	}

	var resp domain.AuthResponse
	if err := api.Post(ctx, path, req, &resp); err != nil {
		return nil, clasificarErrorAuth(err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: el backend no devolvió token", domain.ErrDesconocido)
	}

	m.mu.Lock()
	m.token = resp.Token
	m.usuario = &resp
	if err := m.almacen.Guardar(resp.Token, &resp); err != nil {
		// La sesión en memoria sigue siendo válida; solo se pierde la
		// persistencia entre ejecuciones.
		m.log.Warn().Err(err).Msg("no se pudo persistir la sesión")
	}
	m.mu.Unlock()

	m.log.Info().Str("email", resp.Email).Msg("sesión iniciada")
	return m.UsuarioActual(), nil
}

// Logout cierra la sesión: síncrono, idempotente y nunca falla. Limpia
// memoria y disco y ejecuta los hooks registrados.
func (m *Manager) Logout() {
	m.cerrar("logout")
}

// InvalidarPorRechazo cierra la sesión cuando el backend rechaza el token
// (política LogoutAutomatico401). Mismo efecto que Logout.
func (m *Manager) InvalidarPorRechazo() {
	m.cerrar("token rechazado por el backend")
}

func (m *Manager) cerrar(motivo string) {
	m.mu.Lock()
	teniaSesion := m.token != ""
	m.token = ""
	m.usuario = nil
	if err := m.almacen.Limpiar(); err != nil {
		m.log.Warn().Err(err).Msg("no se pudo limpiar la sesión persistida")
	}
	hooks := append([]func(){}, m.hooksLogout...)
	m.mu.Unlock()

	if teniaSesion {
		m.log.Info().Str("motivo", motivo).Msg("sesión cerrada")
	}
	// Los hooks corren fuera del lock: pueden leer el manager.
	for _, fn := range hooks {
		fn()
	}
}

// ── Operaciones sin estado ───────────────────────────────────────────────────

// SolicitarCodigoDesbloqueo pide al backend un código de restablecimiento por
// email. No toca el estado de sesión; devuelve el mensaje del servidor.
func (m *Manager) SolicitarCodigoDesbloqueo(ctx context.Context, email string) (string, error) {
	if err := m.validar.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("%w: email inválido", domain.ErrValidacion)
	}
	api := m.apiActual()
	if api == nil {
		return "", fmt.Errorf("%w: cliente HTTP no conectado", domain.ErrDesconocido)
	}
	var msg domain.Mensaje
	if err := api.Post(ctx, "/auth/request-reset", map[string]string{"email": email}, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

// DesbloquearCuenta confirma el desbloqueo con el código recibido y fija una
// contraseña nueva. No autentica: el usuario debe hacer login después.
func (m *Manager) DesbloquearCuenta(ctx context.Context, req domain.UnlockRequest) (string, error) {
	if err := m.validar.Struct(req); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	api := m.apiActual()
	if api == nil {
		return "", fmt.Errorf("%w: cliente HTTP no conectado", domain.ErrDesconocido)
	}
	var msg domain.Mensaje
	if err := api.Post(ctx, "/auth/unlock", req, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

func (m *Manager) apiActual() apiAuth {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.api
}

// clasificarErrorAuth re-mapea el error normalizado al vocabulario del login:
// un 401 aquí son credenciales inválidas, no una sesión caducada, y un cuerpo
// que menciona bloqueo se clasifica como cuenta bloqueada.
func clasificarErrorAuth(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "bloquead") || strings.Contains(msg, "locked") {
		return fmt.Errorf("%w: %v", domain.ErrCuentaBloqueada, err)
	}
	if errors.Is(err, domain.ErrSesionExpirada) || errors.Is(err, domain.ErrProhibido) {
		return fmt.Errorf("%w", domain.ErrCredencialesInvalidas)
	}
	return err
}
