package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/oldschoolted/tienda-cli/internal/domain"
	"github.com/oldschoolted/tienda-cli/pkg/logger"
)

// apiCarrito subset del cliente HTTP que usa el manager.
type apiCarrito interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// sesion lectura mínima del estado de autenticación.
type sesion interface {
	IsLoggedIn() bool
}

// Opciones políticas del manager.
type Opciones struct {
	// GuardiaSecuencia activa el descarte de respuestas fuera de orden. Con
	// false (legado) gana la última respuesta recibida, aunque corresponda a
	// una mutación anterior.
	GuardiaSecuencia bool
}

// Manager mantiene exactamente un carrito en memoria consistente con el
// backend. Cada mutación viaja al servidor y la respuesta (el carrito
// completo) reemplaza el estado local entero: aquí no se calcula dinero ni se
// mezclan estados.
type Manager struct {
	mu      sync.Mutex
	api     apiCarrito
	ses     sesion
	log     *logger.Logger
	validar *validator.Validate
	guardia bool

	carrito *domain.Carrito

	// Números de secuencia por mutación; solo se consultan con la guardia
	// activa.
	seq            uint64
	ultimaAplicada uint64

	subs []func(*domain.Carrito)
}

// New construye el manager. El carrito arranca ausente: existe tras el primer
// fetch o mutación con sesión iniciada.
func New(api apiCarrito, ses sesion, op Opciones, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		api:     api,
		ses:     ses,
		log:     log,
		validar: validator.New(),
		guardia: op.GuardiaSecuencia,
	}
}

// Suscribir registra un observador que se invoca tras cada reemplazo del
// carrito (nil cuando pasa a ausente). Todas las vistas leen la misma
// instancia; nadie guarda copias privadas.
func (m *Manager) Suscribir(fn func(*domain.Carrito)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Carrito devuelve el snapshot actual (nil si está ausente).
func (m *Manager) Carrito() *domain.Carrito {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.carrito
}

// FetchMiCarrito carga el carrito del usuario autenticado. Un usuario sin
// carrito recibe uno vacío del backend; no es un error.
func (m *Manager) FetchMiCarrito(ctx context.Context) (*domain.Carrito, error) {
	if !m.ses.IsLoggedIn() {
		return nil, domain.ErrSinSesion
	}
	n := m.siguienteSecuencia()
	var c domain.Carrito
	if err := m.api.Get(ctx, "/carrito/mi-carrito", &c); err != nil {
		return nil, err
	}
	return m.aplicar(n, &c), nil
}

// AgregarItem añade un producto al carrito. La cantidad se valida localmente;
// personalización y parche viajan opacos y los tarifica el backend.
func (m *Manager) AgregarItem(ctx context.Context, req domain.AddItemRequest) (*domain.Carrito, error) {
	if !m.ses.IsLoggedIn() {
		return nil, domain.ErrSinSesion
	}
	if err := m.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	n := m.siguienteSecuencia()
	var c domain.Carrito
	if err := m.api.Post(ctx, "/carrito/agregar", req, &c); err != nil {
		return nil, err
	}
	return m.aplicar(n, &c), nil
}

// EliminarLinea quita la línea completa. Definido también para la última
// línea: el carrito queda vacío, no ausente.
func (m *Manager) EliminarLinea(ctx context.Context, lineaID int) (*domain.Carrito, error) {
	if !m.ses.IsLoggedIn() {
		return nil, domain.ErrSinSesion
	}
	n := m.siguienteSecuencia()
	var c domain.Carrito
	if err := m.api.Delete(ctx, fmt.Sprintf("/carrito/eliminar/%d", lineaID), &c); err != nil {
		return nil, err
	}
	return m.aplicar(n, &c), nil
}

// ActualizarCantidad cambia la cantidad de una línea. Cantidades menores que
// 1 se rechazan localmente sin tocar la red: bajar a cero es EliminarLinea,
// por diseño.
func (m *Manager) ActualizarCantidad(ctx context.Context, lineaID, nuevaCantidad int) (*domain.Carrito, error) {
	if nuevaCantidad < 1 {
		return nil, domain.ErrCantidadInvalida
	}
	if !m.ses.IsLoggedIn() {
		return nil, domain.ErrSinSesion
	}
	n := m.siguienteSecuencia()
	var c domain.Carrito
	path := fmt.Sprintf("/carrito/actualizar-cantidad/%d", lineaID)
	if err := m.api.Put(ctx, path, domain.UpdateCantidadRequest{NuevaCantidad: nuevaCantidad}, &c); err != nil {
		return nil, err
	}
	return m.aplicar(n, &c), nil
}

// ClearOnLogout descarta el carrito local sin llamada de red. Lo invoca el
// hook de logout de la sesión, de modo que los dos managers queden
// consistentes sin que uno posea al otro.
func (m *Manager) ClearOnLogout() {
	m.mu.Lock()
	m.carrito = nil
	m.ultimaAplicada = 0
	m.seq = 0
	subs := append([]func(*domain.Carrito){}, m.subs...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(nil)
	}
}

func (m *Manager) siguienteSecuencia() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return m.seq
}

// aplicar reemplaza el carrito con la respuesta del servidor. Las respuestas
// se aplican en orden de llegada; con la guardia activa, una respuesta cuya
// secuencia sea menor que la última aplicada se descarta en lugar de pisar
// una mutación más reciente.
func (m *Manager) aplicar(n uint64, c *domain.Carrito) *domain.Carrito {
	m.mu.Lock()
	if m.guardia && n < m.ultimaAplicada {
		m.log.Debug().
			Uint64("secuencia", n).
			Uint64("ultima", m.ultimaAplicada).
			Msg("respuesta de carrito fuera de orden descartada")
		actual := m.carrito
		m.mu.Unlock()
		return actual
	}
	m.carrito = c
	if n > m.ultimaAplicada {
		m.ultimaAplicada = n
	}
	subs := append([]func(*domain.Carrito){}, m.subs...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(c)
	}
	return c
}
