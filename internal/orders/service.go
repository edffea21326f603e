package orders

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/oldschoolted/tienda-cli/internal/backend"
	"github.com/oldschoolted/tienda-cli/internal/domain"
	"github.com/oldschoolted/tienda-cli/pkg/logger"
)

// Service pedidos del cliente y gestión de pedidos del admin. Las
// transiciones de estado (pedido, pago, envío) son lógica del backend; aquí
// solo se envían las solicitudes.
type Service struct {
	api     *backend.Client
	validar *validator.Validate
	log     *logger.Logger
}

func New(api *backend.Client, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: api, validar: validator.New(), log: log}
}

// ── Cliente ──────────────────────────────────────────────────────────────────

// CrearDesdeCarrito convierte el carrito actual del usuario en un pedido. El
// backend vacía el carrito como parte de la operación; el pago aquí es
// simulado y solo viaja la información declarada.
func (s *Service) CrearDesdeCarrito(ctx context.Context, req domain.PedidoRequest) (*domain.Pedido, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var p domain.Pedido
	if err := s.api.Post(ctx, "/pedidos/crear", req, &p); err != nil {
		return nil, err
	}
	s.log.Info().Int("pedido", p.PedidoID).Msg("pedido creado")
	return &p, nil
}

// MisPedidos historial del usuario autenticado.
func (s *Service) MisPedidos(ctx context.Context) ([]domain.Pedido, error) {
	var pedidos []domain.Pedido
	if err := s.api.Get(ctx, "/pedidos/mis-pedidos", &pedidos); err != nil {
		return nil, err
	}
	return pedidos, nil
}

func (s *Service) PedidoPorID(ctx context.Context, id int) (*domain.Pedido, error) {
	var p domain.Pedido
	if err := s.api.Get(ctx, fmt.Sprintf("/pedidos/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ── Administración ───────────────────────────────────────────────────────────

func (s *Service) TodosLosPedidos(ctx context.Context) ([]domain.Pedido, error) {
	var pedidos []domain.Pedido
	if err := s.api.Get(ctx, "/admin/pedidos", &pedidos); err != nil {
		return nil, err
	}
	return pedidos, nil
}

func (s *Service) ActualizarEstado(ctx context.Context, id int, req domain.AdminUpdatePedidoStatusRequest) (*domain.Pedido, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var p domain.Pedido
	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/pedidos/%d/estado", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) ActualizarPago(ctx context.Context, id int, req domain.AdminUpdatePagoRequest) (*domain.Pedido, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var p domain.Pedido
	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/pedidos/%d/pago", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) ActualizarEnvio(ctx context.Context, id int, req domain.AdminUpdateEnvioRequest) (*domain.Pedido, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var p domain.Pedido
	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/pedidos/%d/envio", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) EliminarPedido(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/admin/pedidos/%d", id), nil)
}
