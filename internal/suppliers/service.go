package suppliers

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/oldschoolted/tienda-cli/internal/backend"
	"github.com/oldschoolted/tienda-cli/internal/domain"
	"github.com/oldschoolted/tienda-cli/pkg/logger"
)

// Service proveedores y asignaciones producto↔proveedor (precio de costo).
// Todo el grupo requiere rol de administrador.
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

// ── Proveedores ──────────────────────────────────────────────────────────────

func (s *Service) Proveedores(ctx context.Context) ([]domain.Proveedor, error) {
	var proveedores []domain.Proveedor
	if err := s.api.Get(ctx, "/proveedores", &proveedores); err != nil {
		return nil, err
	}
	return proveedores, nil
}

func (s *Service) CrearProveedor(ctx context.Context, req domain.ProveedorRequest) (*domain.Proveedor, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var p domain.Proveedor
	if err := s.api.Post(ctx, "/proveedores", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) ActualizarProveedor(ctx context.Context, id int, req domain.ProveedorRequest) (*domain.Proveedor, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var p domain.Proveedor
	if err := s.api.Put(ctx, fmt.Sprintf("/proveedores/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) EliminarProveedor(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/proveedores/%d", id), nil)
}

// ── Asignaciones ─────────────────────────────────────────────────────────────

func (s *Service) CrearAsignacion(ctx context.Context, req domain.AsignacionRequest) (*domain.Asignacion, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var a domain.Asignacion
	if err := s.api.Post(ctx, "/asignaciones", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Service) AsignacionesPorProducto(ctx context.Context, productoID int) ([]domain.Asignacion, error) {
	var asignaciones []domain.Asignacion
	if err := s.api.Get(ctx, fmt.Sprintf("/asignaciones/producto/%d", productoID), &asignaciones); err != nil {
		return nil, err
	}
	return asignaciones, nil
}

func (s *Service) AsignacionesPorProveedor(ctx context.Context, proveedorID int) ([]domain.Asignacion, error) {
	var asignaciones []domain.Asignacion
	if err := s.api.Get(ctx, fmt.Sprintf("/asignaciones/proveedor/%d", proveedorID), &asignaciones); err != nil {
		return nil, err
	}
	return asignaciones, nil
}

// ActualizarPrecioCosto cambia el precio de costo pactado de una asignación.
func (s *Service) ActualizarPrecioCosto(ctx context.Context, asignacionID int, req domain.UpdatePrecioRequest) (*domain.Asignacion, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var a domain.Asignacion
	if err := s.api.Put(ctx, fmt.Sprintf("/asignaciones/%d/precio", asignacionID), req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Service) EliminarAsignacion(ctx context.Context, asignacionID int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/asignaciones/%d", asignacionID), nil)
}
