package promos

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/oldschoolted/tienda-cli/internal/backend"
	"github.com/oldschoolted/tienda-cli/internal/domain"
	"github.com/oldschoolted/tienda-cli/pkg/logger"
)

// Service promociones: lectura pública y gestión de admin. Un código
// duplicado responde 409 y llega como domain.ErrConflicto.
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

func (s *Service) Promociones(ctx context.Context) ([]domain.Promocion, error) {
	var promos []domain.Promocion
	if err := s.api.Get(ctx, "/promociones", &promos); err != nil {
		return nil, err
	}
	return promos, nil
}

func (s *Service) PromocionPorID(ctx context.Context, id int) (*domain.Promocion, error) {
	var p domain.Promocion
	if err := s.api.Get(ctx, fmt.Sprintf("/promociones/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) CrearPromocion(ctx context.Context, req domain.PromocionRequest) (*domain.Promocion, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var p domain.Promocion
	if err := s.api.Post(ctx, "/admin/promociones", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) ActualizarPromocion(ctx context.Context, id int, req domain.PromocionRequest) (*domain.Promocion, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var p domain.Promocion
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/promociones/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DesactivarPromocion baja lógica; el backend conserva el histórico.
func (s *Service) DesactivarPromocion(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/admin/promociones/%d", id), nil)
}
