package inventory

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/oldschoolted/tienda-cli/internal/backend"
	"github.com/oldschoolted/tienda-cli/internal/domain"
	"github.com/oldschoolted/tienda-cli/pkg/logger"
)

// Service inventario por producto. El ajuste de stock (validaciones, stock
// negativo, auditoría) vive en el backend.
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

func (s *Service) TodoElInventario(ctx context.Context) ([]domain.Inventario, error) {
	var inventario []domain.Inventario
	if err := s.api.Get(ctx, "/inventario/all", &inventario); err != nil {
		return nil, err
	}
	return inventario, nil
}

func (s *Service) InventarioPorProducto(ctx context.Context, productoID int) (*domain.Inventario, error) {
	var inv domain.Inventario
	if err := s.api.Get(ctx, fmt.Sprintf("/inventario/producto/%d", productoID), &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *Service) ActualizarStock(ctx context.Context, req domain.InventarioUpdateRequest) (*domain.Inventario, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var inv domain.Inventario
	if err := s.api.Put(ctx, "/inventario/stock", req, &inv); err != nil {
		return nil, err
	}
	s.log.Info().Int("producto", req.ProductoID).Int("stock", req.NuevoStock).Msg("stock actualizado")
	return &inv, nil
}
