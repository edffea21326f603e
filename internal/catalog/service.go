package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/oldschoolted/tienda-cli/internal/backend"
	"github.com/oldschoolted/tienda-cli/internal/domain"
	"github.com/oldschoolted/tienda-cli/pkg/logger"
)

// Service catálogo de productos y categorías. Los métodos públicos no
// requieren sesión; los de administración dependen del rol Administrador,
// que valida el backend (el relay solo adjunta el token).
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

// ── Catálogo público ─────────────────────────────────────────────────────────

// ProductosActivos lista el catálogo visible para clientes.
func (s *Service) ProductosActivos(ctx context.Context) ([]domain.Producto, error) {
	var productos []domain.Producto
	if err := s.api.Get(ctx, "/productos", &productos); err != nil {
		return nil, err
	}
	return productos, nil
}

func (s *Service) ProductoPorID(ctx context.Context, id int) (*domain.Producto, error) {
	var p domain.Producto
	if err := s.api.Get(ctx, fmt.Sprintf("/productos/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductosPorCategoria filtra por nombre de categoría (escapado en la URL).
func (s *Service) ProductosPorCategoria(ctx context.Context, nombre string) ([]domain.Producto, error) {
	var productos []domain.Producto
	path := "/productos/categoria/" + url.PathEscape(nombre)
	if err := s.api.Get(ctx, path, &productos); err != nil {
		return nil, err
	}
	return productos, nil
}

func (s *Service) Categorias(ctx context.Context) ([]domain.Categoria, error) {
	var categorias []domain.Categoria
	if err := s.api.Get(ctx, "/categorias", &categorias); err != nil {
		return nil, err
	}
	return categorias, nil
}

func (s *Service) CategoriaPorID(ctx context.Context, id int) (*domain.Categoria, error) {
	var c domain.Categoria
	if err := s.api.Get(ctx, fmt.Sprintf("/categorias/%d", id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ── Administración de productos ──────────────────────────────────────────────

// TodosLosProductos incluye también los inactivos (solo admin).
func (s *Service) TodosLosProductos(ctx context.Context) ([]domain.Producto, error) {
	var productos []domain.Producto
	if err := s.api.Get(ctx, "/admin/productos/all", &productos); err != nil {
		return nil, err
	}
	return productos, nil
}

func (s *Service) CrearProducto(ctx context.Context, req domain.ProductoRequest) (*domain.Producto, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var p domain.Producto
	if err := s.api.Post(ctx, "/admin/productos", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) ActualizarProducto(ctx context.Context, id int, req domain.ProductoRequest) (*domain.Producto, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var p domain.Producto
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/productos/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) EliminarProducto(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/admin/productos/%d", id), nil)
}

// ── Imágenes ─────────────────────────────────────────────────────────────────

// SubirImagenPrincipal reemplaza la imagen principal del producto.
func (s *Service) SubirImagenPrincipal(ctx context.Context, productoID int, nombre string, archivo io.Reader) (*domain.Producto, error) {
	var p domain.Producto
	path := fmt.Sprintf("/admin/productos/%d/imagen", productoID)
	if err := s.api.SubirArchivo(ctx, path, nombre, archivo, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SubirImagenGaleria añade una imagen a la galería del producto.
func (s *Service) SubirImagenGaleria(ctx context.Context, productoID int, nombre string, archivo io.Reader) (*domain.Producto, error) {
	var p domain.Producto
	path := fmt.Sprintf("/admin/productos/%d/galeria", productoID)
	if err := s.api.SubirArchivo(ctx, path, nombre, archivo, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) EliminarImagenGaleria(ctx context.Context, productoID, imagenID int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/admin/productos/%d/galeria/%d", productoID, imagenID), nil)
}

// ── Administración de categorías ─────────────────────────────────────────────

func (s *Service) CrearCategoria(ctx context.Context, req domain.CategoriaRequest) (*domain.Categoria, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var c domain.Categoria
	if err := s.api.Post(ctx, "/admin/categorias", req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) ActualizarCategoria(ctx context.Context, id int, req domain.CategoriaRequest) (*domain.Categoria, error) {
	if err := s.validar.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	var c domain.Categoria
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/categorias/%d", id), req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) EliminarCategoria(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("/admin/categorias/%d", id), nil)
}

// ── Promociones sobre productos ──────────────────────────────────────────────

func (s *Service) AsociarPromocion(ctx context.Context, productoID, promocionID int) error {
	path := fmt.Sprintf("/admin/productos/%d/promociones/%d", productoID, promocionID)
	return s.api.Post(ctx, path, nil, nil)
}

func (s *Service) DesasociarPromocion(ctx context.Context, productoID, promocionID int) error {
	path := fmt.Sprintf("/admin/productos/%d/promociones/%d", productoID, promocionID)
	return s.api.Delete(ctx, path, nil)
}

// ── Exportación ──────────────────────────────────────────────────────────────

// ExportarExcel descarga el listado de productos en formato Excel y lo vuelca
// en dst. El contenido del archivo lo genera el backend.
func (s *Service) ExportarExcel(ctx context.Context, dst io.Writer) error {
	return s.api.Descargar(ctx, http.MethodGet, "/admin/productos/exportar-excel", dst)
}
