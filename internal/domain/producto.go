package domain

import "github.com/shopspring/decimal"

// ImagenGaleria imagen secundaria de un producto.
type ImagenGaleria struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// Leyenda nombre y dorsal predefinidos para personalización.
type Leyenda struct {
	ID     int    `json:"id,omitempty"`
	Nombre string `json:"nombre"`
	Numero string `json:"numero"`
}

// PromocionSimple vista reducida de una promoción asociada a un producto.
type PromocionSimple struct {
	IDPromocion int             `json:"idPromocion"`
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Descuento   decimal.Decimal `json:"descuento"`
	Activa      bool            `json:"activa"`
}

// Producto respuesta del catálogo. Los precios con descuento ya vienen
// aplicados desde el backend (PrecioOriginal/DescuentoAplicado informativos).
type Producto struct {
	ID              int             `json:"id"`
	Nombre          string          `json:"nombre"`
	Descripcion     string          `json:"descripcion"`
	Talla           string          `json:"talla"`
	Precio          decimal.Decimal `json:"precio"`
	Activo          bool            `json:"activo"`
	CategoriaNombre string          `json:"categoriaNombre"`
	Stock           int             `json:"stock"`
	ImageURL        string          `json:"imageUrl"`
	GaleriaImagenes []ImagenGaleria `json:"galeriaImagenes"`

	ColorDorsal string    `json:"colorDorsal,omitempty"`
	Leyendas    []Leyenda `json:"leyendas,omitempty"`

	PrecioOriginal       *decimal.Decimal  `json:"precioOriginal,omitempty"`
	DescuentoAplicado    *decimal.Decimal  `json:"descuentoAplicado,omitempty"`
	NombrePromocion      string            `json:"nombrePromocion,omitempty"`
	PromocionesAsociadas []PromocionSimple `json:"promocionesAsociadas,omitempty"`
}

// ProductoRequest alta/edición de producto (admin).
type ProductoRequest struct {
	Nombre      string          `json:"nombre" validate:"required,min=2"`
	Descripcion string          `json:"descripcion" validate:"required"`
	Talla       string          `json:"talla" validate:"required"`
	Precio      decimal.Decimal `json:"precio" validate:"required"`
	Activo      bool            `json:"activo"`
	CategoriaID int             `json:"categoriaId" validate:"required,gt=0"`
	ColorDorsal string          `json:"colorDorsal,omitempty"`
	Leyendas    []Leyenda       `json:"leyendas,omitempty"`
}

// Categoria categoría del catálogo.
type Categoria struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

// CategoriaRequest alta/edición de categoría (admin).
type CategoriaRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=2"`
	Descripcion string `json:"descripcion,omitempty"`
}
