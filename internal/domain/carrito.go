package domain

import "github.com/shopspring/decimal"

// DetalleCarrito una línea del carrito. Subtotal lo calcula el backend;
// el cliente solo lo decodifica, nunca lo recalcula.
type DetalleCarrito struct {
	DetalleCarritoID int             `json:"detalleCarritoId"`
	ProductoID       int             `json:"productoId"`
	ProductoNombre   string          `json:"productoNombre"`
	Cantidad         int             `json:"cantidad"`
	PrecioUnitario   decimal.Decimal `json:"precioUnitario"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	ImageURL         string          `json:"imageUrl,omitempty"`
	StockActual      *int            `json:"stockActual,omitempty"`
}

// Carrito snapshot autoritativo del carrito del usuario. Cada mutación
// devuelve el carrito completo y reemplaza el estado local entero.
type Carrito struct {
	CarritoID int              `json:"carritoId"`
	UsuarioID int              `json:"usuarioId"`
	Items     []DetalleCarrito `json:"items"`
	Total     decimal.Decimal  `json:"total"`
}

// Personalizacion añadido opcional de una línea (leyenda de jugador o texto
// libre). El recargo lo fija el backend; el precio aquí es solo informativo
// para mostrarlo antes de confirmar.
type Personalizacion struct {
	Tipo   string          `json:"tipo"` // "Leyenda" | "Custom"
	Nombre string          `json:"nombre"`
	Numero string          `json:"numero"`
	Precio decimal.Decimal `json:"precio"`
}

// Parche añadido opcional de competición (ej. "UCL", "LaLiga").
type Parche struct {
	Tipo   string          `json:"tipo"`
	Precio decimal.Decimal `json:"precio"`
}

// AddItemRequest cuerpo de POST /carrito/agregar.
type AddItemRequest struct {
	ProductoID      int              `json:"productoId" validate:"required,gt=0"`
	Cantidad        int              `json:"cantidad" validate:"required,gte=1"`
	Personalizacion *Personalizacion `json:"personalizacion,omitempty"`
	Parche          *Parche          `json:"parche,omitempty"`
}

// UpdateCantidadRequest cuerpo de PUT /carrito/actualizar-cantidad/{id}.
type UpdateCantidadRequest struct {
	NuevaCantidad int `json:"nuevaCantidad" validate:"required,gte=1"`
}
