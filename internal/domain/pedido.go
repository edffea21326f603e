package domain

import "github.com/shopspring/decimal"

// DetallePedido línea de un pedido confirmado.
type DetallePedido struct {
	DetallePedidoID int             `json:"detallePedidoId"`
	ProductoID      int             `json:"productoId"`
	ProductoNombre  string          `json:"productoNombre"`
	Cantidad        int             `json:"cantidad"`
	PrecioUnitario  decimal.Decimal `json:"precioUnitario"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	MontoDescuento  decimal.Decimal `json:"montoDescuento"`
}

// UsuarioResumen datos mínimos del comprador (solo en vistas de admin).
type UsuarioResumen struct {
	IDUsuario int    `json:"idUsuario"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
}

// Pedido respuesta de los endpoints de pedidos. Los estados (pedido, pago,
// envío) son cadenas definidas por el backend; el cliente no las interpreta,
// solo las muestra.
type Pedido struct {
	PedidoID int             `json:"pedidoId"`
	Fecha    string          `json:"fecha"` // ISO-8601 tal como lo emite el backend
	Estado   string          `json:"estado"`
	Total    decimal.Decimal `json:"total"`

	DireccionEnvio string `json:"direccionEnvio"`
	EstadoEnvio    string `json:"estadoEnvio"`
	EstadoPago     string `json:"estadoPago"`
	MetodoPago     string `json:"metodoPago"`

	Detalles []DetallePedido `json:"detalles"`

	UsuarioID int             `json:"usuarioId,omitempty"`
	Usuario   *UsuarioResumen `json:"usuario,omitempty"`
}

// PedidoRequest creación de pedido a partir del carrito actual. El pago es
// simulado en el cliente: aquí solo viaja la información declarada.
type PedidoRequest struct {
	DireccionEnvio string `json:"direccionEnvio" validate:"required,min=10"`
	MetodoPagoInfo string `json:"metodoPagoInfo" validate:"required"`
}

// Requests de administración de pedidos.
type AdminUpdatePedidoStatusRequest struct {
	NuevoEstado string `json:"nuevoEstado" validate:"required"`
}

type AdminUpdatePagoRequest struct {
	NuevoEstadoPago string `json:"nuevoEstadoPago" validate:"required"`
}

type AdminUpdateEnvioRequest struct {
	NuevoEstadoEnvio  string `json:"nuevoEstadoEnvio" validate:"required"`
	DireccionEnvio    string `json:"direccionEnvio,omitempty"`
	FechaEnvio        string `json:"fechaEnvio,omitempty"` // YYYY-MM-DD
	CodigoSeguimiento string `json:"codigoSeguimiento,omitempty"`
}
