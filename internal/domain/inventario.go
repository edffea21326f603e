package domain

// Inventario nivel de stock de un producto. El ajuste de stock es lógica del
// backend; el cliente solo envía la solicitud y muestra el resultado.
type Inventario struct {
	InventarioID        int    `json:"inventarioId"`
	ProductoID          int    `json:"productoId"`
	ProductoNombre      string `json:"productoNombre"`
	Stock               int    `json:"stock"`
	UltimaActualizacion string `json:"ultimaActualizacion"`
}

// InventarioUpdateRequest cuerpo de PUT /inventario/stock.
type InventarioUpdateRequest struct {
	ProductoID int `json:"productoId" validate:"required,gt=0"`
	NuevoStock int `json:"nuevoStock" validate:"gte=0"`
}
