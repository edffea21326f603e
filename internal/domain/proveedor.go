package domain

import "github.com/shopspring/decimal"

// Proveedor proveedor registrado (solo visible para admin).
type Proveedor struct {
	IDProveedor int    `json:"idProveedor"`
	RazonSocial string `json:"razonSocial"`
	Contacto    string `json:"contacto,omitempty"`
	Telefono    string `json:"telefono,omitempty"`
	Direccion   string `json:"direccion,omitempty"`
}

// ProveedorRequest alta/edición de proveedor.
type ProveedorRequest struct {
	RazonSocial string `json:"razonSocial" validate:"required,min=2"`
	Contacto    string `json:"contacto,omitempty"`
	Telefono    string `json:"telefono,omitempty"`
	Direccion   string `json:"direccion,omitempty"`
}

// Asignacion relación producto↔proveedor con su precio de costo.
type Asignacion struct {
	IDAsignacion         int             `json:"idAsignacion"`
	ProductoID           int             `json:"productoId"`
	ProductoNombre       string          `json:"productoNombre"`
	ProveedorID          int             `json:"proveedorId"`
	ProveedorRazonSocial string          `json:"proveedorRazonSocial"`
	PrecioCosto          decimal.Decimal `json:"precioCosto"`
}

// AsignacionRequest crea una asignación producto↔proveedor.
type AsignacionRequest struct {
	ProductoID  int             `json:"productoId" validate:"required,gt=0"`
	ProveedorID int             `json:"proveedorId" validate:"required,gt=0"`
	PrecioCosto decimal.Decimal `json:"precioCosto" validate:"required"`
}

// UpdatePrecioRequest actualiza el precio de costo de una asignación.
type UpdatePrecioRequest struct {
	NuevoPrecioCosto decimal.Decimal `json:"nuevoPrecioCosto" validate:"required"`
}
