package domain

import "github.com/shopspring/decimal"

// Promocion promoción de catálogo. Las fechas viajan como string ISO
// (LocalDateTime del backend, sin zona).
type Promocion struct {
	IDPromocion int             `json:"idPromocion"`
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Descuento   decimal.Decimal `json:"descuento"`
	FechaInicio string          `json:"fechaInicio"`
	FechaFin    string          `json:"fechaFin"`
	Activa      bool            `json:"activa"`
}

// PromocionRequest alta/edición de promoción (admin). Un código duplicado
// responde 409 y se clasifica como ErrConflicto.
type PromocionRequest struct {
	Codigo      string          `json:"codigo" validate:"required,min=3"`
	Descripcion string          `json:"descripcion" validate:"required"`
	Descuento   decimal.Decimal `json:"descuento" validate:"required"`
	FechaInicio string          `json:"fechaInicio" validate:"required"`
	FechaFin    string          `json:"fechaFin" validate:"required"`
	Activa      *bool           `json:"activa,omitempty"`
}
