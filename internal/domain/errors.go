package domain

import "errors"

// Errores clasificados que las capas de servicio entregan a la UI.
// El cliente nunca propaga errores crudos de transporte: backend.Normalizar
// los convierte en uno de estos centinelas (con detalle vía %w).
var (
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrCuentaBloqueada       = errors.New("cuenta bloqueada por intentos fallidos")
	ErrSesionExpirada        = errors.New("tu sesión ha expirado, inicia sesión de nuevo")
	ErrProhibido             = errors.New("no tienes permiso para realizar esta acción")
	ErrNoEncontrado          = errors.New("recurso no encontrado")
	ErrValidacion            = errors.New("solicitud inválida")
	ErrConflicto             = errors.New("conflicto con el estado actual")
	ErrRedNoDisponible       = errors.New("no se pudo conectar con el servidor")
	ErrDesconocido           = errors.New("error desconocido")
)

// Errores locales (sin viaje al backend).
var (
	// ErrCantidadInvalida: bajar una línea a 0 se hace con EliminarLinea, nunca
	// con ActualizarCantidad.
	ErrCantidadInvalida = errors.New("la cantidad no puede ser menor que 1")
	ErrSinSesion        = errors.New("no hay sesión iniciada")
)
