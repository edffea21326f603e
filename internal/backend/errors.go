package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/oldschoolted/tienda-cli/internal/domain"
)

// El backend no es uniforme en sus cuerpos de error: a veces texto plano,
// a veces {"message": ...}, a veces {"error": ...} y en descargas binarias
// nada utilizable. Toda respuesta de error pasa por NormalizarEstado con un
// orden de precedencia fijo, en lugar de manejarse ad hoc por llamada.

// NormalizarEstado clasifica una respuesta HTTP de error en un centinela de
// dominio, conservando el detalle del servidor vía %w.
func NormalizarEstado(status int, body []byte) error {
	base := porEstado(status)
	if detalle := extraerMensaje(body); detalle != "" {
		return fmt.Errorf("%w: %s", base, detalle)
	}
	return base
}

// NormalizarTransporte clasifica un fallo sin respuesta (equivalente al
// status 0 del navegador).
func NormalizarTransporte(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrRedNoDisponible, err)
}

func porEstado(status int) error {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrValidacion
	case http.StatusUnauthorized:
		return domain.ErrSesionExpirada
	case http.StatusForbidden:
		return domain.ErrProhibido
	case http.StatusNotFound:
		return domain.ErrNoEncontrado
	case http.StatusConflict:
		return domain.ErrConflicto
	default:
		return domain.ErrDesconocido
	}
}

// extraerMensaje aplica la precedencia: cuerpo string → campo "message" →
// campo "error" → vacío (el llamador cae al texto del centinela).
func extraerMensaje(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return ""
	}

	if !strings.HasPrefix(s, "{") {
		// Cuerpo plano o JSON string.
		var js string
		if err := json.Unmarshal(body, &js); err == nil {
			return js
		}
		return s
	}

	var forma struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &forma); err == nil {
		if forma.Message != "" {
			return forma.Message
		}
		if forma.Error != "" {
			return forma.Error
		}
	}
	return ""
}
