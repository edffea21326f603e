package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oldschoolted/tienda-cli/internal/domain"
)

// Almacen persistencia durable de la sesión (el análogo del localStorage del
// navegador, con claves fijas "token" y "user"). Se lee una vez al arrancar y
// se mantiene en sincronía con cada login/logout.
type Almacen interface {
	Cargar() (token string, usuario *domain.AuthResponse, err error)
	Guardar(token string, usuario *domain.AuthResponse) error
	Limpiar() error
}

// estadoSesion forma en disco.
type estadoSesion struct {
	Token   string               `json:"token"`
	Usuario *domain.AuthResponse `json:"user"`
}

// AlmacenArchivo guarda la sesión como JSON en un archivo con permisos 0600.
type AlmacenArchivo struct {
	ruta string
}

func NewAlmacenArchivo(ruta string) *AlmacenArchivo {
	return &AlmacenArchivo{ruta: ruta}
}

// Cargar lee el estado persistido. Un archivo inexistente es una sesión
// vacía, no un error.
func (a *AlmacenArchivo) Cargar() (string, *domain.AuthResponse, error) {
	raw, err := os.ReadFile(a.ruta)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("leer sesión: %w", err)
	}
	var e estadoSesion
	if err := json.Unmarshal(raw, &e); err != nil {
		return "", nil, fmt.Errorf("sesión corrupta: %w", err)
	}
	return e.Token, e.Usuario, nil
}

// Guardar escribe token y usuario de forma atómica (archivo temporal +
// rename) para que un corte a mitad de escritura nunca deje estado parcial.
func (a *AlmacenArchivo) Guardar(token string, usuario *domain.AuthResponse) error {
	raw, err := json.MarshalIndent(estadoSesion{Token: token, Usuario: usuario}, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(a.ruta), 0o700); err != nil {
		return fmt.Errorf("crear directorio de sesión: %w", err)
	}
	tmp := a.ruta + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("escribir sesión: %w", err)
	}
	if err := os.Rename(tmp, a.ruta); err != nil {
		return fmt.Errorf("reemplazar sesión: %w", err)
	}
	return nil
}

// Limpiar elimina el archivo; que no exista no es un error.
func (a *AlmacenArchivo) Limpiar() error {
	if err := os.Remove(a.ruta); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("eliminar sesión: %w", err)
	}
	return nil
}
