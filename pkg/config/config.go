package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente (lectura vía Viper desde env y
// opcionalmente archivo).
type Config struct {
	App       AppConfig
	API       APIConfig
	Sesion    SesionConfig
	Politicas PoliticasConfig
}

// AppConfig configuración general.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// APIConfig configuración del backend REST.
type APIConfig struct {
	BaseURL       string        // ej. https://api.oldschooltees.com/api
	Timeout       time.Duration // timeout de red por petición
	BreakerActivo bool          // circuit breaker sobre el transporte
}

// SesionConfig persistencia de la sesión en disco.
type SesionConfig struct {
	Archivo string // ruta del archivo de estado; vacío = <config dir>/tienda/sesion.json
}

// PoliticasConfig decisiones de comportamiento que el diseño deja abiertas.
// Los valores por defecto reproducen el comportamiento legado.
type PoliticasConfig struct {
	// LogoutAutomatico401: si true, cualquier 401 en una llamada autenticada
	// invalida la sesión local. Legado: false (solo se clasifica el mensaje).
	LogoutAutomatico401 bool
	// GuardiaSecuencia: si true, el carrito descarta respuestas que llegan
	// fuera de orden (número de secuencia monótono). Legado: false (gana la
	// última respuesta recibida).
	GuardiaSecuencia bool
}

// RutaArchivoSesion resuelve la ruta del archivo de sesión.
func (c SesionConfig) RutaArchivoSesion() (string, error) {
	if c.Archivo != "" {
		return c.Archivo, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolver directorio de configuración: %w", err)
	}
	return filepath.Join(dir, "tienda", "sesion.json"), nil
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo). Las env vars tienen prioridad. Nombres esperados: APP_ENV,
// API_BASE_URL, SESION_ARCHIVO, POLITICA_LOGOUT_401, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "tienda-cli"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:       strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8080/api"), "/"),
			Timeout:       time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 15)) * time.Second,
			BreakerActivo: getBool(v, "API_BREAKER", false),
		},
		Sesion: SesionConfig{
			Archivo: getString(v, "SESION_ARCHIVO", ""),
		},
		Politicas: PoliticasConfig{
			LogoutAutomatico401: getBool(v, "POLITICA_LOGOUT_401", false),
			GuardiaSecuencia:    getBool(v, "POLITICA_GUARDIA_SECUENCIA", false),
		},
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL no puede estar vacío")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
