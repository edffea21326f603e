package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/oldschoolted/tienda-cli/internal/domain"
	"github.com/oldschoolted/tienda-cli/pkg/logger"
)

// maxCuerpoRespuesta límite de lectura de cuerpos JSON (las descargas
// binarias van por Descargar y no pasan por este límite).
const maxCuerpoRespuesta = 4 << 20

// Opciones parámetros de construcción del cliente.
type Opciones struct {
	BaseURL string
	Timeout time.Duration
	// Tokens alimenta el relay de autorización.
	Tokens TokenSource
	// BreakerActivo envuelve el transporte en un circuit breaker.
	BreakerActivo bool
	// AlRechazoDeSesion se invoca cuando una llamada autenticada recibe 401.
	// Es el punto de enganche de la política de logout automático; nil = solo
	// se clasifica el error (comportamiento legado).
	AlRechazoDeSesion func()
	Log               *logger.Logger
}

// Client cliente HTTP hacia el backend de la tienda. Todas las capas de
// servicio comparten una única instancia, de modo que el relay y el breaker
// apliquen a cada petición por igual.
type Client struct {
	baseURL           string
	http              *http.Client
	log               *logger.Logger
	alRechazoDeSesion func()
}

// New construye el cliente con la cadena de transporte:
// AuthTransport → [BreakerTransport] → http.DefaultTransport.
func New(op Opciones) *Client {
	log := op.Log
	if log == nil {
		log = logger.Nop()
	}

	var base http.RoundTripper = http.DefaultTransport
	if op.BreakerActivo {
		base = NewBreakerTransport(base, "backend")
	}

	timeout := op.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: op.BaseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &AuthTransport{Base: base, Tokens: op.Tokens},
		},
		log:               log,
		alRechazoDeSesion: op.AlRechazoDeSesion,
	}
}

// Get decodifica GET <base><path> en out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post serializa body como JSON y decodifica la respuesta en out (out nil
// descarta el cuerpo).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("crear HTTP request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	return c.enviar(req, out)
}

// SubirArchivo envía un archivo como multipart/form-data (campo "file") y
// decodifica la respuesta en out.
func (c *Client) SubirArchivo(ctx context.Context, path, nombreArchivo string, archivo io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	parte, err := w.CreateFormFile("file", nombreArchivo)
	if err != nil {
		return fmt.Errorf("preparar multipart: %w", err)
	}
	if _, err := io.Copy(parte, archivo); err != nil {
		return fmt.Errorf("copiar archivo: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Request-Id", uuid.NewString())

	return c.enviar(req, out)
}

// Descargar vuelca el cuerpo de method <base><path> en dst (exportes Excel,
// logs, reportes). Los errores HTTP se normalizan igual que en las llamadas
// JSON.
func (c *Client) Descargar(ctx context.Context, method, path string, dst io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("crear HTTP request: %w", err)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fallaTransporte(req, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxCuerpoRespuesta))
		return c.clasificar(req, resp.StatusCode, raw)
	}

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("escribir descarga: %w", err)
	}
	return nil
}

func (c *Client) enviar(req *http.Request, out any) error {
	inicio := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.fallaTransporte(req, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxCuerpoRespuesta))
	if err != nil {
		return fmt.Errorf("leer respuesta: %w", err)
	}

	c.log.Debug().
		Str("metodo", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duracion", time.Since(inicio)).
		Msg("petición al backend")

	if resp.StatusCode >= 400 {
		return c.clasificar(req, resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("deserializar respuesta: %w", err)
	}
	return nil
}

func (c *Client) clasificar(req *http.Request, status int, raw []byte) error {
	err := NormalizarEstado(status, raw)
	c.log.Warn().
		Str("metodo", req.Method).
		Str("path", req.URL.Path).
		Int("status", status).
		Msg("el backend rechazó la petición")

	// Política de invalidación de sesión ante 401. Las rutas de auth quedan
	// fuera: un 401 en el login son credenciales, no una sesión caducada.
	if errors.Is(err, domain.ErrSesionExpirada) && !esRutaAuth(req.URL.Path) && c.alRechazoDeSesion != nil {
		c.alRechazoDeSesion()
	}
	return err
}

func (c *Client) fallaTransporte(req *http.Request, err error) error {
	if req.Context().Err() != nil {
		return fmt.Errorf("petición cancelada: %w", req.Context().Err())
	}
	c.log.Error().Err(err).Str("path", req.URL.Path).Msg("fallo de red hacia el backend")
	return NormalizarTransporte(err)
}
