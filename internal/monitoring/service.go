package monitoring

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"

	"github.com/oldschoolted/tienda-cli/internal/backend"
	"github.com/oldschoolted/tienda-cli/internal/domain"
	"github.com/oldschoolted/tienda-cli/pkg/logger"
)

// Service monitoreo del backend: salud, métricas del actuator, logs y
// tareas administrativas disparadas a demanda.
type Service struct {
	api *backend.Client
	log *logger.Logger
}

func New(api *backend.Client, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: api, log: log}
}

// respuesta cruda del actuator de Spring.
type saludActuator struct {
	Status     string `json:"status"`
	Components struct {
		DB struct {
			Status string `json:"status"`
		} `json:"db"`
	} `json:"components"`
}

type metricaActuator struct {
	Measurements []struct {
		Value float64 `json:"value"`
	} `json:"measurements"`
}

func (m metricaActuator) valor() float64 {
	if len(m.Measurements) == 0 {
		return 0
	}
	return m.Measurements[0].Value
}

// EstadoSistema consulta /actuator/health. Un fallo de red o un estado no
// disponible se reporta como DOWN/DOWN en lugar de propagar el error: el
// panel debe poder mostrarse aunque el backend esté caído.
func (s *Service) EstadoSistema(ctx context.Context) domain.EstadoSistema {
	var salud saludActuator
	if err := s.api.Get(ctx, "/actuator/health", &salud); err != nil {
		s.log.Warn().Err(err).Msg("actuator/health no disponible")
		return domain.EstadoSistema{App: "DOWN", Database: "DOWN"}
	}
	db := salud.Components.DB.Status
	if db == "" {
		db = "UNKNOWN"
	}
	return domain.EstadoSistema{App: salud.Status, Database: db}
}

// Metricas consulta las cuatro métricas del actuator en paralelo y arma el
// resumen del panel. Si cualquiera falla, la operación completa falla.
func (s *Service) Metricas(ctx context.Context) (*domain.MetricasSistema, error) {
	rutas := []string{
		"/actuator/metrics/process.uptime",
		"/actuator/metrics/jvm.memory.used",
		"/actuator/metrics/jvm.memory.max",
		"/actuator/metrics/system.cpu.count",
	}

	valores := make([]metricaActuator, len(rutas))
	errores := make([]error, len(rutas))

	var wg sync.WaitGroup
	for i, ruta := range rutas {
		wg.Add(1)
		go func(i int, ruta string) {
			defer wg.Done()
			errores[i] = s.api.Get(ctx, ruta, &valores[i])
		}(i, ruta)
	}
	wg.Wait()

	for i, err := range errores {
		if err != nil {
			return nil, fmt.Errorf("métrica %s: %w", rutas[i], err)
		}
	}

	uptime := valores[0].valor()
	return &domain.MetricasSistema{
		MemoriaTotalMB:          int64(math.Round(valores[2].valor() / (1024 * 1024))),
		MemoriaUsadaMB:          int64(math.Round(valores[1].valor() / (1024 * 1024))),
		UptimeLegible:           formatearUptime(uptime),
		UptimeSegundos:          uptime,
		ProcesadoresDisponibles: int(valores[3].valor()),
	}, nil
}

// formatearUptime convierte segundos a "Xh Ym Zs".
func formatearUptime(segundos float64) string {
	total := int64(segundos)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// LogsRecientes últimas líneas del log del backend.
func (s *Service) LogsRecientes(ctx context.Context) ([]string, error) {
	var lineas []string
	if err := s.api.Get(ctx, "/admin/logs/recent", &lineas); err != nil {
		return nil, err
	}
	return lineas, nil
}

// DescargarLog vuelca el archivo de log completo en dst.
func (s *Service) DescargarLog(ctx context.Context, dst io.Writer) error {
	return s.api.Descargar(ctx, http.MethodGet, "/admin/logs/download", dst)
}

// ── Tareas administrativas ───────────────────────────────────────────────────
//
// Las tres primeras devuelven un reporte como adjunto; backup responde JSON.

func (s *Service) EjecutarLimpiezaTokens(ctx context.Context, reporte io.Writer) error {
	return s.api.Descargar(ctx, http.MethodPost, "/admin/tasks/cleanup-tokens", reporte)
}

func (s *Service) EjecutarCancelacionPedidos(ctx context.Context, reporte io.Writer) error {
	return s.api.Descargar(ctx, http.MethodPost, "/admin/tasks/cancel-orders", reporte)
}

func (s *Service) EjecutarReporteVentas(ctx context.Context, reporte io.Writer) error {
	return s.api.Descargar(ctx, http.MethodPost, "/admin/tasks/sales-report", reporte)
}

func (s *Service) EjecutarBackup(ctx context.Context) (*domain.Mensaje, error) {
	var msg domain.Mensaje
	if err := s.api.Post(ctx, "/admin/tasks/backup-db", nil, &msg); err != nil {
		return nil, err
	}
	s.log.Info().Str("respuesta", msg.Message).Msg("backup solicitado")
	return &msg, nil
}
