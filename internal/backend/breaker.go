package backend

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerTransport corta llamadas al backend cuando la tasa de fallos de red
// es alta, en vez de dejar que cada comando espere su timeout completo. Solo
// cuentan como fallo los errores de transporte; cualquier respuesta HTTP,
// incluso 5xx, es una respuesta del servidor y se entrega al llamador.
type BreakerTransport struct {
	base http.RoundTripper
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerTransport(base http.RoundTripper, nombre string) *BreakerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        nombre,
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && ratio >= 0.6
		},
	})
	return &BreakerTransport{base: base, cb: cb}
}

func (t *BreakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	res, err := t.cb.Execute(func() (any, error) {
		return t.base.RoundTrip(req)
	})
	if err != nil {
		// Incluye gobreaker.ErrOpenState; el cliente lo normaliza como red no
		// disponible igual que un fallo de conexión.
		return nil, err
	}
	return res.(*http.Response), nil
}
