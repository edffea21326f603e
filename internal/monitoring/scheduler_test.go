package monitoring_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oldschoolted/tienda-cli/internal/monitoring"
)

func TestProgramador_EntregaMuestras(t *testing.T) {
	// Caso 1: con una expresión por segundo el canal recibe lecturas
	// completas y Detener corta el sondeo.
	api := clienteContra(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/actuator/health" {
			fmt.Fprint(w, `{"status":"UP","components":{"db":{"status":"UP"}}}`)
			return
		}
		fmt.Fprint(w, `{"measurements":[{"value":60}]}`)
	}))

	prog := monitoring.NewProgramador(monitoring.New(api, nil), nil)
	require.NoError(t, prog.Iniciar(context.Background(), "* * * * * *"))
	defer prog.Detener()

	select {
	case m := <-prog.Muestras():
		require.NoError(t, m.Err)
		assert.Equal(t, "UP", m.Estado.App)
		assert.Equal(t, "0h 1m 0s", m.Metricas.UptimeLegible)
		assert.False(t, m.Tomada.IsZero())
	case <-time.After(3 * time.Second):
		t.Fatal("no llegó ninguna muestra del sondeo")
	}
}

func TestProgramarTarea_CorreHastaCancelar(t *testing.T) {
	// Caso: la tarea se dispara según el cron y el retorno llega al cancelar.
	ctx, cancelar := context.WithCancel(context.Background())
	ejecuciones := make(chan struct{}, 1)

	hecho := make(chan error, 1)
	go func() {
		hecho <- monitoring.ProgramarTarea(ctx, "* * * * * *", func(context.Context) {
			select {
			case ejecuciones <- struct{}{}:
			default:
			}
		})
	}()

	select {
	case <-ejecuciones:
	case <-time.After(3 * time.Second):
		t.Fatal("la tarea programada nunca se ejecutó")
	}
	cancelar()

	select {
	case err := <-hecho:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ProgramarTarea no retornó tras cancelar")
	}
}

func TestProgramador_ExpresionInvalida(t *testing.T) {
	// Caso 2: una expresión cron mal formada se rechaza al iniciar.
	prog := monitoring.NewProgramador(monitoring.New(nil, nil), nil)
	err := prog.Iniciar(context.Background(), "cada rato")
	assert.Error(t, err)
}
