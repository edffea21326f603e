package monitoring

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/oldschoolted/tienda-cli/internal/domain"
	"github.com/oldschoolted/tienda-cli/pkg/logger"
)

// Muestra una lectura puntual del panel de monitoreo.
type Muestra struct {
	Tomada   time.Time
	Estado   domain.EstadoSistema
	Metricas *domain.MetricasSistema
	Err      error
}

// Programador sondea salud y métricas en segundo plano mientras el panel de
// monitoreo está abierto y entrega cada lectura por el canal Muestras.
type Programador struct {
	svc      *Service
	cron     *cron.Cron
	log      *logger.Logger
	muestras chan Muestra
}

func NewProgramador(svc *Service, log *logger.Logger) *Programador {
	if log == nil {
		log = logger.Nop()
	}
	return &Programador{
		svc:      svc,
		cron:     cron.New(cron.WithSeconds()),
		log:      log,
		muestras: make(chan Muestra, 1),
	}
}

// Muestras canal de lecturas. Con el buffer de una posición, si el consumidor
// se atrasa se descarta la lectura nueva, nunca se bloquea el sondeo.
func (p *Programador) Muestras() <-chan Muestra {
	return p.muestras
}

// Iniciar programa el sondeo con la expresión cron dada (con campo de
// segundos, por ejemplo "*/10 * * * * *") y arranca el planificador.
func (p *Programador) Iniciar(ctx context.Context, expresion string) error {
	_, err := p.cron.AddFunc(expresion, func() {
		p.sondear(ctx)
	})
	if err != nil {
		return err
	}
	p.cron.Start()
	p.log.Debug().Str("cron", expresion).Msg("sondeo de monitoreo iniciado")
	return nil
}

// Detener para el planificador y espera a que termine el sondeo en curso.
func (p *Programador) Detener() {
	<-p.cron.Stop().Done()
	p.log.Debug().Msg("sondeo de monitoreo detenido")
}

// ProgramarTarea ejecuta fn según la expresión cron (con segundos) hasta que
// ctx termine. Bloquea al llamador; el apagado espera a la ejecución en curso.
func ProgramarTarea(ctx context.Context, expresion string, fn func(context.Context)) error {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(expresion, func() { fn(ctx) }); err != nil {
		return err
	}
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func (p *Programador) sondear(ctx context.Context) {
	m := Muestra{Tomada: time.Now()}
	m.Estado = p.svc.EstadoSistema(ctx)
	m.Metricas, m.Err = p.svc.Metricas(ctx)

	select {
	case p.muestras <- m:
	default:
		p.log.Debug().Msg("lectura de monitoreo descartada, consumidor atrasado")
	}
}
