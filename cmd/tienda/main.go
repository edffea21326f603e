package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oldschoolted/tienda-cli/internal/backend"
	"github.com/oldschoolted/tienda-cli/internal/cart"
	"github.com/oldschoolted/tienda-cli/internal/catalog"
	"github.com/oldschoolted/tienda-cli/internal/cli"
	"github.com/oldschoolted/tienda-cli/internal/inventory"
	"github.com/oldschoolted/tienda-cli/internal/monitoring"
	"github.com/oldschoolted/tienda-cli/internal/orders"
	"github.com/oldschoolted/tienda-cli/internal/promos"
	"github.com/oldschoolted/tienda-cli/internal/session"
	"github.com/oldschoolted/tienda-cli/internal/suppliers"
	"github.com/oldschoolted/tienda-cli/pkg/config"
	"github.com/oldschoolted/tienda-cli/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Debug().
		Str("env", cfg.App.Env).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando consola")

	rutaSesion, err := cfg.Sesion.RutaArchivoSesion()
	if err != nil {
		log.Fatal().Err(err).Msg("resolver archivo de sesión")
	}

	ses := session.New(session.NewAlmacenArchivo(rutaSesion), log)

	// El cliente HTTP necesita la sesión como fuente de token y la sesión
	// necesita el cliente para autenticar, de ahí el enlace en dos fases.
	var alRechazo func()
	if cfg.Politicas.LogoutAutomatico401 {
		alRechazo = ses.InvalidarPorRechazo
	}
	api := backend.New(backend.Opciones{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		Tokens:            ses,
		BreakerActivo:     cfg.API.BreakerActivo,
		AlRechazoDeSesion: alRechazo,
		Log:               log,
	})
	ses.ConectarAPI(api)

	carrito := cart.New(api, ses, cart.Opciones{
		GuardiaSecuencia: cfg.Politicas.GuardiaSecuencia,
	}, log)
	ses.RegistrarHookLogout(carrito.ClearOnLogout)

	app := &cli.App{
		Config:      cfg,
		Log:         log,
		Sesion:      ses,
		Carrito:     carrito,
		Catalogo:    catalog.New(api, log),
		Pedidos:     orders.New(api, log),
		Promociones: promos.New(api, log),
		Proveedores: suppliers.New(api, log),
		Inventario:  inventory.New(api, log),
		Monitoreo:   monitoring.New(api, log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
