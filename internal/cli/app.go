package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oldschoolted/tienda-cli/internal/cart"
	"github.com/oldschoolted/tienda-cli/internal/catalog"
	"github.com/oldschoolted/tienda-cli/internal/domain"
	"github.com/oldschoolted/tienda-cli/internal/inventory"
	"github.com/oldschoolted/tienda-cli/internal/monitoring"
	"github.com/oldschoolted/tienda-cli/internal/orders"
	"github.com/oldschoolted/tienda-cli/internal/promos"
	"github.com/oldschoolted/tienda-cli/internal/session"
	"github.com/oldschoolted/tienda-cli/internal/suppliers"
	"github.com/oldschoolted/tienda-cli/pkg/config"
	"github.com/oldschoolted/tienda-cli/pkg/logger"
)

// App dependencias compartidas de todos los comandos. Se arma una sola vez en
// main y se inyecta en el árbol de cobra.
type App struct {
	Config  *config.Config
	Log     *logger.Logger
	Sesion  *session.Manager
	Carrito *cart.Manager

	Catalogo    *catalog.Service
	Pedidos     *orders.Service
	Promociones *promos.Service
	Proveedores *suppliers.Service
	Inventario  *inventory.Service
	Monitoreo   *monitoring.Service
}

// Guards de los comandos, espejo de los guards de rutas del frontend: se
// evalúan de forma síncrona contra el estado de sesión antes de ejecutar.

func (a *App) requiereSesion(*cobra.Command, []string) error {
	if !a.Sesion.IsLoggedIn() {
		return fmt.Errorf("%w: inicia sesión con 'tienda login'", domain.ErrSinSesion)
	}
	return nil
}

func (a *App) requiereAdmin(cmd *cobra.Command, args []string) error {
	if err := a.requiereSesion(cmd, args); err != nil {
		return err
	}
	if !a.Sesion.IsAdmin() {
		return fmt.Errorf("%w: se requiere el rol %s", domain.ErrProhibido, domain.RolAdministrador)
	}
	return nil
}
