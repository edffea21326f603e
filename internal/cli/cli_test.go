package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oldschoolted/tienda-cli/internal/backend"
	"github.com/oldschoolted/tienda-cli/internal/cart"
	"github.com/oldschoolted/tienda-cli/internal/catalog"
	"github.com/oldschoolted/tienda-cli/internal/cli"
	"github.com/oldschoolted/tienda-cli/internal/domain"
	"github.com/oldschoolted/tienda-cli/internal/orders"
	"github.com/oldschoolted/tienda-cli/internal/session"
)

// armarApp monta la aplicación contra un backend falso, con la sesión que se
// indique ya persistida (nil = sin sesión).
func armarApp(t *testing.T, handler http.Handler, usuario *domain.AuthResponse) *cli.App {
	t.Helper()

	ruta := filepath.Join(t.TempDir(), "sesion.json")
	if usuario != nil {
		raw, err := json.Marshal(map[string]any{"token": usuario.Token, "user": usuario})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(ruta, raw, 0o600))
	}

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ses := session.New(session.NewAlmacenArchivo(ruta), nil)
	api := backend.New(backend.Opciones{BaseURL: srv.URL, Tokens: ses})
	ses.ConectarAPI(api)

	return &cli.App{
		Sesion:   ses,
		Carrito:  cart.New(api, ses, cart.Opciones{}, nil),
		Catalogo: catalog.New(api, nil),
		Pedidos:  orders.New(api, nil),
	}
}

func ejecutar(t *testing.T, a *cli.App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCmd(a)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGuardia_CarritoSinSesion(t *testing.T) {
	// Caso 1: los comandos de carrito exigen sesión antes de tocar la red.
	app := armarApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no debía llegar ninguna petición, llegó %s", r.URL.Path)
	}), nil)

	_, err := ejecutar(t, app, "carrito", "ver")
	assert.ErrorIs(t, err, domain.ErrSinSesion)
}

func TestGuardia_AdminExigeRol(t *testing.T) {
	// Caso 2: un cliente autenticado sin rol Administrador no entra a admin.
	cliente := &domain.AuthResponse{
		Token:  "tok-cliente",
		Nombre: "Ana",
		Email:  "ana@test.com",
		Roles:  []string{"Cliente"},
	}
	app := armarApp(t, http.NotFoundHandler(), cliente)

	_, err := ejecutar(t, app, "admin", "productos", "listar")
	assert.ErrorIs(t, err, domain.ErrProhibido)
}

func TestGuardia_AdminConRolOpera(t *testing.T) {
	// Caso 3: con el rol, el comando llega al backend con el token del relay.
	admin := &domain.AuthResponse{
		Token:  "tok-admin",
		Nombre: "Root",
		Email:  "root@test.com",
		Roles:  []string{"Cliente", domain.RolAdministrador},
	}
	app := armarApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/productos/all", r.URL.Path)
		require.Equal(t, "Bearer tok-admin", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[{"id":1,"nombre":"Retro 94","talla":"M","precio":"80.00","activo":false,"stock":3}]`)
	}), admin)

	salida, err := ejecutar(t, app, "admin", "productos", "listar")
	require.NoError(t, err)
	assert.Contains(t, salida, "Retro 94")
	assert.Contains(t, salida, "false")
}

func TestCarrito_VerImprimeTotales(t *testing.T) {
	// Caso 4: la vista del carrito muestra líneas y total tal cual llegan.
	cliente := &domain.AuthResponse{Token: "tok", Nombre: "Ana", Email: "a@t.com", Roles: []string{"Cliente"}}
	app := armarApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/carrito/mi-carrito", r.URL.Path)
		fmt.Fprint(w, `{"carritoId":1,"usuarioId":9,"items":[
			{"detalleCarritoId":5,"productoId":1,"productoNombre":"Retro 94","cantidad":2,
			 "precioUnitario":"50.00","subtotal":"100.00"}],"total":"100.00"}`)
	}), cliente)

	salida, err := ejecutar(t, app, "carrito", "ver")
	require.NoError(t, err)
	assert.Contains(t, salida, "Retro 94")
	assert.Contains(t, salida, "Total:")
}

func TestSesion_SinSesionInformaSinFallar(t *testing.T) {
	// Caso 5: 'sesion' es consultable sin autenticación.
	app := armarApp(t, http.NotFoundHandler(), nil)

	salida, err := ejecutar(t, app, "sesion")
	require.NoError(t, err)
	assert.Contains(t, salida, "Sin sesión iniciada")
}
