package cart

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oldschoolted/tienda-cli/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type sesionFalsa struct{ dentro bool }

func (s sesionFalsa) IsLoggedIn() bool { return s.dentro }

// apiCarritoFalsa implementa apiCarrito con handlers intercambiables y un
// contador de llamadas para poder afirmar "cero llamadas HTTP".
type apiCarritoFalsa struct {
	llamadas int32
	get      func(out *domain.Carrito) error
	post     func(out *domain.Carrito) error
	put      func(out *domain.Carrito) error
	del      func(out *domain.Carrito) error
}

func (a *apiCarritoFalsa) Get(_ context.Context, _ string, out any) error {
	atomic.AddInt32(&a.llamadas, 1)
	return a.get(out.(*domain.Carrito))
}

func (a *apiCarritoFalsa) Post(_ context.Context, _ string, _ any, out any) error {
	atomic.AddInt32(&a.llamadas, 1)
	return a.post(out.(*domain.Carrito))
}

func (a *apiCarritoFalsa) Put(_ context.Context, _ string, _ any, out any) error {
	atomic.AddInt32(&a.llamadas, 1)
	return a.put(out.(*domain.Carrito))
}

func (a *apiCarritoFalsa) Delete(_ context.Context, _ string, out any) error {
	atomic.AddInt32(&a.llamadas, 1)
	return a.del(out.(*domain.Carrito))
}

func (a *apiCarritoFalsa) totalLlamadas() int32 {
	return atomic.LoadInt32(&a.llamadas)
}

func carritoConTotal(total string, lineas ...domain.DetalleCarrito) domain.Carrito {
	return domain.Carrito{
		CarritoID: 1,
		UsuarioID: 7,
		Items:     lineas,
		Total:     decimal.RequireFromString(total),
	}
}

func devolver(c domain.Carrito) func(out *domain.Carrito) error {
	return func(out *domain.Carrito) error {
		*out = c
		return nil
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso: un usuario sin carrito recibe uno vacío del backend; no es un error.
func TestFetchMiCarrito_CarritoVacio(t *testing.T) {
	api := &apiCarritoFalsa{get: devolver(carritoConTotal("0"))}
	m := New(api, sesionFalsa{dentro: true}, Opciones{}, nil)

	c, err := m.FetchMiCarrito(context.Background())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Empty(t, c.Items)
	assert.True(t, c.Total.IsZero())
}

// Caso: sin sesión, ninguna operación llega a la red.
func TestOperaciones_SinSesion(t *testing.T) {
	api := &apiCarritoFalsa{}
	m := New(api, sesionFalsa{dentro: false}, Opciones{}, nil)

	_, err := m.FetchMiCarrito(context.Background())
	assert.ErrorIs(t, err, domain.ErrSinSesion)

	_, err = m.AgregarItem(context.Background(), domain.AddItemRequest{ProductoID: 5, Cantidad: 2})
	assert.ErrorIs(t, err, domain.ErrSinSesion)

	assert.EqualValues(t, 0, api.totalLlamadas(), "sin sesión no debe haber llamadas HTTP")
}

// Caso: agregar un item reemplaza el carrito completo con la respuesta del
// servidor; no hay mezcla con el estado previo.
func TestAgregarItem_ReemplazaCarritoCompleto(t *testing.T) {
	previo := carritoConTotal("100.00", domain.DetalleCarrito{DetalleCarritoID: 1, ProductoID: 3, Cantidad: 1})
	nuevo := carritoConTotal("150.00",
		domain.DetalleCarrito{DetalleCarritoID: 1, ProductoID: 3, Cantidad: 1},
		domain.DetalleCarrito{DetalleCarritoID: 2, ProductoID: 5, Cantidad: 2},
	)

	api := &apiCarritoFalsa{get: devolver(previo), post: devolver(nuevo)}
	m := New(api, sesionFalsa{dentro: true}, Opciones{}, nil)

	_, err := m.FetchMiCarrito(context.Background())
	require.NoError(t, err)

	c, err := m.AgregarItem(context.Background(), domain.AddItemRequest{ProductoID: 5, Cantidad: 2})
	require.NoError(t, err)

	assert.Equal(t, nuevo, *c, "el estado local debe ser exactamente la respuesta del servidor")
	assert.Equal(t, c, m.Carrito(), "todas las vistas leen la misma instancia")
	assert.True(t, c.Total.Equal(decimal.RequireFromString("150.00")))
}

// Caso: la cantidad tiene piso 1. Cero se rechaza localmente sin petición;
// uno se acepta.
func TestActualizarCantidad_PisoDeCantidad(t *testing.T) {
	api := &apiCarritoFalsa{put: devolver(carritoConTotal("50.00"))}
	m := New(api, sesionFalsa{dentro: true}, Opciones{}, nil)

	_, err := m.ActualizarCantidad(context.Background(), 1, 0)
	assert.ErrorIs(t, err, domain.ErrCantidadInvalida)
	assert.EqualValues(t, 0, api.totalLlamadas(), "el rechazo local no debe generar petición")

	_, err = m.ActualizarCantidad(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, api.totalLlamadas())
}

// Caso: validación local de AgregarItem (cantidad >= 1) sin viaje a la red.
func TestAgregarItem_CantidadInvalida(t *testing.T) {
	api := &apiCarritoFalsa{}
	m := New(api, sesionFalsa{dentro: true}, Opciones{}, nil)

	_, err := m.AgregarItem(context.Background(), domain.AddItemRequest{ProductoID: 5, Cantidad: 0})
	assert.ErrorIs(t, err, domain.ErrValidacion)
	assert.EqualValues(t, 0, api.totalLlamadas())
}

// Caso: eliminar la última línea deja un carrito vacío, no ausente.
func TestEliminarLinea_UltimaLinea(t *testing.T) {
	api := &apiCarritoFalsa{del: devolver(carritoConTotal("0"))}
	m := New(api, sesionFalsa{dentro: true}, Opciones{}, nil)

	c, err := m.EliminarLinea(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, c, "el carrito queda vacío, no ausente")
	assert.Empty(t, c.Items)
}

// Caso: ClearOnLogout limpia el estado local sin ninguna llamada HTTP y
// notifica nil a los suscriptores.
func TestClearOnLogout_SinLlamadasHTTP(t *testing.T) {
	api := &apiCarritoFalsa{get: devolver(carritoConTotal("80.00", domain.DetalleCarrito{DetalleCarritoID: 1}))}
	m := New(api, sesionFalsa{dentro: true}, Opciones{}, nil)

	_, err := m.FetchMiCarrito(context.Background())
	require.NoError(t, err)
	llamadasAntes := api.totalLlamadas()

	var notificado *domain.Carrito
	recibido := false
	m.Suscribir(func(c *domain.Carrito) {
		notificado = c
		recibido = true
	})

	m.ClearOnLogout()

	assert.Nil(t, m.Carrito())
	assert.True(t, recibido, "los suscriptores deben enterarse del reseteo")
	assert.Nil(t, notificado)
	assert.Equal(t, llamadasAntes, api.totalLlamadas(), "limpiar el carrito no toca la red")
}

// Caso (regresión): dos mutaciones en vuelo cuyas respuestas llegan fuera de
// orden. Sin guardia de secuencia gana la última respuesta RECIBIDA: la de
// AgregarItem, aunque se emitió antes que EliminarLinea. Comportamiento
// conocido y deliberadamente conservado.
func TestCarrera_GanaUltimaRespuestaRecibida(t *testing.T) {
	respuestaAdd := carritoConTotal("200.00",
		domain.DetalleCarrito{DetalleCarritoID: 1, ProductoID: 3, Cantidad: 1},
		domain.DetalleCarrito{DetalleCarritoID: 2, ProductoID: 5, Cantidad: 2},
	)
	respuestaDel := carritoConTotal("120.00",
		domain.DetalleCarrito{DetalleCarritoID: 2, ProductoID: 5, Cantidad: 2},
	)

	addEnVuelo := make(chan struct{})
	liberarAdd := make(chan struct{})
	api := &apiCarritoFalsa{
		post: func(out *domain.Carrito) error {
			close(addEnVuelo)
			<-liberarAdd // la respuesta del add llega tarde
			*out = respuestaAdd
			return nil
		},
		del: devolver(respuestaDel),
	}
	m := New(api, sesionFalsa{dentro: true}, Opciones{}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := m.AgregarItem(context.Background(), domain.AddItemRequest{ProductoID: 5, Cantidad: 2})
		assert.NoError(t, err)
	}()

	// La eliminación se emite cuando el add ya está en vuelo; responde
	// primero y se aplica.
	<-addEnVuelo
	_, err := m.EliminarLinea(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, respuestaDel, *m.Carrito())

	// Ahora llega la respuesta tardía del add y pisa la eliminación.
	close(liberarAdd)
	wg.Wait()

	assert.Equal(t, respuestaAdd, *m.Carrito(),
		"sin guardia debe ganar la última respuesta recibida, no la última emitida")
}

// Caso: con la guardia de secuencia activa, la respuesta tardía de una
// mutación anterior se descarta y la eliminación prevalece.
func TestGuardiaSecuencia_DescartaRespuestaTardia(t *testing.T) {
	respuestaAdd := carritoConTotal("200.00", domain.DetalleCarrito{DetalleCarritoID: 2})
	respuestaDel := carritoConTotal("120.00")

	addEnVuelo := make(chan struct{})
	liberarAdd := make(chan struct{})
	api := &apiCarritoFalsa{
		post: func(out *domain.Carrito) error {
			close(addEnVuelo)
			<-liberarAdd
			*out = respuestaAdd
			return nil
		},
		del: devolver(respuestaDel),
	}
	m := New(api, sesionFalsa{dentro: true}, Opciones{GuardiaSecuencia: true}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := m.AgregarItem(context.Background(), domain.AddItemRequest{ProductoID: 5, Cantidad: 2})
		assert.NoError(t, err)
	}()

	<-addEnVuelo
	_, err := m.EliminarLinea(context.Background(), 1)
	require.NoError(t, err)

	close(liberarAdd)
	wg.Wait()

	assert.Equal(t, respuestaDel, *m.Carrito(),
		"con guardia la respuesta fuera de orden no debe pisar la mutación más reciente")
}

// Caso: un fallo del backend no toca el estado local (no hay rollback porque
// no hay nada que revertir: simplemente no se aplica).
func TestMutacionFallida_NoTocaEstado(t *testing.T) {
	previo := carritoConTotal("100.00", domain.DetalleCarrito{DetalleCarritoID: 1})
	api := &apiCarritoFalsa{
		get: devolver(previo),
		post: func(*domain.Carrito) error {
			return domain.ErrValidacion
		},
	}
	m := New(api, sesionFalsa{dentro: true}, Opciones{}, nil)

	_, err := m.FetchMiCarrito(context.Background())
	require.NoError(t, err)

	_, err = m.AgregarItem(context.Background(), domain.AddItemRequest{ProductoID: 9, Cantidad: 1})
	assert.ErrorIs(t, err, domain.ErrValidacion)
	assert.Equal(t, previo, *m.Carrito(), "el carrito previo debe quedar intacto")
}
