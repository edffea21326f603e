package catalog_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oldschoolted/tienda-cli/internal/backend"
	"github.com/oldschoolted/tienda-cli/internal/catalog"
	"github.com/oldschoolted/tienda-cli/internal/domain"
)

func clienteContra(t *testing.T, handler http.Handler) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.New(backend.Opciones{BaseURL: srv.URL})
}

func TestProductosPorCategoria_EscapaElNombre(t *testing.T) {
	// Caso 1: el nombre de la categoría viaja escapado en el path.
	var rutaRecibida string
	api := clienteContra(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rutaRecibida = r.URL.EscapedPath()
		fmt.Fprint(w, `[]`)
	}))

	svc := catalog.New(api, nil)
	_, err := svc.ProductosPorCategoria(context.Background(), "Retro 90s / Fútbol")

	require.NoError(t, err)
	assert.Equal(t, "/productos/categoria/Retro%2090s%20%2F%20F%C3%BAtbol", rutaRecibida)
}

func TestProductoPorID_NoEncontrado(t *testing.T) {
	// Caso 2: un 404 llega como ErrNoEncontrado con el mensaje del backend.
	api := clienteContra(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Producto no encontrado"}`, http.StatusNotFound)
	}))

	svc := catalog.New(api, nil)
	_, err := svc.ProductoPorID(context.Background(), 99)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
	assert.Contains(t, err.Error(), "Producto no encontrado")
}

func TestCrearProducto_ValidacionLocal(t *testing.T) {
	// Caso 3: una request inválida se rechaza sin tocar la red.
	var llamadas atomic.Int32
	api := clienteContra(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		llamadas.Add(1)
	}))

	svc := catalog.New(api, nil)
	_, err := svc.CrearProducto(context.Background(), domain.ProductoRequest{Nombre: "X"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidacion)
	assert.Equal(t, int32(0), llamadas.Load())
}

func TestSubirImagenPrincipal_Multipart(t *testing.T) {
	// Caso 4: la imagen viaja como multipart con el campo "file".
	api := clienteContra(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/productos/7/imagen", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "camiseta.png", header.Filename)
		fmt.Fprint(w, `{"id":7,"nombre":"Camiseta","imageUrl":"/img/camiseta.png"}`)
	}))

	svc := catalog.New(api, nil)
	p, err := svc.SubirImagenPrincipal(context.Background(), 7, "camiseta.png", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "/img/camiseta.png", p.ImageURL)
}

func TestExportarExcel_VuelcaElArchivo(t *testing.T) {
	// Caso 5: la exportación escribe el cuerpo tal cual en el destino.
	api := clienteContra(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/productos/exportar-excel", r.URL.Path)
		fmt.Fprint(w, "contenido-xlsx")
	}))

	svc := catalog.New(api, nil)
	var dst bytes.Buffer
	require.NoError(t, svc.ExportarExcel(context.Background(), &dst))
	assert.Equal(t, "contenido-xlsx", dst.String())
}

func TestProductosActivos_DecodificaPromociones(t *testing.T) {
	// Caso 6: los precios con promoción vienen ya aplicados desde el backend.
	api := clienteContra(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":1,"nombre":"Retro 94","precio":"80.00",
			"precioOriginal":"100.00","descuentoAplicado":"20.00","nombrePromocion":"VERANO"}]`)
	}))

	svc := catalog.New(api, nil)
	productos, err := svc.ProductosActivos(context.Background())

	require.NoError(t, err)
	require.Len(t, productos, 1)
	p := productos[0]
	assert.True(t, p.Precio.Equal(decimal.RequireFromString("80.00")))
	require.NotNil(t, p.PrecioOriginal)
	assert.True(t, p.PrecioOriginal.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, "VERANO", p.NombrePromocion)
}
