package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/oldschoolted/tienda-cli/internal/domain"
)

func newAdminCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "admin",
		Short:             "Consola de administración de la tienda",
		PersistentPreRunE: a.requiereAdmin,
	}
	cmd.AddCommand(
		newAdminProductosCmd(a),
		newAdminCategoriasCmd(a),
		newAdminProveedoresCmd(a),
		newAdminPromocionesCmd(a),
		newAdminAsignacionesCmd(a),
		newAdminInventarioCmd(a),
		newAdminPedidosCmd(a),
		newAdminMonitorCmd(a),
		newAdminTareasCmd(a),
	)
	return cmd
}

func parsearID(arg, que string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: id de %s inválido", domain.ErrValidacion, que)
	}
	return id, nil
}

func parsearPrecio(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: precio inválido %q", domain.ErrValidacion, s)
	}
	return d, nil
}

// ── Productos ────────────────────────────────────────────────────────────────

func newAdminProductosCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "productos",
		Short: "Gestión de productos (incluye inactivos)",
	}
	cmd.AddCommand(
		newAdminProductosListarCmd(a),
		newAdminProductosCrearCmd(a),
		newAdminProductosActualizarCmd(a),
		newAdminProductosEliminarCmd(a),
		newAdminProductosImagenCmd(a),
		newAdminProductosPromocionCmd(a),
		newAdminProductosExportarCmd(a),
	)
	return cmd
}

func newAdminProductosListarCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "listar",
		Short: "Lista todos los productos, activos e inactivos",
		RunE: func(cmd *cobra.Command, args []string) error {
			productos, err := a.Catalogo.TodosLosProductos(cmd.Context())
			if err != nil {
				return err
			}

			tabla := nuevaTabla(cmd.OutOrStdout())
			fmt.Fprintln(tabla, "ID\tNOMBRE\tTALLA\tCATEGORIA\tPRECIO\tSTOCK\tACTIVO")
			for _, p := range productos {
				fmt.Fprintf(tabla, "%d\t%s\t%s\t%s\t%s\t%d\t%t\n",
					p.ID, p.Nombre, p.Talla, p.CategoriaNombre, moneda(p.Precio), p.Stock, p.Activo)
			}
			return tabla.Flush()
		},
	}
}

func flagsProducto(cmd *cobra.Command, req *domain.ProductoRequest, precio *string) {
	cmd.Flags().StringVar(&req.Nombre, "nombre", "", "nombre del producto")
	cmd.Flags().StringVar(&req.Descripcion, "descripcion", "", "descripción")
	cmd.Flags().StringVar(&req.Talla, "talla", "", "talla (S, M, L, XL)")
	cmd.Flags().StringVar(precio, "precio", "", "precio de venta")
	cmd.Flags().IntVar(&req.CategoriaID, "categoria", 0, "id de la categoría")
	cmd.Flags().BoolVar(&req.Activo, "activo", true, "visible en el catálogo")
	cmd.Flags().StringVar(&req.ColorDorsal, "color-dorsal", "", "color del dorsal personalizable")
}

func newAdminProductosCrearCmd(a *App) *cobra.Command {
	var req domain.ProductoRequest
	var precio string

	cmd := &cobra.Command{
		Use:   "crear",
		Short: "Crea un producto",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.Precio, err = parsearPrecio(precio); err != nil {
				return err
			}
			p, err := a.Catalogo.CrearProducto(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Producto #%d creado: %s\n", p.ID, p.Nombre)
			return nil
		},
	}

	flagsProducto(cmd, &req, &precio)
	cmd.MarkFlagRequired("nombre")
	cmd.MarkFlagRequired("descripcion")
	cmd.MarkFlagRequired("talla")
	cmd.MarkFlagRequired("precio")
	cmd.MarkFlagRequired("categoria")
	return cmd
}

func newAdminProductosActualizarCmd(a *App) *cobra.Command {
	var req domain.ProductoRequest
	var precio string

	cmd := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualiza un producto existente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "producto")
			if err != nil {
				return err
			}
			if req.Precio, err = parsearPrecio(precio); err != nil {
				return err
			}
			p, err := a.Catalogo.ActualizarProducto(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Producto #%d actualizado\n", p.ID)
			return nil
		},
	}

	flagsProducto(cmd, &req, &precio)
	return cmd
}

func newAdminProductosEliminarCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Elimina un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "producto")
			if err != nil {
				return err
			}
			if err := a.Catalogo.EliminarProducto(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Producto #%d eliminado\n", id)
			return nil
		},
	}
}

func newAdminProductosImagenCmd(a *App) *cobra.Command {
	var archivo string
	var galeria bool

	cmd := &cobra.Command{
		Use:   "imagen <id>",
		Short: "Sube la imagen principal o una imagen de galería",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "producto")
			if err != nil {
				return err
			}

			f, err := os.Open(archivo)
			if err != nil {
				return fmt.Errorf("abrir imagen: %w", err)
			}
			defer f.Close()

			if galeria {
				_, err = a.Catalogo.SubirImagenGaleria(cmd.Context(), id, f.Name(), f)
			} else {
				_, err = a.Catalogo.SubirImagenPrincipal(cmd.Context(), id, f.Name(), f)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imagen subida al producto #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&archivo, "archivo", "f", "", "ruta de la imagen")
	cmd.Flags().BoolVar(&galeria, "galeria", false, "subir a la galería en lugar de la imagen principal")
	cmd.MarkFlagRequired("archivo")
	return cmd
}

func newAdminProductosPromocionCmd(a *App) *cobra.Command {
	var quitar bool

	cmd := &cobra.Command{
		Use:   "promocion <producto> <promocion>",
		Short: "Asocia o quita una promoción de un producto",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productoID, err := parsearID(args[0], "producto")
			if err != nil {
				return err
			}
			promocionID, err := parsearID(args[1], "promoción")
			if err != nil {
				return err
			}

			if quitar {
				err = a.Catalogo.DesasociarPromocion(cmd.Context(), productoID, promocionID)
			} else {
				err = a.Catalogo.AsociarPromocion(cmd.Context(), productoID, promocionID)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Listo")
			return nil
		},
	}

	cmd.Flags().BoolVar(&quitar, "quitar", false, "quitar la asociación en lugar de crearla")
	return cmd
}

func newAdminProductosExportarCmd(a *App) *cobra.Command {
	var salida string

	cmd := &cobra.Command{
		Use:   "exportar",
		Short: "Descarga el listado de productos en Excel",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(salida)
			if err != nil {
				return fmt.Errorf("crear archivo de salida: %w", err)
			}
			defer f.Close()

			if err := a.Catalogo.ExportarExcel(cmd.Context(), f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exportado a %s\n", salida)
			return nil
		},
	}

	cmd.Flags().StringVarP(&salida, "salida", "o", "productos.xlsx", "archivo de destino")
	return cmd
}

// ── Categorías ───────────────────────────────────────────────────────────────

func newAdminCategoriasCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorias",
		Short: "Gestión de categorías del catálogo",
	}

	var req domain.CategoriaRequest

	crear := &cobra.Command{
		Use:   "crear",
		Short: "Crea una categoría",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.Catalogo.CrearCategoria(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Categoría #%d creada: %s\n", c.ID, c.Nombre)
			return nil
		},
	}
	crear.Flags().StringVar(&req.Nombre, "nombre", "", "nombre de la categoría")
	crear.Flags().StringVar(&req.Descripcion, "descripcion", "", "descripción")
	crear.MarkFlagRequired("nombre")

	var reqAct domain.CategoriaRequest
	actualizar := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualiza una categoría",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "categoría")
			if err != nil {
				return err
			}
			c, err := a.Catalogo.ActualizarCategoria(cmd.Context(), id, reqAct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Categoría #%d actualizada\n", c.ID)
			return nil
		},
	}
	actualizar.Flags().StringVar(&reqAct.Nombre, "nombre", "", "nombre de la categoría")
	actualizar.Flags().StringVar(&reqAct.Descripcion, "descripcion", "", "descripción")
	actualizar.MarkFlagRequired("nombre")

	eliminar := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Elimina una categoría",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "categoría")
			if err != nil {
				return err
			}
			if err := a.Catalogo.EliminarCategoria(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Categoría #%d eliminada\n", id)
			return nil
		},
	}

	listar := &cobra.Command{
		Use:   "listar",
		Short: "Lista las categorías",
		RunE: func(cmd *cobra.Command, args []string) error {
			categorias, err := a.Catalogo.Categorias(cmd.Context())
			if err != nil {
				return err
			}
			tabla := nuevaTabla(cmd.OutOrStdout())
			fmt.Fprintln(tabla, "ID\tNOMBRE\tDESCRIPCION")
			for _, c := range categorias {
				fmt.Fprintf(tabla, "%d\t%s\t%s\n", c.ID, c.Nombre, c.Descripcion)
			}
			return tabla.Flush()
		},
	}

	cmd.AddCommand(listar, crear, actualizar, eliminar)
	return cmd
}
