package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oldschoolted/tienda-cli/internal/domain"
)

func newCatalogoCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogo",
		Short: "Consulta el catálogo de productos",
	}
	cmd.AddCommand(
		newCatalogoListarCmd(a),
		newCatalogoVerCmd(a),
		newCatalogoCategoriasCmd(a),
	)
	return cmd
}

func newCatalogoListarCmd(a *App) *cobra.Command {
	var categoria string

	cmd := &cobra.Command{
		Use:   "listar",
		Short: "Lista los productos activos, opcionalmente por categoría",
		RunE: func(cmd *cobra.Command, args []string) error {
			var productos []domain.Producto
			var err error
			if categoria != "" {
				productos, err = a.Catalogo.ProductosPorCategoria(cmd.Context(), categoria)
			} else {
				productos, err = a.Catalogo.ProductosActivos(cmd.Context())
			}
			if err != nil {
				return err
			}

			tabla := nuevaTabla(cmd.OutOrStdout())
			fmt.Fprintln(tabla, "ID\tNOMBRE\tTALLA\tCATEGORIA\tPRECIO\tSTOCK")
			for _, p := range productos {
				fmt.Fprintf(tabla, "%d\t%s\t%s\t%s\t%s\t%d\n",
					p.ID, p.Nombre, p.Talla, p.CategoriaNombre, moneda(p.Precio), p.Stock)
			}
			return tabla.Flush()
		},
	}

	cmd.Flags().StringVarP(&categoria, "categoria", "c", "", "filtra por nombre de categoría")
	return cmd
}

func newCatalogoVerCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ver <id>",
		Short: "Muestra el detalle de un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: id de producto inválido", domain.ErrValidacion)
			}

			p, err := a.Catalogo.ProductoPorID(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (#%d)\n", p.Nombre, p.ID)
			fmt.Fprintf(out, "  %s\n", p.Descripcion)
			fmt.Fprintf(out, "  Talla: %s  Categoría: %s  Stock: %d\n", p.Talla, p.CategoriaNombre, p.Stock)
			if p.PrecioOriginal != nil {
				fmt.Fprintf(out, "  Precio: %s (antes %s, promoción %s)\n",
					moneda(p.Precio), moneda(*p.PrecioOriginal), p.NombrePromocion)
			} else {
				fmt.Fprintf(out, "  Precio: %s\n", moneda(p.Precio))
			}
			for _, l := range p.Leyendas {
				fmt.Fprintf(out, "  Leyenda: %s #%s\n", l.Nombre, l.Numero)
			}
			return nil
		},
	}
}

func newCatalogoCategoriasCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categorias",
		Short: "Lista las categorías del catálogo",
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
}
