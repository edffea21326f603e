package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oldschoolted/tienda-cli/internal/domain"
)

func newCarritoCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "carrito",
		Short:             "Opera sobre tu carrito de compras",
		PersistentPreRunE: a.requiereSesion,
	}
	cmd.AddCommand(
		newCarritoVerCmd(a),
		newCarritoAgregarCmd(a),
		newCarritoQuitarCmd(a),
		newCarritoCantidadCmd(a),
	)
	return cmd
}

func imprimirCarrito(out io.Writer, c *domain.Carrito) error {
	if len(c.Items) == 0 {
		fmt.Fprintln(out, "El carrito está vacío")
		return nil
	}

	tabla := nuevaTabla(out)
	fmt.Fprintln(tabla, "LINEA\tPRODUCTO\tCANT\tUNITARIO\tSUBTOTAL")
	for _, it := range c.Items {
		fmt.Fprintf(tabla, "%d\t%s\t%d\t%s\t%s\n",
			it.DetalleCarritoID, it.ProductoNombre, it.Cantidad,
			moneda(it.PrecioUnitario), moneda(it.Subtotal))
	}
	if err := tabla.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Total: %s\n", moneda(c.Total))
	return nil
}

func newCarritoVerCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ver",
		Short: "Muestra el contenido actual del carrito",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.Carrito.FetchMiCarrito(cmd.Context())
			if err != nil {
				return err
			}
			return imprimirCarrito(cmd.OutOrStdout(), c)
		},
	}
}

func newCarritoAgregarCmd(a *App) *cobra.Command {
	var (
		productoID, cantidad         int
		leyendaNombre, leyendaNumero string
		parche                       string
	)

	cmd := &cobra.Command{
		Use:   "agregar",
		Short: "Agrega un producto al carrito",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.AddItemRequest{ProductoID: productoID, Cantidad: cantidad}
			if leyendaNombre != "" || leyendaNumero != "" {
				req.Personalizacion = &domain.Personalizacion{
					Tipo:   "Custom",
					Nombre: leyendaNombre,
					Numero: leyendaNumero,
				}
			}
			if parche != "" {
				req.Parche = &domain.Parche{Tipo: parche}
			}

			c, err := a.Carrito.AgregarItem(cmd.Context(), req)
			if err != nil {
				return err
			}
			return imprimirCarrito(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().IntVarP(&productoID, "producto", "P", 0, "id del producto")
	cmd.Flags().IntVarP(&cantidad, "cantidad", "n", 1, "unidades a agregar")
	cmd.Flags().StringVar(&leyendaNombre, "leyenda-nombre", "", "nombre de la personalización")
	cmd.Flags().StringVar(&leyendaNumero, "leyenda-numero", "", "dorsal de la personalización")
	cmd.Flags().StringVar(&parche, "parche", "", "parche de competición (ej. UCL)")
	cmd.MarkFlagRequired("producto")
	return cmd
}

func newCarritoQuitarCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quitar <linea>",
		Short: "Quita una línea completa del carrito",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lineaID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: id de línea inválido", domain.ErrValidacion)
			}

			c, err := a.Carrito.EliminarLinea(cmd.Context(), lineaID)
			if err != nil {
				return err
			}
			return imprimirCarrito(cmd.OutOrStdout(), c)
		},
	}
}

func newCarritoCantidadCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cantidad <linea> <unidades>",
		Short: "Cambia la cantidad de una línea (mínimo 1; para quitar usa 'quitar')",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lineaID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: id de línea inválido", domain.ErrValidacion)
			}
			unidades, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: cantidad inválida", domain.ErrValidacion)
			}

			c, err := a.Carrito.ActualizarCantidad(cmd.Context(), lineaID, unidades)
			if err != nil {
				return err
			}
			return imprimirCarrito(cmd.OutOrStdout(), c)
		},
	}
}
