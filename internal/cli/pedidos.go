package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oldschoolted/tienda-cli/internal/domain"
)

func newPedidosCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "pedidos",
		Short:             "Consulta y crea tus pedidos",
		PersistentPreRunE: a.requiereSesion,
	}
	cmd.AddCommand(
		newPedidosCrearCmd(a),
		newPedidosListarCmd(a),
		newPedidosVerCmd(a),
	)
	return cmd
}

func imprimirPedidos(out io.Writer, pedidos []domain.Pedido) error {
	tabla := nuevaTabla(out)
	fmt.Fprintln(tabla, "ID\tFECHA\tESTADO\tPAGO\tENVIO\tTOTAL")
	for _, p := range pedidos {
		fmt.Fprintf(tabla, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.PedidoID, p.Fecha, p.Estado, p.EstadoPago, p.EstadoEnvio, moneda(p.Total))
	}
	return tabla.Flush()
}

func imprimirPedido(out io.Writer, p *domain.Pedido) error {
	fmt.Fprintf(out, "Pedido #%d  %s  [%s]\n", p.PedidoID, p.Fecha, p.Estado)
	if p.Usuario != nil {
		fmt.Fprintf(out, "Cliente: %s <%s>\n", p.Usuario.Nombre, p.Usuario.Email)
	}
	fmt.Fprintf(out, "Pago: %s (%s)  Envío: %s\n", p.EstadoPago, p.MetodoPago, p.EstadoEnvio)
	fmt.Fprintf(out, "Dirección: %s\n", p.DireccionEnvio)

	tabla := nuevaTabla(out)
	fmt.Fprintln(tabla, "PRODUCTO\tCANT\tUNITARIO\tSUBTOTAL")
	for _, d := range p.Detalles {
		fmt.Fprintf(tabla, "%s\t%d\t%s\t%s\n",
			d.ProductoNombre, d.Cantidad, moneda(d.PrecioUnitario), moneda(d.Subtotal))
	}
	if err := tabla.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Total: %s\n", moneda(p.Total))
	return nil
}

func newPedidosCrearCmd(a *App) *cobra.Command {
	var direccion, metodoPago string

	cmd := &cobra.Command{
		Use:   "crear",
		Short: "Convierte el carrito actual en un pedido",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.Pedidos.CrearDesdeCarrito(cmd.Context(), domain.PedidoRequest{
				DireccionEnvio: direccion,
				MetodoPagoInfo: metodoPago,
			})
			if err != nil {
				return err
			}

			// El backend vació el carrito al confirmar; el estado local se
			// alinea en el próximo fetch.
			fmt.Fprintf(cmd.OutOrStdout(), "Pedido #%d confirmado\n", p.PedidoID)
			return imprimirPedido(cmd.OutOrStdout(), p)
		},
	}

	cmd.Flags().StringVarP(&direccion, "direccion", "d", "", "dirección de envío (mínimo 10 caracteres)")
	cmd.Flags().StringVarP(&metodoPago, "pago", "m", "", "información del método de pago")
	cmd.MarkFlagRequired("direccion")
	cmd.MarkFlagRequired("pago")
	return cmd
}

func newPedidosListarCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "listar",
		Short: "Lista tu historial de pedidos",
		RunE: func(cmd *cobra.Command, args []string) error {
			pedidos, err := a.Pedidos.MisPedidos(cmd.Context())
			if err != nil {
				return err
			}
			return imprimirPedidos(cmd.OutOrStdout(), pedidos)
		},
	}
}

func newPedidosVerCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ver <id>",
		Short: "Muestra el detalle de un pedido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: id de pedido inválido", domain.ErrValidacion)
			}

			p, err := a.Pedidos.PedidoPorID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return imprimirPedido(cmd.OutOrStdout(), p)
		},
	}
}
