package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oldschoolted/tienda-cli/internal/domain"
)

func newAdminPedidosCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pedidos",
		Short: "Gestión de pedidos de todos los clientes",
	}

	listar := &cobra.Command{
		Use:   "listar",
		Short: "Lista todos los pedidos",
		RunE: func(cmd *cobra.Command, args []string) error {
			pedidos, err := a.Pedidos.TodosLosPedidos(cmd.Context())
			if err != nil {
				return err
			}
			tabla := nuevaTabla(cmd.OutOrStdout())
			fmt.Fprintln(tabla, "ID\tFECHA\tCLIENTE\tESTADO\tPAGO\tENVIO\tTOTAL")
			for _, p := range pedidos {
				cliente := ""
				if p.Usuario != nil {
					cliente = p.Usuario.Email
				}
				fmt.Fprintf(tabla, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					p.PedidoID, p.Fecha, cliente, p.Estado, p.EstadoPago, p.EstadoEnvio, moneda(p.Total))
			}
			return tabla.Flush()
		},
	}

	ver := &cobra.Command{
		Use:   "ver <id>",
		Short: "Muestra el detalle de un pedido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "pedido")
			if err != nil {
				return err
			}
			p, err := a.Pedidos.PedidoPorID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return imprimirPedido(cmd.OutOrStdout(), p)
		},
	}

	var nuevoEstado string
	estado := &cobra.Command{
		Use:   "estado <id>",
		Short: "Cambia el estado general del pedido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "pedido")
			if err != nil {
				return err
			}
			p, err := a.Pedidos.ActualizarEstado(cmd.Context(), id, domain.AdminUpdatePedidoStatusRequest{
				NuevoEstado: nuevoEstado,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pedido #%d: %s\n", p.PedidoID, p.Estado)
			return nil
		},
	}
	estado.Flags().StringVar(&nuevoEstado, "nuevo", "", "estado nuevo del pedido")
	estado.MarkFlagRequired("nuevo")

	var nuevoPago string
	pago := &cobra.Command{
		Use:   "pago <id>",
		Short: "Cambia el estado de pago del pedido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "pedido")
			if err != nil {
				return err
			}
			p, err := a.Pedidos.ActualizarPago(cmd.Context(), id, domain.AdminUpdatePagoRequest{
				NuevoEstadoPago: nuevoPago,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pedido #%d: pago %s\n", p.PedidoID, p.EstadoPago)
			return nil
		},
	}
	pago.Flags().StringVar(&nuevoPago, "nuevo", "", "estado de pago nuevo")
	pago.MarkFlagRequired("nuevo")

	var reqEnvio domain.AdminUpdateEnvioRequest
	envio := &cobra.Command{
		Use:   "envio <id>",
		Short: "Actualiza el estado de envío del pedido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "pedido")
			if err != nil {
				return err
			}
			p, err := a.Pedidos.ActualizarEnvio(cmd.Context(), id, reqEnvio)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pedido #%d: envío %s\n", p.PedidoID, p.EstadoEnvio)
			return nil
		},
	}
	envio.Flags().StringVar(&reqEnvio.NuevoEstadoEnvio, "estado", "", "estado de envío nuevo")
	envio.Flags().StringVar(&reqEnvio.DireccionEnvio, "direccion", "", "dirección de envío corregida")
	envio.Flags().StringVar(&reqEnvio.FechaEnvio, "fecha", "", "fecha de despacho (YYYY-MM-DD)")
	envio.Flags().StringVar(&reqEnvio.CodigoSeguimiento, "seguimiento", "", "código de seguimiento")
	envio.MarkFlagRequired("estado")

	eliminar := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Elimina un pedido",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "pedido")
			if err != nil {
				return err
			}
			if err := a.Pedidos.EliminarPedido(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pedido #%d eliminado\n", id)
			return nil
		},
	}

	cmd.AddCommand(listar, ver, estado, pago, envio, eliminar)
	return cmd
}
