package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oldschoolted/tienda-cli/internal/domain"
)

// ── Proveedores ──────────────────────────────────────────────────────────────

func newAdminProveedoresCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proveedores",
		Short: "Gestión de proveedores",
	}

	listar := &cobra.Command{
		Use:   "listar",
		Short: "Lista los proveedores registrados",
		RunE: func(cmd *cobra.Command, args []string) error {
			proveedores, err := a.Proveedores.Proveedores(cmd.Context())
			if err != nil {
				return err
			}
			tabla := nuevaTabla(cmd.OutOrStdout())
			fmt.Fprintln(tabla, "ID\tRAZON SOCIAL\tCONTACTO\tTELEFONO")
			for _, p := range proveedores {
				fmt.Fprintf(tabla, "%d\t%s\t%s\t%s\n", p.IDProveedor, p.RazonSocial, p.Contacto, p.Telefono)
			}
			return tabla.Flush()
		},
	}

	var req domain.ProveedorRequest
	crear := &cobra.Command{
		Use:   "crear",
		Short: "Registra un proveedor",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.Proveedores.CrearProveedor(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Proveedor #%d creado: %s\n", p.IDProveedor, p.RazonSocial)
			return nil
		},
	}
	flagsProveedor(crear, &req)
	crear.MarkFlagRequired("razon-social")

	var reqAct domain.ProveedorRequest
	actualizar := &cobra.Command{
		Use:   "actualizar <id>",
		Short: "Actualiza un proveedor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "proveedor")
			if err != nil {
				return err
			}
			p, err := a.Proveedores.ActualizarProveedor(cmd.Context(), id, reqAct)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Proveedor #%d actualizado\n", p.IDProveedor)
			return nil
		},
	}
	flagsProveedor(actualizar, &reqAct)
	actualizar.MarkFlagRequired("razon-social")

	eliminar := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Elimina un proveedor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "proveedor")
			if err != nil {
				return err
			}
			if err := a.Proveedores.EliminarProveedor(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Proveedor #%d eliminado\n", id)
			return nil
		},
	}

	cmd.AddCommand(listar, crear, actualizar, eliminar)
	return cmd
}

func flagsProveedor(cmd *cobra.Command, req *domain.ProveedorRequest) {
	cmd.Flags().StringVar(&req.RazonSocial, "razon-social", "", "razón social")
	cmd.Flags().StringVar(&req.Contacto, "contacto", "", "persona de contacto")
	cmd.Flags().StringVar(&req.Telefono, "telefono", "", "teléfono")
	cmd.Flags().StringVar(&req.Direccion, "direccion", "", "dirección")
}

// ── Promociones ──────────────────────────────────────────────────────────────

func newAdminPromocionesCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promociones",
		Short: "Gestión de promociones",
	}

	listar := &cobra.Command{
		Use:   "listar",
		Short: "Lista las promociones",
		RunE: func(cmd *cobra.Command, args []string) error {
			promociones, err := a.Promociones.Promociones(cmd.Context())
			if err != nil {
				return err
			}
			tabla := nuevaTabla(cmd.OutOrStdout())
			fmt.Fprintln(tabla, "ID\tCODIGO\tDESCUENTO\tDESDE\tHASTA\tACTIVA")
			for _, p := range promociones {
				fmt.Fprintf(tabla, "%d\t%s\t%s%%\t%s\t%s\t%t\n",
					p.IDPromocion, p.Codigo, p.Descuento, p.FechaInicio, p.FechaFin, p.Activa)
			}
			return tabla.Flush()
		},
	}

	crear := newAdminPromocionEditarCmd(a, false)
	actualizar := newAdminPromocionEditarCmd(a, true)

	desactivar := &cobra.Command{
		Use:   "desactivar <id>",
		Short: "Desactiva una promoción (baja lógica)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "promoción")
			if err != nil {
				return err
			}
			if err := a.Promociones.DesactivarPromocion(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Promoción #%d desactivada\n", id)
			return nil
		},
	}

	cmd.AddCommand(listar, crear, actualizar, desactivar)
	return cmd
}

func newAdminPromocionEditarCmd(a *App, actualizar bool) *cobra.Command {
	var req domain.PromocionRequest
	var descuento string
	var activa bool

	uso, corto := "crear", "Crea una promoción"
	if actualizar {
		uso, corto = "actualizar <id>", "Actualiza una promoción"
	}

	cmd := &cobra.Command{
		Use:   uso,
		Short: corto,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.Descuento, err = parsearPrecio(descuento); err != nil {
				return err
			}
			req.Activa = &activa

			var p *domain.Promocion
			if actualizar {
				id, err := parsearID(args[0], "promoción")
				if err != nil {
					return err
				}
				p, err = a.Promociones.ActualizarPromocion(cmd.Context(), id, req)
				if err != nil {
					return err
				}
			} else {
				p, err = a.Promociones.CrearPromocion(cmd.Context(), req)
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Promoción #%d (%s) guardada\n", p.IDPromocion, p.Codigo)
			return nil
		},
	}
	if actualizar {
		cmd.Args = cobra.ExactArgs(1)
	}

	cmd.Flags().StringVar(&req.Codigo, "codigo", "", "código único de la promoción")
	cmd.Flags().StringVar(&req.Descripcion, "descripcion", "", "descripción")
	cmd.Flags().StringVar(&descuento, "descuento", "", "porcentaje de descuento")
	cmd.Flags().StringVar(&req.FechaInicio, "desde", "", "inicio de vigencia (ISO)")
	cmd.Flags().StringVar(&req.FechaFin, "hasta", "", "fin de vigencia (ISO)")
	cmd.Flags().BoolVar(&activa, "activa", true, "vigente desde el alta")
	cmd.MarkFlagRequired("codigo")
	cmd.MarkFlagRequired("descripcion")
	cmd.MarkFlagRequired("descuento")
	cmd.MarkFlagRequired("desde")
	cmd.MarkFlagRequired("hasta")
	return cmd
}

// ── Asignaciones producto↔proveedor ──────────────────────────────────────────

func newAdminAsignacionesCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asignaciones",
		Short: "Asignaciones producto-proveedor con precio de costo",
	}

	var productoID, proveedorID int
	var precioCosto string
	crear := &cobra.Command{
		Use:   "crear",
		Short: "Crea una asignación",
		RunE: func(cmd *cobra.Command, args []string) error {
			precio, err := parsearPrecio(precioCosto)
			if err != nil {
				return err
			}
			asig, err := a.Proveedores.CrearAsignacion(cmd.Context(), domain.AsignacionRequest{
				ProductoID:  productoID,
				ProveedorID: proveedorID,
				PrecioCosto: precio,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Asignación #%d creada\n", asig.IDAsignacion)
			return nil
		},
	}
	crear.Flags().IntVar(&productoID, "producto", 0, "id del producto")
	crear.Flags().IntVar(&proveedorID, "proveedor", 0, "id del proveedor")
	crear.Flags().StringVar(&precioCosto, "costo", "", "precio de costo pactado")
	crear.MarkFlagRequired("producto")
	crear.MarkFlagRequired("proveedor")
	crear.MarkFlagRequired("costo")

	porProducto := &cobra.Command{
		Use:   "por-producto <id>",
		Short: "Lista las asignaciones de un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "producto")
			if err != nil {
				return err
			}
			asignaciones, err := a.Proveedores.AsignacionesPorProducto(cmd.Context(), id)
			if err != nil {
				return err
			}
			return imprimirAsignaciones(cmd, asignaciones)
		},
	}

	porProveedor := &cobra.Command{
		Use:   "por-proveedor <id>",
		Short: "Lista las asignaciones de un proveedor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "proveedor")
			if err != nil {
				return err
			}
			asignaciones, err := a.Proveedores.AsignacionesPorProveedor(cmd.Context(), id)
			if err != nil {
				return err
			}
			return imprimirAsignaciones(cmd, asignaciones)
		},
	}

	var nuevoCosto string
	precio := &cobra.Command{
		Use:   "precio <id>",
		Short: "Actualiza el precio de costo de una asignación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "asignación")
			if err != nil {
				return err
			}
			costo, err := parsearPrecio(nuevoCosto)
			if err != nil {
				return err
			}
			asig, err := a.Proveedores.ActualizarPrecioCosto(cmd.Context(), id, domain.UpdatePrecioRequest{
				NuevoPrecioCosto: costo,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Asignación #%d: costo %s\n", asig.IDAsignacion, moneda(asig.PrecioCosto))
			return nil
		},
	}
	precio.Flags().StringVar(&nuevoCosto, "nuevo", "", "precio de costo nuevo")
	precio.MarkFlagRequired("nuevo")

	eliminar := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Elimina una asignación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "asignación")
			if err != nil {
				return err
			}
			if err := a.Proveedores.EliminarAsignacion(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Asignación #%d eliminada\n", id)
			return nil
		},
	}

	cmd.AddCommand(crear, porProducto, porProveedor, precio, eliminar)
	return cmd
}

func imprimirAsignaciones(cmd *cobra.Command, asignaciones []domain.Asignacion) error {
	tabla := nuevaTabla(cmd.OutOrStdout())
	fmt.Fprintln(tabla, "ID\tPRODUCTO\tPROVEEDOR\tCOSTO")
	for _, asig := range asignaciones {
		fmt.Fprintf(tabla, "%d\t%s\t%s\t%s\n",
			asig.IDAsignacion, asig.ProductoNombre, asig.ProveedorRazonSocial, moneda(asig.PrecioCosto))
	}
	return tabla.Flush()
}

// ── Inventario ───────────────────────────────────────────────────────────────

func newAdminInventarioCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventario",
		Short: "Consulta y ajuste de stock",
	}

	listar := &cobra.Command{
		Use:   "listar",
		Short: "Lista el inventario completo",
		RunE: func(cmd *cobra.Command, args []string) error {
			inventario, err := a.Inventario.TodoElInventario(cmd.Context())
			if err != nil {
				return err
			}
			tabla := nuevaTabla(cmd.OutOrStdout())
			fmt.Fprintln(tabla, "PRODUCTO\tNOMBRE\tSTOCK\tACTUALIZADO")
			for _, inv := range inventario {
				fmt.Fprintf(tabla, "%d\t%s\t%d\t%s\n",
					inv.ProductoID, inv.ProductoNombre, inv.Stock, inv.UltimaActualizacion)
			}
			return tabla.Flush()
		},
	}

	ver := &cobra.Command{
		Use:   "ver <producto>",
		Short: "Muestra el stock de un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsearID(args[0], "producto")
			if err != nil {
				return err
			}
			inv, err := a.Inventario.InventarioPorProducto(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d unidades (actualizado %s)\n",
				inv.ProductoNombre, inv.Stock, inv.UltimaActualizacion)
			return nil
		},
	}

	var productoID, nuevoStock int
	stock := &cobra.Command{
		Use:   "stock",
		Short: "Fija el stock de un producto",
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := a.Inventario.ActualizarStock(cmd.Context(), domain.InventarioUpdateRequest{
				ProductoID: productoID,
				NuevoStock: nuevoStock,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: stock %d\n", inv.ProductoNombre, inv.Stock)
			return nil
		},
	}
	stock.Flags().IntVar(&productoID, "producto", 0, "id del producto")
	stock.Flags().IntVar(&nuevoStock, "stock", 0, "stock nuevo")
	stock.MarkFlagRequired("producto")
	stock.MarkFlagRequired("stock")

	cmd.AddCommand(listar, ver, stock)
	return cmd
}
