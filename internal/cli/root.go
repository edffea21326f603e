package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd arma el árbol de comandos de la consola de la tienda.
func NewRootCmd(a *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tienda",
		Short:         "Consola de OldSchool Tees: tienda y administración",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newLoginCmd(a),
		newRegistroCmd(a),
		newLogoutCmd(a),
		newSesionCmd(a),
		newDesbloquearCmd(a),
		newCatalogoCmd(a),
		newCarritoCmd(a),
		newPedidosCmd(a),
		newAdminCmd(a),
	)

	return rootCmd
}
