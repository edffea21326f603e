package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oldschoolted/tienda-cli/internal/domain"
)

func newLoginCmd(a *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión en la tienda",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = leerLinea(cmd.InOrStdin(), cmd.OutOrStdout(), "Contraseña: ")
				if err != nil {
					return err
				}
			}

			usuario, err := a.Sesion.Login(cmd.Context(), domain.LoginRequest{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sesión iniciada como %s (%s)\n",
				usuario.Nombre, strings.Join(usuario.Roles, ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "correo de la cuenta")
	cmd.Flags().StringVarP(&password, "password", "p", "", "contraseña (si se omite se pide por consola)")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newRegistroCmd(a *App) *cobra.Command {
	var nombre, email, password string

	cmd := &cobra.Command{
		Use:   "registro",
		Short: "Crea una cuenta nueva e inicia sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = leerLinea(cmd.InOrStdin(), cmd.OutOrStdout(), "Contraseña: ")
				if err != nil {
					return err
				}
			}

			usuario, err := a.Sesion.Register(cmd.Context(), domain.RegisterRequest{
				Nombre:   nombre,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cuenta creada, sesión iniciada como %s\n", usuario.Nombre)
			return nil
		},
	}

	cmd.Flags().StringVarP(&nombre, "nombre", "n", "", "nombre completo")
	cmd.Flags().StringVarP(&email, "email", "e", "", "correo de la cuenta")
	cmd.Flags().StringVarP(&password, "password", "p", "", "contraseña (si se omite se pide por consola)")
	cmd.MarkFlagRequired("nombre")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión actual",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Sesion.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada")
			return nil
		},
	}
}

func newSesionCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sesion",
		Short: "Muestra el estado de la sesión actual",
		RunE: func(cmd *cobra.Command, args []string) error {
			usuario := a.Sesion.UsuarioActual()
			if usuario == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Sin sesión iniciada")
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Usuario: %s <%s>\n", usuario.Nombre, usuario.Email)
			fmt.Fprintf(out, "Roles:   %s\n", strings.Join(usuario.Roles, ", "))
			if expira, err := a.Sesion.SesionExpira(); err == nil {
				fmt.Fprintf(out, "Expira:  %s\n", expira.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

// newDesbloquearCmd dos fases: sin código pide al backend el envío por email;
// con código confirma el desbloqueo y fija la contraseña nueva.
func newDesbloquearCmd(a *App) *cobra.Command {
	var email, codigo, password string

	cmd := &cobra.Command{
		Use:   "desbloquear",
		Short: "Desbloquea una cuenta bloqueada por intentos fallidos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if codigo == "" {
				msg, err := a.Sesion.SolicitarCodigoDesbloqueo(cmd.Context(), email)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				fmt.Fprintln(cmd.OutOrStdout(), "Vuelve a ejecutar el comando con --codigo y --password")
				return nil
			}

			if password == "" {
				var err error
				password, err = leerLinea(cmd.InOrStdin(), cmd.OutOrStdout(), "Contraseña nueva: ")
				if err != nil {
					return err
				}
			}

			msg, err := a.Sesion.DesbloquearCuenta(cmd.Context(), domain.UnlockRequest{
				Email:       email,
				Code:        codigo,
				NewPassword: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "correo de la cuenta bloqueada")
	cmd.Flags().StringVar(&codigo, "codigo", "", "código recibido por email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "contraseña nueva")
	cmd.MarkFlagRequired("email")
	return cmd
}
