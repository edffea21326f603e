package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/oldschoolted/tienda-cli/internal/domain"
	"github.com/oldschoolted/tienda-cli/internal/monitoring"
)

func newAdminMonitorCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Panel de salud y métricas del backend",
	}

	estado := &cobra.Command{
		Use:   "estado",
		Short: "Muestra la salud de la aplicación y la base de datos",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := a.Monitoreo.EstadoSistema(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Aplicación: %s\nBase de datos: %s\n", e.App, e.Database)
			return nil
		},
	}

	metricas := &cobra.Command{
		Use:   "metricas",
		Short: "Muestra memoria, uptime y procesadores del backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.Monitoreo.Metricas(cmd.Context())
			if err != nil {
				return err
			}
			imprimirMetricas(cmd.OutOrStdout(), m)
			return nil
		},
	}

	var cadaCron string
	seguir := &cobra.Command{
		Use:   "seguir",
		Short: "Sondea salud y métricas de forma continua",
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := monitoring.NewProgramador(a.Monitoreo, a.Log)
			if err := prog.Iniciar(cmd.Context(), cadaCron); err != nil {
				return err
			}
			defer prog.Detener()

			out := cmd.OutOrStdout()
			for {
				select {
				case m := <-prog.Muestras():
					fmt.Fprintf(out, "[%s] app=%s db=%s\n",
						m.Tomada.Format("15:04:05"), m.Estado.App, m.Estado.Database)
					if m.Err != nil {
						fmt.Fprintf(out, "  métricas no disponibles: %v\n", m.Err)
						continue
					}
					imprimirMetricas(out, m.Metricas)
				case <-cmd.Context().Done():
					return nil
				}
			}
		},
	}
	seguir.Flags().StringVar(&cadaCron, "cada", "*/10 * * * * *", "expresión cron del sondeo (con segundos)")

	var descargarA string
	logs := &cobra.Command{
		Use:   "logs",
		Short: "Muestra las últimas líneas del log del backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if descargarA != "" {
				f, err := os.Create(descargarA)
				if err != nil {
					return fmt.Errorf("crear archivo de salida: %w", err)
				}
				defer f.Close()
				if err := a.Monitoreo.DescargarLog(cmd.Context(), f); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Log descargado en %s\n", descargarA)
				return nil
			}

			lineas, err := a.Monitoreo.LogsRecientes(cmd.Context())
			if err != nil {
				return err
			}
			for _, l := range lineas {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
	logs.Flags().StringVarP(&descargarA, "descargar", "o", "", "descarga el archivo de log completo a esta ruta")

	cmd.AddCommand(estado, metricas, seguir, logs)
	return cmd
}

func imprimirMetricas(out io.Writer, m *domain.MetricasSistema) {
	fmt.Fprintf(out, "  Memoria: %d/%d MB  Uptime: %s  Procesadores: %d\n",
		m.MemoriaUsadaMB, m.MemoriaTotalMB, m.UptimeLegible, m.ProcesadoresDisponibles)
}

// ── Tareas administrativas ───────────────────────────────────────────────────

func newAdminTareasCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tareas",
		Short: "Dispara tareas de mantenimiento del backend",
	}

	cmd.AddCommand(
		newTareaConReporteCmd(a, "limpiar-tokens", "Purga tokens caducados y descarga el reporte",
			a.Monitoreo.EjecutarLimpiezaTokens),
		newTareaConReporteCmd(a, "cancelar-pedidos", "Cancela pedidos vencidos y descarga el reporte",
			a.Monitoreo.EjecutarCancelacionPedidos),
		newTareaConReporteCmd(a, "reporte-ventas", "Genera y descarga el reporte de ventas",
			a.Monitoreo.EjecutarReporteVentas),
	)

	backup := &cobra.Command{
		Use:   "backup",
		Short: "Lanza un backup de la base de datos",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.Monitoreo.EjecutarBackup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg.Message)
			return nil
		},
	}
	cmd.AddCommand(backup, newTareaProgramarCmd(a))

	return cmd
}

// newTareaProgramarCmd ejecuta una tarea de forma recurrente según una
// expresión cron, hasta Ctrl-C. Los reportes se guardan con marca de tiempo.
func newTareaProgramarCmd(a *App) *cobra.Command {
	var tarea, cadaCron, dir string

	cmd := &cobra.Command{
		Use:   "programar",
		Short: "Ejecuta una tarea de mantenimiento de forma recurrente",
		RunE: func(cmd *cobra.Command, args []string) error {
			conReporte := map[string]func(context.Context, io.Writer) error{
				"limpiar-tokens":   a.Monitoreo.EjecutarLimpiezaTokens,
				"cancelar-pedidos": a.Monitoreo.EjecutarCancelacionPedidos,
				"reporte-ventas":   a.Monitoreo.EjecutarReporteVentas,
			}

			var correr func(context.Context)
			switch {
			case tarea == "backup":
				correr = func(ctx context.Context) {
					if _, err := a.Monitoreo.EjecutarBackup(ctx); err != nil {
						a.Log.Error().Err(err).Str("tarea", tarea).Msg("tarea programada falló")
						return
					}
					a.Log.Info().Str("tarea", tarea).Msg("tarea programada ejecutada")
				}
			case conReporte[tarea] != nil:
				ejecutar := conReporte[tarea]
				correr = func(ctx context.Context) {
					ruta := filepath.Join(dir, fmt.Sprintf("%s-%s.txt", tarea, time.Now().Format("20060102-150405")))
					f, err := os.Create(ruta)
					if err != nil {
						a.Log.Error().Err(err).Str("tarea", tarea).Msg("no se pudo crear el reporte")
						return
					}
					defer f.Close()
					if err := ejecutar(ctx, f); err != nil {
						a.Log.Error().Err(err).Str("tarea", tarea).Msg("tarea programada falló")
						return
					}
					a.Log.Info().Str("tarea", tarea).Str("reporte", ruta).Msg("tarea programada ejecutada")
				}
			default:
				return fmt.Errorf("%w: tarea desconocida %q", domain.ErrValidacion, tarea)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Tarea %s programada (%s); Ctrl-C para detener\n", tarea, cadaCron)
			return monitoring.ProgramarTarea(cmd.Context(), cadaCron, correr)
		},
	}

	cmd.Flags().StringVar(&tarea, "tarea", "", "backup, limpiar-tokens, cancelar-pedidos o reporte-ventas")
	cmd.Flags().StringVar(&cadaCron, "cada", "", "expresión cron de la ejecución (con segundos)")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directorio donde guardar los reportes")
	cmd.MarkFlagRequired("tarea")
	cmd.MarkFlagRequired("cada")
	return cmd
}

func newTareaConReporteCmd(a *App, nombre, corto string, ejecutar func(ctx context.Context, reporte io.Writer) error) *cobra.Command {
	var salida string

	cmd := &cobra.Command{
		Use:   nombre,
		Short: corto,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(salida)
			if err != nil {
				return fmt.Errorf("crear archivo de salida: %w", err)
			}
			defer f.Close()

			if err := ejecutar(cmd.Context(), f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reporte guardado en %s\n", salida)
			return nil
		},
	}

	cmd.Flags().StringVarP(&salida, "salida", "o", nombre+".txt", "archivo de destino del reporte")
	return cmd
}
