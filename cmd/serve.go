package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/salesdojo/salesdojo/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing scenarios and practice sessions.

Session state is held in memory: restarting the server discards all
in-flight conversations. By default it listens on port 8080; use --port
to change it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := getCatalog()
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		srv := api.NewServer(cat, newManager(cat), logger)

		addr := fmt.Sprintf(":%d", viper.GetInt("port"))
		logger.Info("serving API", "addr", addr)
		return http.ListenAndServe(addr, srv.Router())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
}
