package cmd

import (
	"fmt"
	"os"

	"github.com/helpdesk-portal/helpdesk-service/internal/config"
	"github.com/helpdesk-portal/helpdesk-service/internal/database"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var exportLoginsOut string

var exportLoginsCmd = &cobra.Command{
	Use:   "export-logins",
	Short: "Dump the login-event audit trail as CSV (stdout or --out file)",
	RunE:  runExportLogins,
}

func init() {
	exportLoginsCmd.Flags().StringVarP(&exportLoginsOut, "out", "o", "", "write CSV to this file instead of stdout")
	rootCmd.AddCommand(exportLoginsCmd)
}

func runExportLogins(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}

	audit := service.NewAuditService(db)
	out, err := audit.ExportCSV(cmd.Context())
	if err != nil {
		return fmt.Errorf("export logins: %w", err)
	}

	if exportLoginsOut == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(exportLoginsOut, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportLoginsOut, err)
	}
	log.Info().Str("file", exportLoginsOut).Msg("export-logins: done")
	return nil
}
