package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"schoolapi/config"
	"schoolapi/db"
	"schoolapi/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		file       string
		comma      string
		skipHeader bool
	)

	cmd := &cobra.Command{
		Use:   "loader",
		Short: "Bulk import schools from a delimited file",
		Long: "Reads rows of name, address, latitude, longitude and inserts them\n" +
			"into the schools table configured through DB_* environment variables.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sep, size := utf8.DecodeRuneInString(comma)
			if size == 0 || size != len(comma) {
				return errors.Errorf("--comma must be a single character, got %q", comma)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel, cfg.LogFormat)
			defer log.Sync()

			f, err := os.Open(file)
			if err != nil {
				return errors.Wrap(err, "open input")
			}
			defer f.Close()

			ctx := cmd.Context()
			conn, err := db.Connect(ctx, cfg.DSN())
			if err != nil {
				return err
			}
			defer conn.Close()

			db.NewReconciler(conn, cfg.DBName, cfg.DBTable, log).Run(ctx)

			res, err := load(ctx, db.NewMySQLStore(conn, cfg.DBTable), f, sep, skipHeader, log)
			log.Info("load finished",
				zap.String("file", file),
				zap.Int("inserted", res.Inserted),
				zap.Int("skipped", res.Skipped),
				zap.Error(err))
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d schools, skipped %d rows\n", res.Inserted, res.Skipped)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the input file")
	cmd.Flags().StringVar(&comma, "comma", ",", "field separator")
	cmd.Flags().BoolVar(&skipHeader, "skip-header", false, "ignore the first line")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
