package main

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rowset/rowset-go/rowset"
	"github.com/rowset/rowset-go/rowset/sqlcursor"
)

type rootConfig struct {
	driver      string
	dsn         string
	table       string
	concurrency int
	verbose     bool
}

func newRootCmd() *cobra.Command {
	cfg := &rootConfig{}
	cmd := &cobra.Command{
		Use:           "rowjson",
		Short:         "Stream SQL query results as JSON",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newDocCmd(cfg))
	cmd.AddCommand(newStreamCmd(cfg))
	cmd.AddCommand(newEachCmd(cfg))

	f := cmd.PersistentFlags()
	f.StringVar(&cfg.driver, "driver", "postgres", "database/sql driver name")
	f.StringVar(&cfg.dsn, "dsn", "", "database connection string (or ROWJSON_DSN env)")
	f.StringVarP(&cfg.table, "table", "t", rowset.DefaultTableName, "table envelope key for the JSON output")
	f.BoolVarP(&cfg.verbose, "verbose", "v", false, "log progress to stderr")

	return cmd
}

// client opens the database and builds a rowset client over it. The caller
// must close the returned *sql.DB.
func (cfg *rootConfig) client() (*rowset.Client, *sql.DB, error) {
	dsn := cfg.dsn
	if dsn == "" {
		dsn = os.Getenv("ROWJSON_DSN")
	}
	if dsn == "" {
		return nil, nil, fmt.Errorf("no connection string: use --dsn or ROWJSON_DSN")
	}

	db, err := sql.Open(cfg.driver, dsn)
	if err != nil {
		return nil, nil, err
	}

	log := zerolog.Nop()
	if cfg.verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	client, err := rowset.New(sqlcursor.NewOpener(db), rowset.WithLogger(log))
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return client, db, nil
}

func newDocCmd(cfg *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "doc <query>",
		Short: "Run a query and print the whole result as one JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, db, err := cfg.client()
			if err != nil {
				return err
			}
			defer db.Close()

			doc, err := client.RunToDocument(cmd.Context(), args[0], rowset.TableName(cfg.table))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}

func newStreamCmd(cfg *rootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "stream <query>",
		Short: "Run a query and print one JSON document per row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, db, err := cfg.client()
			if err != nil {
				return err
			}
			defer db.Close()

			docs, err := client.StreamRows(cmd.Context(), args[0], rowset.TableName(cfg.table))
			if err != nil {
				return err
			}
			defer docs.Stop()

			return docs.Do(func(doc string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), doc)
				return err
			})
		},
	}
}

func newEachCmd(cfg *rootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "each <query>",
		Short: "Run a query and print per-row JSON documents, encoding rows in parallel",
		Long: `Run a query and print one JSON document per row. Rows are handed to a
bounded pool of workers, so document order follows completion order, not
row order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, db, err := cfg.client()
			if err != nil {
				return err
			}
			defer db.Close()

			var mu sync.Mutex
			out := cmd.OutOrStdout()
			return client.DispatchParallel(cmd.Context(), args[0],
				func(row *rowset.Row) error {
					doc, err := row.MarshalJSON()
					if err != nil {
						return err
					}
					mu.Lock()
					defer mu.Unlock()
					_, err = fmt.Fprintln(out, string(doc))
					return err
				},
				rowset.TableName(cfg.table),
				rowset.MaxConcurrency(cfg.concurrency),
			)
		},
	}
	cmd.Flags().IntVarP(&cfg.concurrency, "max-concurrency", "c", rowset.DefaultMaxConcurrency, "maximum concurrent row callbacks")
	return cmd
}
