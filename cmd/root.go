package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridfabric/topoxml/internal/expand"
	"github.com/gridfabric/topoxml/internal/ingest"
	"github.com/gridfabric/topoxml/internal/xmlout"
)

var (
	summaryOut  string
	downtimeOut string
)

func init() {
	rootCmd.Flags().StringVarP(&summaryOut, "summary-out", "o", "", "write the resource summary XML to this file (stdout if unset)")
	rootCmd.Flags().StringVarP(&downtimeOut, "downtime-out", "d", "", "write the downtime report XML to this file (stdout if unset)")
}

var errUsage = errors.New("input directory argument is required")

var rootCmd = &cobra.Command{
	Use:          "topoxml <input-dir>",
	Short:        "Convert a topology data tree into rgsummary and rgdowntime XML",
	SilenceUsage: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errUsage
		}
		if len(args) > 1 {
			return fmt.Errorf("unexpected arguments after input directory: %s", strings.Join(args[1:], " "))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		engine := ingest.NewEngine(osfs.New(args[0]), log)
		summary, downtimes, err := engine.Run()
		if err != nil {
			printDetail(cmd.ErrOrStderr(), err)
			return err
		}

		if err := writeDoc(summaryOut, summary, cmd.OutOrStdout()); err != nil {
			return err
		}
		return writeDoc(downtimeOut, downtimes, cmd.OutOrStdout())
	},
}

// printDetail surfaces the raw offending record(s) attached to an
// expansion failure before the error itself propagates.
func printDetail(w io.Writer, err error) {
	var ge *expand.GroupError
	var de *expand.DowntimeError
	switch {
	case errors.As(err, &ge):
		fmt.Fprintln(w, ge.Detail())
	case errors.As(err, &de):
		fmt.Fprintln(w, de.Detail())
	}
}

func writeDoc(path string, doc any, stdout io.Writer) error {
	if path == "" {
		return xmlout.Write(stdout, doc)
	}
	return xmlout.WriteFile(path, doc)
}

// Execute runs the root command. A missing input directory exits 2; any
// other failure exits 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
