package main

import (
	"fmt"
	"strings"

	"github.com/SaiNageswarS/paper-agent/flows"
	"github.com/SaiNageswarS/paper-agent/schema"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Suggest research papers related to a natural-language query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if len([]rune(query)) < schema.MinUIQueryLength {
			return fmt.Errorf("%w: query must be at least %d characters", schema.ErrValidation, schema.MinUIQueryLength)
		}

		result, err := flows.SemanticSearch(cmd.Context(), flowDeps, schema.SearchRequest{Query: query})
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
