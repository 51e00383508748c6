package main

import (
	"github.com/SaiNageswarS/paper-agent/flows"
	"github.com/SaiNageswarS/paper-agent/schema"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [url]",
	Short: "Find the direct PDF link behind a paper's landing page",
	Long: `Extract lets the model read the landing page through the page-content tool
and prints {"pdfUrl": ...}. A null pdfUrl means no direct link was found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := flows.ExtractPdfURL(cmd.Context(), flowDeps, schema.ExtractionRequest{URL: args[0]})
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Find the PDF behind a landing page and summarize it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := flows.AnalyzeFromLink(cmd.Context(), flowDeps, schema.ExtractionRequest{URL: args[0]})
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(analyzeCmd)
}
