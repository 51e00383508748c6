package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/SaiNageswarS/paper-agent/flows"
	"github.com/SaiNageswarS/paper-agent/schema"
	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize a research paper from a PDF URL or a local file",
	Long: `Summarize attaches the paper to a single generation call and prints its
title, summary, key findings, methodology and conclusion. Exactly one of
--url or --file is required; files must be PDFs.`,
	Args: cobra.NoArgs,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().String("url", "", "direct URL of the paper's PDF")
	summarizeCmd.Flags().String("file", "", "path to a local PDF file")
	summarizeCmd.MarkFlagsMutuallyExclusive("url", "file")
	summarizeCmd.MarkFlagsOneRequired("url", "file")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	pdfURL, _ := cmd.Flags().GetString("url")
	path, _ := cmd.Flags().GetString("file")

	var (
		result *schema.SummaryResult
		err    error
	)
	if path != "" {
		dataURI, readErr := fileDataURI(path)
		if readErr != nil {
			return readErr
		}
		result, err = flows.SummarizeByFile(cmd.Context(), flowDeps, schema.SummarizeFileRequest{PdfDataURI: dataURI})
	} else {
		result, err = flows.SummarizeByURL(cmd.Context(), flowDeps, schema.SummarizeURLRequest{PdfURL: pdfURL})
	}
	if err != nil {
		return err
	}
	return printJSON(cmd, result)
}

// fileDataURI encodes a local file as a data URI typed by its content.
func fileDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	mimeType, _, _ := strings.Cut(http.DetectContentType(data), ";")
	return schema.EncodeDataURI(mimeType, data), nil
}
