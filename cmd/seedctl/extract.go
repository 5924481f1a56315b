package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"seedstore_backend/internal/chat/service"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "extract <prompt>",
		Short:   "Print the search criteria extracted from a chat prompt",
		Example: `  seedctl extract "немецкие семена томатов до 300 рублей"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extractor := service.NewExtractor(service.DefaultVocabulary())
			criteria := extractor.Extract(strings.Join(args, " "))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(criteria)
		},
	}
}
