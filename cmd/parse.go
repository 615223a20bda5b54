package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/propmatch/pkg/address"
)

var (
	parseSuburbHint string
	parseCityHint   string
)

var parseCmd = &cobra.Command{
	Use:   "parse <address>",
	Short: "Parse a raw address string into structured fields",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := strings.Join(args, " ")

		parsed := address.ParseWithHints(raw, parseSuburbHint, parseCityHint)

		out, err := json.MarshalIndent(parsed, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal parsed address")
		}
		fmt.Println(string(out))

		if !parsed.Valid {
			return eris.Errorf("no house number found in %q", raw)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseSuburbHint, "suburb", "", "pre-split suburb hint")
	parseCmd.Flags().StringVar(&parseCityHint, "city", "", "pre-split city hint")
	rootCmd.AddCommand(parseCmd)
}
