package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var lookupJSON bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <address>",
	Short: "Look up value estimates for an address across providers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Lookup.Lookup(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		if lookupJSON {
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return eris.Wrap(err, "marshal result")
			}
			fmt.Println(string(out))
			return nil
		}

		if len(result.Estimates) == 0 {
			fmt.Println("no matching records found")
			return nil
		}

		if result.FromCache {
			fmt.Println("(cached)")
		}
		for _, est := range result.Estimates {
			fmt.Printf("%-14s %-10s $%s", est.Provider, est.Confidence, formatValue(est.ValueMid))
			if est.ValueLow != 0 || est.ValueHigh != 0 {
				fmt.Printf("  ($%s - $%s)", formatValue(est.ValueLow), formatValue(est.ValueHigh))
			}
			fmt.Printf("  %s\n", est.SourceAddress)
		}
		return nil
	},
}

// formatValue renders an NZD amount with thousands separators.
func formatValue(v int64) string {
	s := fmt.Sprintf("%d", v)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "emit the full result as JSON")
	rootCmd.AddCommand(lookupCmd)
}
