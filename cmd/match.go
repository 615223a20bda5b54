package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/propmatch/pkg/address"
)

var matchCmd = &cobra.Command{
	Use:   "match <address-a> <address-b>",
	Short: "Decide whether two addresses denote the same property",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		verdict := address.Match(address.Parse(args[0]), address.Parse(args[1]))

		out, err := json.MarshalIndent(verdict, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal verdict")
		}
		fmt.Println(string(out))

		if !verdict.Match {
			return eris.New("no match")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}
