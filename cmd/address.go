package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/clearlend/docmatch/internal/address"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Normalize and compare street addresses",
}

var addressNormalizeCmd = &cobra.Command{
	Use:   "normalize <address>",
	Short: "Parse an address into tagged USPS-style components",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := address.Normalize(args[0])

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return eris.Wrap(err, "address: marshal result")
		}
		fmt.Println(string(out))
		fmt.Println(result.String())
		return nil
	},
}

var addressMatchCmd = &cobra.Command{
	Use:   "match <address1> <address2>",
	Short: "Fuzzy-match two addresses after component normalization",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, _ := cmd.Flags().GetInt("threshold")
		if threshold == 0 {
			threshold = cfg.Match.AddressThreshold
		}
		if threshold < 1 || threshold > 100 {
			return eris.Errorf("address: --threshold must be 1-100 (got %d)", threshold)
		}

		fmt.Println(address.FuzzyMatch(args[0], args[1], threshold))
		return nil
	},
}

func init() {
	addressMatchCmd.Flags().Int("threshold", 0, "similarity floor 1-100 (0=use config default)")

	addressCmd.AddCommand(addressNormalizeCmd)
	addressCmd.AddCommand(addressMatchCmd)
	rootCmd.AddCommand(addressCmd)
}
