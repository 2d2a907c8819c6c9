package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"benchkit/utf16le"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered validation routines",
	Run: func(cmd *cobra.Command, args []string) {
		for _, m := range utf16le.Methods() {
			fmt.Println(m.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
