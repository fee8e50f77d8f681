package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Показать версию pdfsqueeze",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pdfsqueeze %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
