package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the tradedesk CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tradedesk version %s\n", version)
		fmt.Println("A terminal console for a remote automated-trading backend")
		fmt.Println("https://github.com/rustyeddy/tradedesk")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
