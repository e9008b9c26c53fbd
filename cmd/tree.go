package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alec-rabold/zipvault/zip"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print every entry in the archive as an indented tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadReader()
		if err != nil {
			return err
		}
		r.Walk(func(e *zip.Entry, depth int) {
			fmt.Printf("%s%s\n", indent(depth), e.Name)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
