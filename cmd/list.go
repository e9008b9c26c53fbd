package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List the entries of a directory (defaults to the root)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/"
		if len(args) == 1 {
			path = args[0]
		}

		r, err := loadReader()
		if err != nil {
			return err
		}

		children, err := r.ListDirectory(path)
		if err != nil {
			log.Errorf("error listing directory (path: %s), err: %v", path, err)
			return err
		}
		for _, c := range children {
			fmt.Println(c.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
