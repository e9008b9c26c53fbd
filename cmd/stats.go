package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print file count, directory count, and total uncompressed size",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadReader()
		if err != nil {
			return err
		}
		stats := r.GetStats()
		if stats.FileCount == 0 && stats.DirCount == 0 {
			log.Debug("archive has no central directory entries")
		}
		fmt.Printf("files: %d\ndirectories: %d\ntotal size: %d bytes\n", stats.FileCount, stats.DirCount, stats.TotalSize)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
