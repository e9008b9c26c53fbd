package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alec-rabold/zipvault/zip"
)

var (
	extractDirOut     string
	extractDirSkipCRC bool
)

var extractDirCmd = &cobra.Command{
	Use:   "extract-dir <path>",
	Short: "Extract every file under a subtree of the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadReader()
		if err != nil {
			return err
		}

		opts := zip.DefaultExtractOptions()
		opts.SkipCRCValidation = extractDirSkipCRC

		results, err := r.ExtractDirectory(args[0], opts)
		if err != nil {
			log.Errorf("error extracting directory (path: %s), err: %v", args[0], err)
			return err
		}

		if extractDirOut == "" {
			for name := range results {
				fmt.Println(name)
			}
			return nil
		}

		for name, res := range results {
			dest := filepath.Join(extractDirOut, name)
			if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
				log.Errorf("error creating output directory for (name: %s), err: %v", name, err)
				return err
			}
			if err := os.WriteFile(dest, res.Bytes, 0644); err != nil {
				log.Errorf("error writing output file (name: %s), err: %v", dest, err)
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractDirCmd)
	extractDirCmd.Flags().StringVarP(&extractDirOut, "out", "o", "", "directory to write output under (default: print names only)")
	extractDirCmd.Flags().BoolVar(&extractDirSkipCRC, "skip-crc", false, "skip CRC-32 validation")
}
