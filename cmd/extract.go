package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alec-rabold/zipvault/zip"
)

var (
	extractOut          string
	extractSkipCRC      bool
	extractSkipSize     bool
	extractNoDecompress bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <entry-path>",
	Short: "Extract and decompress a single entry from the archive",
	Long: `Loads the archive's central directory, locates the named entry, decompresses
its content, and validates it against the stored CRC-32 and size.

ex:
	zipvault extract --file archive.zip plan.txt
	zipvault extract --file archive.zip plan.txt -o plan.txt
	zipvault extract --bucket myBucket --key myKey.zip plan.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := loadReader()
		if err != nil {
			return err
		}

		e, err := r.FindEntry(args[0])
		if err != nil {
			log.Errorf("error finding entry (path: %s), err: %v", args[0], err)
			return err
		}

		opts := zip.DefaultExtractOptions()
		opts.SkipCRCValidation = extractSkipCRC
		opts.SkipSizeValidation = extractSkipSize
		opts.Decompress = !extractNoDecompress

		res, err := r.Extract(e, opts)
		if err != nil {
			log.Errorf("error extracting entry (path: %s), err: %v", args[0], err)
			return err
		}

		if extractOut == "" {
			fmt.Print(res.String())
			return nil
		}

		f, err := os.OpenFile(extractOut, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			log.Errorf("error opening output file (name: %s), err: %v", extractOut, err)
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				log.Errorf("error closing output file (name: %s), err: %v", extractOut, cerr)
			}
		}()
		if _, err := f.Write(res.Bytes); err != nil {
			log.Errorf("error writing output file (name: %s), err: %v", extractOut, err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "file to write output to (default: stdout)")
	extractCmd.Flags().BoolVar(&extractSkipCRC, "skip-crc", false, "skip CRC-32 validation")
	extractCmd.Flags().BoolVar(&extractSkipSize, "skip-size", false, "skip uncompressed size validation")
	extractCmd.Flags().BoolVar(&extractNoDecompress, "no-decompress", false, "return the raw compressed payload")
}
