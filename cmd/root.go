package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// VERSION is set during build
	VERSION string
)

var cfgFile string

// source selection flags, shared by every subcommand that loads an archive.
var (
	archiveFile string
	bucket      string
	key         string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zipvault",
	Short: "Read-only ZIP decoder: inspect and extract archives from a local file or S3 without unpacking the whole thing",
	Long: `The zipvault CLI loads a ZIP archive's central directory and lets you
list, walk, and extract entries without ever writing the decompressed
archive back to disk in full.

example:

	zipvault list --file archive.zip /
	zipvault extract --file archive.zip plan.txt
	zipvault stats --bucket myBucket --key myKey.zip`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version string) {
	VERSION = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.zipvault.yaml)")
	rootCmd.PersistentFlags().StringVarP(&archiveFile, "file", "f", "", "path to a local ZIP archive")
	rootCmd.PersistentFlags().StringVarP(&bucket, "bucket", "b", "", "name of the S3 bucket holding the archive")
	rootCmd.PersistentFlags().StringVarP(&key, "key", "k", "", "name of the S3 key (object) holding the archive")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".zipvault" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".zipvault")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
