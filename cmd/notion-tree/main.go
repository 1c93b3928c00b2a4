// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notion-tree CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries diagnostics to stderr. Progress output goes to stdout
// separately; the logger stays a nop unless --verbose is set.
var logger = zap.NewNop()

// rootCmd is the base command for the notion-tree CLI.
var rootCmd = &cobra.Command{
	Use:   "notion-tree",
	Short: "Mirror a local Markdown directory into a Notion page tree",
	Long: `notion-tree mirrors a local directory of Markdown documents into a
hierarchical tree of Notion pages, preserving nesting, cross-links, and
content. Directories become pages (an index.md supplies their body), other
Markdown files become child pages, and relative links between documents are
rewritten to Notion page URLs.

The integration token is read from the NOTION_TOKEN environment variable; a
.env file in the working directory is loaded first.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env lets NOTION_TOKEN live next to the documents.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading .env: %w", err)
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log, err := zap.NewDevelopmentConfig().Build()
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			logger = log
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notion-tree.yaml or ~/.config/notion-tree/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging to stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notion-tree")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notion-tree"))
		}
	}

	viper.SetEnvPrefix("NOTION_TREE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
