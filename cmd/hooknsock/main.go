package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mrhobbeys/HooknSock/internal/auth"
	serverrun "github.com/mrhobbeys/HooknSock/internal/cmd/server"
	cfgpkg "github.com/mrhobbeys/HooknSock/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hooknsock",
		Short: "HooknSock relay server",
		Long:  "HooknSock relays webhook payloads to live subscribers over per-channel queues.",
	}

	var (
		configPath string
		httpAddr   string
		tokens     string
	)

	loadConfig := func() (cfgpkg.Config, error) {
		if err := cfgpkg.LoadDotEnv(""); err != nil {
			return cfgpkg.Config{}, err
		}
		cfg, err := cfgpkg.Load(configPath)
		if err != nil {
			return cfgpkg.Config{}, err
		}
		cfgpkg.FromEnv(&cfg)
		if tokens != "" {
			cfg.Tokens = tokens
		}
		if httpAddr != "" {
			cfg.HTTPAddr = httpAddr
		}
		return cfg, nil
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the relay server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serverrun.Run(cmd.Context(), serverrun.Options{
				HTTPAddr: cfg.HTTPAddr,
				Config:   cfg,
			})
		},
	}
	serveCmd.Flags().StringVar(&configPath, "config", os.Getenv("HOOKNSOCK_CONFIG"), "path to JSON config file")
	serveCmd.Flags().StringVar(&httpAddr, "http", "", "HTTP listen address (overrides config)")
	serveCmd.Flags().StringVar(&tokens, "tokens", "", "credential table (overrides config and env)")

	checkCmd := &cobra.Command{
		Use:   "check-config",
		Short: "Validate configuration and the credential table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			table, err := auth.Parse(cfg.Tokens)
			if err != nil {
				return err
			}
			fmt.Printf("ok: %d credential(s), %d channel(s): %s\n",
				table.Credentials(), len(table.Channels()),
				strings.Join(table.Channels(), ", "))
			return nil
		},
	}
	checkCmd.Flags().StringVar(&configPath, "config", os.Getenv("HOOKNSOCK_CONFIG"), "path to JSON config file")
	checkCmd.Flags().StringVar(&tokens, "tokens", "", "credential table (overrides config and env)")

	rootCmd.AddCommand(serveCmd, checkCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
