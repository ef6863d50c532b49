package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/ytdlp-bridge/internal/app"
)

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "ytdlp-bridge",
		Short: "ytdlp-bridge - Install and run yt-dlp next to this program",
		Long: `A command-line interface that downloads the yt-dlp release for this
platform next to its own executable and runs it to extract mp3 audio.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	rootCmd.AddCommand(acquireCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(invokeCmd)
}

// withHost loads config, builds the host and runs fn with it
func withHost(cmd *cobra.Command, fn func(ctx context.Context, host *app.Host) error) error {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host, err := app.NewHost(ctx, config)
	if err != nil {
		return err
	}
	defer host.Close()

	return fn(ctx, host)
}

var acquireCmd = &cobra.Command{
	Use:   "acquire",
	Short: "Download yt-dlp for this platform",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHost(cmd, func(ctx context.Context, host *app.Host) error {
			message, err := host.Service.Acquire(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		})
	},
}

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the installed yt-dlp path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHost(cmd, func(ctx context.Context, host *app.Host) error {
			path, err := host.Service.Find()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		})
	},
}

var invokeCmd = &cobra.Command{
	Use:   "invoke [url]",
	Short: "Run yt-dlp to extract mp3 audio from a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHost(cmd, func(ctx context.Context, host *app.Host) error {
			message, err := host.Service.Invoke(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		})
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
