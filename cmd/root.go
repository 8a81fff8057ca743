// Package cmd provides the ngview command line using Cobra.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ngview/internal/block"
	"ngview/internal/buffer"
	"ngview/internal/config"
	"ngview/internal/viewer"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	sidecarPath string
	themePath   string
	debugPath   string
)

var rootCmd = &cobra.Command{
	Use:   "ngview <file>",
	Short: "Inspect the block structure of a pcapng capture",
	Long: `ngview decodes a pcapng capture into its blocks and shows them as a
scrollable, foldable hex dump with every byte attributed to its field.

Enhanced Packet sub-headers and extra link-type names can be supplied in a
JSON sidecar; colours come from a TOML theme.`,
	Example: `  ngview capture.pcapng
  ngview capture.pcapng --sidecar ble.json
  ngview capture.pcapng --theme dark.toml --debug ngview.log`,
	Args:    cobra.ExactArgs(1),
	Version: Version,
	RunE:    runRoot,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&sidecarPath, "sidecar", "s", "", "JSON sidecar with packet sub-headers and link-type names (default ~/.config/ngview/data.json)")
	rootCmd.Flags().StringVarP(&themePath, "theme", "t", "", "TOML theme file (default ~/.config/ngview/ngview.toml)")
	rootCmd.Flags().StringVar(&debugPath, "debug", "", "write a debug log to this file")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if debugPath != "" {
		f, err := tea.LogToFile(debugPath, "ngview")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	model, err := load(args[0], sidecarPath, themePath)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}

// load reads and decodes the capture and builds the viewer for it. Nothing
// is drawn until every input has been read successfully.
func load(path, sidecar, theme string) (*viewer.Model, error) {
	buf, err := buffer.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}

	sc, err := config.LoadSidecar(sidecar)
	if err != nil {
		return nil, err
	}
	cat, err := sc.Catalog()
	if err != nil {
		return nil, fmt.Errorf("sidecar: %w", err)
	}

	cfg, err := config.Load(theme)
	if err != nil {
		return nil, err
	}

	blocks, err := block.Decode(buf.Data(), cat)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", buf.Filename(), err)
	}
	log.Printf("decoded %d blocks from %s (%d bytes)", len(blocks), buf.Path(), buf.Size())
	if n := len(blocks); n > 0 && blocks[n-1].Err() != block.ErrNone {
		log.Printf("decoding stopped at block %d: %s", n-1, blocks[n-1].Err())
	}

	return viewer.NewModel(buf, blocks, config.NewStyles(&cfg.Theme)), nil
}
