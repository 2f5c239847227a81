package cli

import (
	"fmt"

	"deblinger/internal/mcpserver"
	"deblinger/internal/web"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Version and BuildDate are set at build time with -ldflags.
var (
	Version   = "1.0.7"
	BuildDate = "unknown"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default HTTP_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.HTTPAddr
	}

	ctx, cancel := setupContext()
	defer cancel()

	r, b, err := loadResolver(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	if !r.Ready() {
		log.Warn().Msg("Serving without reprint data, conversions will report an error")
	}

	return web.NewServer(r, Version).ListenAndServe(ctx, addr)
}

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the converter as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)

			ctx, cancel := setupContext()
			defer cancel()

			r, b, err := loadResolver(ctx, cfg)
			if err != nil {
				return err
			}
			defer b.close()

			log.Info().Bool("ready", r.Ready()).Msg("Starting MCP server on stdio")
			return server.ServeStdio(mcpserver.NewServer(r, Version))
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "deblinger %s (built %s)\n", Version, BuildDate)
		},
	}
}
