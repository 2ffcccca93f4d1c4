package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pb40development/bim-portal-sub001/auth"
	"github.com/pb40development/bim-portal-sub001/client"
	"github.com/pb40development/bim-portal-sub001/config"
	"github.com/pb40development/bim-portal-sub001/export"
	"github.com/pb40development/bim-portal-sub001/pkg/clierr"
	"github.com/pb40development/bim-portal-sub001/pkg/validation"
	"github.com/pb40development/bim-portal-sub001/portal"
)

// exportCmd creates a new cobra.Command for exporting resources to local files.
func exportCmd() *cobra.Command {
	var formatName string
	var exportDir string
	var rateLimit string
	var exportAll bool
	var numWorkers int

	cmd := &cobra.Command{
		Use:   "export [kind] [guid]",
		Short: "Export resources from the BIM portal to local files",
		Long:  "Export one resource rendition by kind and GUID, or every visible project with --all",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			if exportAll {
				if len(args) != 1 || args[0] != "project" {
					cmd.PrintErrln("Error: --all exports projects only. Use `export project --all`.")
					return
				}
				exportAllProjects(cmd, formatName, exportDir, rateLimit, numWorkers)
				return
			}
			if len(args) != 2 {
				cmd.PrintErrln("Error: A resource kind and a GUID are required. Use `export [kind] [guid]`.")
				return
			}
			if err := exportResource(cmd, args[0], args[1], formatName, exportDir, rateLimit); err != nil {
				printCommandError(cmd, err)
			}
		},
	}

	// Define the flags for the command
	cmd.Flags().StringVarP(&formatName, "format", "f", "pdf", "Export format: pdf, openOffice, okstra, loinXML, or IDS")
	cmd.Flags().StringVarP(&exportDir, "dir", "d", "", "Directory to write the exported files to (defaults to the configured export directory)")
	cmd.Flags().StringVar(&rateLimit, "rate-limit", "", "Cap the download bandwidth, for example 500KB or 2MB (default unlimited)")
	cmd.Flags().BoolVarP(&exportAll, "all", "a", false, "Export every project visible to the account")
	cmd.Flags().IntVarP(&numWorkers, "workers", "w", 4, "Number of workers to use for bulk exports")

	return cmd
}

func exportResource(cmd *cobra.Command, kind, rawGUID, formatName, dir, rateLimit string) error {
	if err := validation.ValidateResourceKind(kind); err != nil {
		return clierr.New(clierr.Validation,
			"Invalid resource kind: "+kind+". Use one of: project, loin, domain_model, context, template.", err)
	}

	guid, err := validation.ParseGUID(rawGUID)
	if err != nil {
		return clierr.New(clierr.Validation, "Invalid GUID: "+rawGUID, err)
	}

	format, err := client.ParseExportFormat(formatName)
	if err != nil {
		return clierr.New(clierr.Validation,
			"Invalid export format: "+formatName+". Use one of: pdf, openOffice, okstra, loinXML, IDS.", err)
	}

	cfg := config.Load()
	if rateLimit != "" {
		limit, perr := config.ParseSize(rateLimit)
		if perr != nil {
			return clierr.New(clierr.Validation,
				"Invalid rate limit: "+rateLimit+". Use a size like 500KB or 2MB.", perr)
		}
		cfg.ExportRateLimit = limit
	}
	pc := portal.New(cfg)
	if dir == "" {
		dir = cfg.ExportDir
	}
	ctx := cmd.Context()

	log.Info().Msgf("Exporting %s %s as %s...", kind, guid, format)

	var data []byte
	switch kind {
	case "project":
		data, err = pc.ExportProject(ctx, guid, format)
	case "loin":
		data, err = pc.ExportLoin(ctx, guid, format)
	case "domain_model":
		data, err = pc.ExportDomainModel(ctx, guid, format)
	case "context":
		data, err = pc.ExportContextInfo(ctx, guid, format)
	case "template":
		data, err = pc.ExportTemplate(ctx, guid, format)
	}
	if err != nil {
		return exportError(kind, err)
	}

	path, err := export.SaveDetected(dir, kind, guid, format, data)
	if err != nil {
		return clierr.New(clierr.Export, "Failed to save the exported file.", err)
	}

	cmd.Printf("Saved %s to %s.\n", formatBytes(int64(len(data))), path)
	return nil
}

func exportAllProjects(cmd *cobra.Command, formatName, dir, rateLimit string, numWorkers int) {
	// Check the number of workers is valid
	if err := validation.ValidateWorkerCount(numWorkers); err != nil {
		cmd.PrintErrln("Error: Number of workers should be between 1 and 20.")
		return
	}

	format, err := client.ParseExportFormat(formatName)
	if err != nil {
		cmd.PrintErrln("Error: Invalid export format: " + formatName + ". Use one of: pdf, openOffice, okstra, loinXML, IDS.")
		return
	}

	cfg := config.Load()
	if dir != "" {
		cfg.ExportDir = dir
	}
	if rateLimit != "" {
		limit, perr := config.ParseSize(rateLimit)
		if perr != nil {
			cmd.PrintErrln("Error: Invalid rate limit: " + rateLimit + ". Use a size like 500KB or 2MB.")
			return
		}
		cfg.ExportRateLimit = limit
	}
	pc := portal.New(cfg)

	log.Info().Msgf("Exporting all visible projects as %s to %s...", format, cfg.ExportDir)

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(cmd.OutOrStdout()),
		progressbar.OptionSetDescription("Exporting projects..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	// The portal reports progress as a fraction of the processed projects
	progressCb := func(fraction float64) {
		_ = bar.Set(int(fraction * 100))
	}

	saved, err := pc.ExportAllProjects(cmd.Context(), format, numWorkers, progressCb)
	_ = bar.Finish()
	if err != nil {
		log.Error().Err(err).Msg("Bulk export did not finish.")
		cmd.PrintErrln("Error: Failed to export all projects. Please check the logs for details.")
		return
	}

	if len(saved) == 0 {
		cmd.Println("No projects were exported.")
		return
	}

	cmd.Printf("Exported %d project(s) to %s.\n", len(saved), cfg.ExportDir)
}

// exportError classifies a failed export for the command layer.
func exportError(kind string, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return clierr.New(clierr.NotFound, "No "+resourceKinds[kind]+" found with the specified GUID.", err)
	}
	var authErr *auth.AuthenticationError
	if errors.As(err, &authErr) {
		return clierr.New(clierr.Auth, "Authentication with the BIM portal failed. Please check your credentials.", err)
	}
	return clierr.New(clierr.Export, fmt.Sprintf("Failed to export the %s: %v", resourceKinds[kind], err), err)
}
