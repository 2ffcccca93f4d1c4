package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pb40development/bim-portal-sub001/pkg/hasher"
	"github.com/pb40development/bim-portal-sub001/pkg/operations"
	"github.com/pb40development/bim-portal-sub001/pkg/validation"
)

// checksumCmd creates a new cobra.Command for generating checksums of
// exported documents, so transfers of an export directory can be verified.
func checksumCmd() *cobra.Command {
	var algo string
	var recursive bool
	var saveToFile bool
	var cleanFiles bool
	var numWorkers int

	cmd := &cobra.Command{
		Use:   "checksum [dir]",
		Short: "Generate checksums for exported files",
		Long:  "Generate checksum files for the exported documents in a directory, or remove previously generated ones",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runChecksum(cmd, args[0], algo, recursive, saveToFile, cleanFiles, numWorkers)
		},
	}

	// Define the flags for the command
	cmd.Flags().StringVarP(&algo, "algo", "a", "sha256", "Hash algorithm to use [md5, sha1, sha256, sha512]")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Include files in subdirectories")
	cmd.Flags().BoolVarP(&saveToFile, "save", "s", false, "Write the checksums next to the files instead of printing them")
	cmd.Flags().BoolVarP(&cleanFiles, "clean", "c", false, "Remove previously generated checksum files and exit")
	cmd.Flags().IntVarP(&numWorkers, "workers", "w", 4, "Number of workers to use for hashing")

	return cmd
}

func runChecksum(cmd *cobra.Command, dir, algo string, recursive, saveToFile, cleanFiles bool, numWorkers int) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		cmd.PrintErrln("Error: The specified path does not exist or is not a directory.")
		return
	}

	if cleanFiles {
		if err := operations.CleanHashes(dir, recursive); err != nil {
			log.Error().Err(err).Msg("Failed to remove the checksum files.")
			cmd.PrintErrln("Error: Failed to remove the checksum files.")
			return
		}
		cmd.Println("Removed the generated checksum files.")
		return
	}

	if !hasher.IsValidHashAlgo(algo) {
		cmd.PrintErrln("Error: Invalid hash algorithm. Use one of: md5, sha1, sha256, sha512.")
		return
	}

	// Check the number of workers is valid
	if err := validation.ValidateWorkerCount(numWorkers); err != nil {
		cmd.PrintErrln("Error: Number of workers should be between 1 and 20.")
		return
	}

	files, err := operations.FindFilesToHash(dir, recursive, operations.DefaultHashExclusions)
	if err != nil {
		log.Error().Err(err).Msg("Failed to scan the directory for files to hash.")
		cmd.PrintErrln("Error: Failed to scan the directory. Please check the logs for details.")
		return
	}

	if len(files) == 0 {
		cmd.Println("No files found to generate checksums for.")
		return
	}

	results := operations.GenerateHashes(cmd.Context(), files, algo, numWorkers)
	failed := 0
	for result := range results {
		if result.Err != nil {
			log.Error().Err(result.Err).Msgf("Failed to hash %s", result.File)
			failed++
			continue
		}
		if saveToFile {
			hashFile := result.File + "." + algo
			if err := os.WriteFile(hashFile, []byte(result.Hash+"\n"), 0o644); err != nil {
				log.Error().Err(err).Msgf("Failed to write %s", hashFile)
				failed++
			}
			continue
		}
		cmd.Printf("%s  %s\n", result.Hash, result.File)
	}

	if failed > 0 {
		cmd.PrintErrln("Error: Some files could not be hashed. Please check the logs for details.")
		return
	}
	if saveToFile {
		cmd.Printf("Wrote checksum files for %d file(s).\n", len(files))
	}
}
