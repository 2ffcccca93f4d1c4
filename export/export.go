// Package export writes portal export payloads to disk. The portal does not
// always deliver what the requested format promises, so the payload bytes are
// inspected and the file extension corrected before saving.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pb40development/bim-portal-sub001/client"
	"github.com/rs/zerolog/log"
)

// EnsureDir makes sure the export directory exists.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			log.Error().Msgf("Path %s exists but is not a directory", path)
			return fmt.Errorf("path %s exists but is not a directory", path)
		}
		return nil
	}
	if os.IsNotExist(err) {
		log.Info().Msgf("Creating export directory: %s", path)
		return os.MkdirAll(path, os.ModePerm)
	}
	log.Error().Err(err).Msgf("Error checking export directory %s", path)
	return err
}

// DetectExtension inspects the payload's magic bytes and returns the file
// extension that matches what the portal actually sent, falling back to the
// given default when nothing is recognized.
func DetectExtension(content []byte, fallback string) string {
	if len(content) < 4 {
		return fallback
	}

	if bytes.HasPrefix(content, []byte("%PDF")) {
		return "pdf"
	}

	if bytes.HasPrefix(content, []byte("PK")) {
		if isOpenDocument(content) {
			return "odt"
		}
		return "zip"
	}

	// IDS and LOIN-XML payloads are plain XML.
	head := strings.TrimSpace(string(content[:min(len(content), 100)]))
	if strings.HasPrefix(head, "<?xml") || strings.Contains(head, "<ids") || strings.Contains(head, "<loin") {
		return "xml"
	}

	return fallback
}

// isOpenDocument reports whether a zip payload is an OpenDocument file by
// checking for the manifest the format requires.
func isOpenDocument(content []byte) bool {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		log.Warn().Err(err).Msg("Payload has a zip signature but cannot be opened as zip")
		return false
	}

	var hasContent bool
	var manifest *zip.File
	for _, f := range reader.File {
		switch f.Name {
		case "content.xml":
			hasContent = true
		case "META-INF/manifest.xml":
			manifest = f
		}
	}
	if !hasContent || manifest == nil {
		return false
	}

	rc, err := manifest.Open()
	if err != nil {
		return false
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return false
	}
	return bytes.Contains(data, []byte("application/vnd.oasis.opendocument"))
}

// Filename builds the canonical export filename for a resource: the resource
// kind, the requested format and the GUID, joined by underscores.
func Filename(kind string, guid uuid.UUID, format client.ExportFormat) string {
	return fmt.Sprintf("%s_%s_%s.%s", kind, format, guid, format.Extension())
}

// Save writes the payload into dir under the given filename and returns the
// full path.
func Save(dir, filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("refusing to save empty payload as %s", filename)
	}
	if err := EnsureDir(dir); err != nil {
		return "", err
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		log.Error().Err(err).Msgf("Failed to write export file %s", path)
		return "", fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	log.Info().Msgf("Exported file: %s (%d bytes)", path, len(content))
	return path, nil
}

// SaveDetected saves an export payload under the canonical filename, with
// the extension corrected to match the payload's actual content.
func SaveDetected(dir, kind string, guid uuid.UUID, format client.ExportFormat, content []byte) (string, error) {
	expected := format.Extension()
	detected := DetectExtension(content, expected)
	if detected != expected {
		log.Info().Msgf("Expected %s content for %s but payload looks like %s; saving as .%s",
			expected, guid, detected, detected)
	}
	filename := fmt.Sprintf("%s_%s_%s.%s", kind, format, guid, detected)
	return Save(dir, filename, content)
}

// CleanupOlderThan deletes export files whose modification time is older
// than maxAge and returns how many were removed.
func CleanupOlderThan(dir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read export directory %s: %w", dir, err)
	}

	cutoff := time.Now().Add(-maxAge)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				log.Warn().Err(err).Msgf("Could not delete old export %s", entry.Name())
				continue
			}
			deleted++
			log.Debug().Msgf("Deleted old export file: %s", entry.Name())
		}
	}
	log.Info().Msgf("Cleaned up %d old export files", deleted)
	return deleted, nil
}
