package export

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pb40development/bim-portal-sub001/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildODT assembles a minimal OpenDocument payload: a zip holding a
// content.xml and the manifest that names the opendocument media type.
func buildODT(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	content, err := w.Create("content.xml")
	require.NoError(t, err)
	_, err = content.Write([]byte(`<?xml version="1.0"?><office:document-content/>`))
	require.NoError(t, err)

	manifest, err := w.Create("META-INF/manifest.xml")
	require.NoError(t, err)
	_, err = manifest.Write([]byte(`<manifest:manifest manifest:media-type="application/vnd.oasis.opendocument.text"/>`))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func buildPlainZip(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("data/okstra_export.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<okstra/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDetectExtension(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		fallback string
		want     string
	}{
		{"pdf signature", []byte("%PDF-1.7 rest of file"), "bin", "pdf"},
		{"xml declaration", []byte(`<?xml version="1.0" encoding="UTF-8"?><root/>`), "bin", "xml"},
		{"ids document", []byte(`  <ids xmlns="http://standards.buildingsmart.org/IDS">`), "bin", "xml"},
		{"loin document", []byte(`<loin><specification/></loin>`), "bin", "xml"},
		{"unknown content", []byte{0x00, 0x01, 0x02, 0x03, 0x04}, "bin", "bin"},
		{"too short", []byte("ab"), "pdf", "pdf"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectExtension(tc.content, tc.fallback))
		})
	}
}

func TestDetectExtension_ZipVariants(t *testing.T) {
	assert.Equal(t, "odt", DetectExtension(buildODT(t), "bin"), "an OpenDocument zip should be detected as odt")
	assert.Equal(t, "zip", DetectExtension(buildPlainZip(t), "bin"), "a non-ODT zip stays a zip")
	assert.Equal(t, "zip", DetectExtension([]byte("PK\x03\x04 corrupted beyond repair"), "bin"),
		"a broken zip still carries the zip signature")
}

func TestFilename(t *testing.T) {
	guid := uuid.MustParse("4559818c-faea-4bb7-bbdd-e6470df8261b")

	assert.Equal(t,
		"project_pdf_4559818c-faea-4bb7-bbdd-e6470df8261b.pdf",
		Filename("project", guid, client.FormatPDF))
	assert.Equal(t,
		"loin_loinXML_4559818c-faea-4bb7-bbdd-e6470df8261b.zip",
		Filename("loin", guid, client.FormatLoinXML))
}

// Exported bytes must survive the disk round trip untouched.
func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("%PDF-1.7\nbinary\x00payload\xff\xfe")

	path, err := Save(dir, "project_pdf_test.pdf", payload)
	require.NoError(t, err)

	read, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, read)
}

func TestSave_RejectsEmptyPayload(t *testing.T) {
	_, err := Save(t.TempDir(), "empty.pdf", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty payload")
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports", "nested")

	path, err := Save(dir, "file.pdf", []byte("%PDF-1.7"))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestSaveDetected_CorrectsExtension(t *testing.T) {
	dir := t.TempDir()
	guid := uuid.New()

	// The portal was asked for PDF but answered with an ODT payload.
	path, err := SaveDetected(dir, "project", guid, client.FormatPDF, buildODT(t))
	require.NoError(t, err)
	assert.True(t, len(path) > 4 && path[len(path)-4:] == ".odt",
		"expected the detected odt extension, got %s", path)
}

func TestCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()

	oldFile := filepath.Join(dir, "old_export.pdf")
	require.NoError(t, os.WriteFile(oldFile, []byte("%PDF"), 0o644))
	oldTime := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldFile, oldTime, oldTime))

	newFile := filepath.Join(dir, "fresh_export.pdf")
	require.NoError(t, os.WriteFile(newFile, []byte("%PDF"), 0o644))

	deleted, err := CleanupOlderThan(dir, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, newFile)
}

func TestCleanupOlderThan_MissingDirectory(t *testing.T) {
	deleted, err := CleanupOlderThan(filepath.Join(t.TempDir(), "does-not-exist"), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
