package builder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/zip"

	"github.com/Norgate-AV/hlpack/internal/modules"
)

// archiveFile is one entry of a bundle archive
type archiveFile struct {
	name string // Name inside the archive, slash separated
	src  string // Source file on disk
}

// Archive builds a zip archive of the core files, themes and modules in memory
func (b *Builder) Archive(names []string) ([]byte, error) {
	if err := b.VerifyPreconditions(); err != nil {
		return nil, err
	}

	files, err := b.archiveFiles(modules.Normalize(names))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range files {
		if err := addToArchive(zw, f); err != nil {
			zw.Close()
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	b.logger.Debug("archive assembled", "entries", len(files), "bytes", buf.Len())

	return buf.Bytes(), nil
}

// WriteArchive builds the archive and writes it to w.
// Nothing is written if the archive cannot be built.
func (b *Builder) WriteArchive(w io.Writer, names []string) error {
	data, err := b.Archive(names)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	return nil
}

// archiveFiles lists the archive entries and checks that each source exists
func (b *Builder) archiveFiles(names []string) ([]archiveFile, error) {
	core := b.CoreFilePath()
	minCore := b.MinifiedCoreFilePath()

	files := []archiveFile{
		{name: filepath.Base(core), src: core},
		{name: filepath.Base(minCore), src: minCore},
	}

	if b.themeDir != "" {
		themes, err := b.themeFiles()
		if err != nil {
			return nil, err
		}

		files = append(files, themes...)
	}

	for _, name := range names {
		if !modules.ValidName(name) {
			return nil, fmt.Errorf("%w: invalid module name %q", ErrFileNotFound, name)
		}

		files = append(files, archiveFile{
			name: path.Join(moduleDir, name+sourceExt),
			src:  b.PathForModule(name),
		})
	}

	for _, f := range files {
		info, err := os.Stat(f.src)
		if err != nil || !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, f.src)
		}
	}

	return files, nil
}

// themeFiles lists the .css files of the theme directory, sorted by name
func (b *Builder) themeFiles() ([]archiveFile, error) {
	entries, err := os.ReadDir(b.themeDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: theme directory %s", ErrFileNotFound, b.themeDir)
		}

		return nil, fmt.Errorf("failed to list themes: %w", err)
	}

	var themes []archiveFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != themeExt {
			continue
		}

		themes = append(themes, archiveFile{
			name: path.Join(themesDir, entry.Name()),
			src:  filepath.Join(b.themeDir, entry.Name()),
		})
	}

	return themes, nil
}

func addToArchive(zw *zip.Writer, f archiveFile) error {
	src, err := os.Open(f.src)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, f.src)
	}

	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", f.src, err)
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to create archive header for %s: %w", f.src, err)
	}

	hdr.Name = f.name
	hdr.Method = zip.Deflate

	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", f.name, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", f.name, err)
	}

	return nil
}
