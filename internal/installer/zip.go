package installer

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// extractZip extracts every entry of the archive at zipPath into destDir.
//
// If every entry shares one top-level directory, that prefix is stripped
// from extracted paths unless it ends in ".app" (a macOS bundle, which
// must keep its own name). Any entry whose stripped path would escape
// destDir is rejected.
func extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", zipPath, err)
	}
	defer r.Close()

	prefix := commonTopLevelDir(r.File)

	for _, f := range r.File {
		if err := extractEntry(f, destDir, prefix); err != nil {
			return err
		}
	}
	return nil
}

// commonTopLevelDir returns the archive's sole top-level directory, if
// every entry lives under exactly one, and it doesn't end in ".app".
func commonTopLevelDir(files []*zip.File) string {
	tops := map[string]bool{}
	topDirs := map[string]bool{}

	for _, f := range files {
		name := strings.Trim(f.Name, "/")
		if name == "" {
			continue
		}
		first, _, _ := strings.Cut(name, "/")
		tops[first] = true
		if strings.Contains(name, "/") || f.FileInfo().IsDir() {
			topDirs[first] = true
		}
	}

	if len(tops) == 1 && len(topDirs) == 1 {
		for dir := range topDirs {
			if strings.HasSuffix(dir, ".app") {
				return ""
			}
			return dir
		}
	}
	return ""
}

func extractEntry(f *zip.File, destDir, prefix string) error {
	name := path.Clean(f.Name)
	if name == "." || name == "" {
		return nil
	}

	rel := name
	if prefix != "" {
		var ok bool
		rel, ok = strings.CutPrefix(name, prefix+"/")
		if !ok {
			if name == prefix {
				return nil
			}
			return fmt.Errorf("entry %q does not share archive's common prefix %q", f.Name, prefix)
		}
	}

	if rel == "" || rel == "." {
		return nil
	}
	for _, part := range strings.Split(rel, "/") {
		if part == ".." {
			return fmt.Errorf("archive entry %q attempts to escape extraction directory", f.Name)
		}
	}

	outPath := filepath.Join(destDir, filepath.FromSlash(rel))

	if f.FileInfo().IsDir() {
		return os.MkdirAll(outPath, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", f.Name, err)
	}
	defer src.Close()

	mode := f.Mode()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("extract %s: %w", outPath, err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(outPath, mode.Perm()); err != nil {
			return fmt.Errorf("set permissions on %s: %w", outPath, err)
		}
	}
	return nil
}
