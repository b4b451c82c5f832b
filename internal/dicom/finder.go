package dicom

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DicomExtensions are common DICOM file extensions
var DicomExtensions = map[string]bool{
	".dcm":   true,
	".dicom": true,
	".ima":   true,
}

// ExcludedNames are filenames that are never DICOM instances
var ExcludedNames = map[string]bool{
	"DICOMDIR":    true,
	".DS_Store":   true,
	"Thumbs.db":   true,
	"desktop.ini": true,
}

// ExcludedDirs are directory names to skip entirely
var ExcludedDirs = map[string]bool{
	".git":        true,
	"__pycache__": true,
	".venv":       true,
	".idea":       true,
	".vscode":     true,
}

// FindDicomFiles finds all DICOM files under root. Files with a known DICOM
// extension are accepted as is; anything else must carry the "DICM" preamble
// marker. Paths under exclude (typically the destination tree) are skipped.
func FindDicomFiles(root string, recursive bool, exclude string) ([]string, error) {
	var files []string

	if exclude != "" {
		if abs, err := filepath.Abs(exclude); err == nil {
			exclude = abs
		}
	}

	walkFn := func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files we can't access
		}

		if entry.IsDir() {
			if ExcludedDirs[entry.Name()] || isUnder(path, exclude) {
				return filepath.SkipDir
			}
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if ExcludedNames[entry.Name()] || strings.HasSuffix(entry.Name(), ".tmp") {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if DicomExtensions[ext] || HasDicomMagicBytes(path) {
			files = append(files, path)
		}

		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ExpandInputs turns a mix of file and directory arguments into a flat,
// de-duplicated list of DICOM file paths. Plain files are passed through
// unchecked so that unreadable inputs surface as per-file failures.
func ExpandInputs(inputs []string, recursive bool, exclude string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil || !info.IsDir() {
			if !seen[in] {
				seen[in] = true
				out = append(out, in)
			}
			continue
		}

		found, err := FindDicomFiles(in, recursive, exclude)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}

	return out, nil
}

// HasDicomMagicBytes checks if a file has the DICOM magic bytes ("DICM" at offset 128)
func HasDicomMagicBytes(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	header := make([]byte, 132)
	if _, err := io.ReadFull(file, header); err != nil {
		return false
	}

	return string(header[128:132]) == "DICM"
}

func isUnder(path, dir string) bool {
	if dir == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
