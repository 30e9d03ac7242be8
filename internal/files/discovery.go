package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNoSurveyFiles is returned when a directory holds no survey export
var ErrNoSurveyFiles = errors.New("no .csv or .xlsx files found")

// surveyExtensions are the upload formats the loader understands
var surveyExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// IsSurveyFile reports whether name has a supported survey extension
func IsSurveyFile(name string) bool {
	return surveyExtensions[strings.ToLower(filepath.Ext(name))]
}

// FindSurveyFiles lists the survey exports directly inside dir, oldest first.
// Hidden files and Excel lock files (~$name.xlsx) are skipped.
func FindSurveyFiles(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !IsSurveyFile(name) ||
			strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.Before(files[j].ModTime)
	})

	return files, nil
}

// LatestSurveyFile returns the most recently modified survey export in dir
func LatestSurveyFile(dir string) (FileInfo, error) {
	files, err := FindSurveyFiles(dir)
	if err != nil {
		return FileInfo{}, err
	}
	latest, ok := GetLatestFile(files)
	if !ok {
		return FileInfo{}, fmt.Errorf("%w in %s", ErrNoSurveyFiles, dir)
	}
	return latest, nil
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if !file.ModTime.Before(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}
