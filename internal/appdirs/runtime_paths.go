package appdirs

import (
	"path/filepath"
	"strings"
)

const (
	ProjectRootName = "projects"
	UploadRootName  = "uploads"
	dbFileName      = "videoflow.db"
)

func ProjectRootFor(paths Paths) string {
	return filepath.Join(normalizeOutputDir(paths.OutputDir), ProjectRootName)
}

func ProjectDirFor(paths Paths, projectID string) string {
	return filepath.Join(ProjectRootFor(paths), projectID)
}

func UploadRootFor(paths Paths) string {
	return filepath.Join(normalizeOutputDir(paths.OutputDir), UploadRootName)
}

func DBPathFor(paths Paths) string {
	return filepath.Join(normalizeCacheDir(paths.CacheDir), dbFileName)
}

func ResolveProjectRoot() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return ProjectRootFor(paths), nil
}

func ResolveProjectDir(projectID string) (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return ProjectDirFor(paths, projectID), nil
}

func ResolveUploadRoot() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return UploadRootFor(paths), nil
}

func ResolveDBPath() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return DBPathFor(paths), nil
}

func normalizeOutputDir(outputDir string) string {
	cleaned := strings.TrimSpace(outputDir)
	if cleaned == "" {
		return "."
	}
	return filepath.Clean(cleaned)
}

func normalizeCacheDir(cacheDir string) string {
	cleaned := strings.TrimSpace(cacheDir)
	if cleaned == "" {
		return "cache"
	}
	return filepath.Clean(cleaned)
}
