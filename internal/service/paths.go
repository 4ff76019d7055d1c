package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"videoflow/internal/appdirs"
)

var appDirsResolver = appdirs.Resolve

func resolveProjectRoot() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return appdirs.ProjectRootFor(dirs), nil
}

func resolveProjectDir(projectID string) (string, error) {
	if strings.TrimSpace(projectID) == "" {
		return "", fmt.Errorf("project id is empty")
	}

	projectRoot, err := resolveProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(projectRoot, projectID), nil
}

func resolveSceneAudioPath(projectID, sceneID string) (string, error) {
	if strings.TrimSpace(sceneID) == "" {
		return "", fmt.Errorf("scene id is empty")
	}

	projectDir, err := resolveProjectDir(projectID)
	if err != nil {
		return "", err
	}
	return filepath.Join(projectDir, fmt.Sprintf("%s.wav", sceneID)), nil
}

// resolveProjectDownloadPath maps an artifact's local path into the
// stable URL-path form the file handler serves, rejecting anything
// that escapes the project root.
func resolveProjectDownloadPath(localPath string) (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}

	projectRoot := appdirs.ProjectRootFor(dirs)
	cleanedLocalPath := filepath.Clean(localPath)
	relPath, err := filepath.Rel(projectRoot, cleanedLocalPath)
	if err != nil {
		return "", err
	}
	if relPath == "." || relPath == "" {
		return "", fmt.Errorf("project artifact path %q is not a file path", localPath)
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("project artifact path %q is outside project root %q", localPath, projectRoot)
	}
	return filepath.ToSlash(filepath.Join(appdirs.ProjectRootName, relPath)), nil
}
