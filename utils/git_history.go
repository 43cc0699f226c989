package utils

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/AstroAir/diffani-sub002/models"
	"github.com/AstroAir/diffani-sub002/tokenizer"
)

// GitOperations reads file history from a git repository
type GitOperations struct {
	workingDir string
}

// NewGitOperations creates a new GitOperations instance
func NewGitOperations(workingDir string) *GitOperations {
	return &GitOperations{workingDir: workingDir}
}

// CheckGitRepo checks if the working directory is a git repository
func (g *GitOperations) CheckGitRepo() error {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = g.workingDir
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("not a git repository")
	}
	return nil
}

// GetFileRevisions returns the commits that touched path, oldest first.
// A positive limit keeps only the most recent revisions.
func (g *GitOperations) GetFileRevisions(path string, limit int) ([]string, error) {
	args := []string{"log", "--follow", "--pretty=format:%h"}
	if limit > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", limit))
	}
	args = append(args, "--", path)

	cmd := exec.Command("git", args...)
	cmd.Dir = g.workingDir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get history of %s: %w", path, err)
	}

	var revisions []string
	for _, line := range strings.Split(string(output), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			revisions = append(revisions, line)
		}
	}
	for i, j := 0, len(revisions)-1; i < j; i, j = i+1, j-1 {
		revisions[i], revisions[j] = revisions[j], revisions[i]
	}
	return revisions, nil
}

// GetFileAt returns the content of path at a revision. path is relative to
// the working directory.
func (g *GitOperations) GetFileAt(revision, path string) (string, error) {
	cmd := exec.Command("git", "show", fmt.Sprintf("%s:./%s", revision, filepath.ToSlash(path)))
	cmd.Dir = g.workingDir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to read %s at %s: %w", path, revision, err)
	}
	return string(output), nil
}

// RawDocFromHistory builds a document whose snapshots are the revisions of
// path. path is relative to the working directory.
func (g *GitOperations) RawDocFromHistory(path string, limit int) (*models.RawDoc, error) {
	if err := g.CheckGitRepo(); err != nil {
		return nil, err
	}
	revisions, err := g.GetFileRevisions(path, limit)
	if err != nil {
		return nil, err
	}
	if len(revisions) == 0 {
		return nil, fmt.Errorf("no commits touch %s", path)
	}

	raw := DefaultRawDoc
	raw.Language = string(tokenizer.LanguageForFile(path))
	for _, rev := range revisions {
		code, err := g.GetFileAt(rev, path)
		if err != nil {
			return nil, err
		}
		raw.Snapshots = append(raw.Snapshots, NewRawSnapshot(rev, code))
	}
	return &raw, nil
}
