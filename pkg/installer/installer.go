// Package installer installs skill bundles (directories of files) into
// agent-specific skills directories. Untrusted skill names go through two
// independent defense layers: SanitizeName reduces the name to a safe path
// segment, and IsPathSafe re-validates the composed target path against the
// base directory before anything touches the filesystem.
package installer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/shaneholloman/fetch-skill/pkg/agents"
	"github.com/shaneholloman/fetch-skill/pkg/logger"
)

// ErrPathTraversal is returned by GetInstallPath when the composed install
// path would escape the agent's skills directory. InstallSkillForAgent
// reports the same condition through the Result error field.
var ErrPathTraversal = errors.New("Invalid skill name: potential path traversal detected")

// Skill is a directory bundle to install. Name is optional; when empty the
// final segment of Path is used instead.
type Skill struct {
	Name string
	Path string
}

// Options control where a skill is installed. Global selects the agent's
// global skills directory; Cwd overrides the working directory used to
// resolve the project-local skills directory and defaults to the process
// working directory.
type Options struct {
	Global bool
	Cwd    string
}

// Result is the outcome of an install operation. Install never fails with
// an error value; every failure is captured in the Error field.
type Result struct {
	Success bool
	Path    string
	Error   string
}

// Installer installs skills for agents known to its registry
type Installer struct {
	registry *agents.Registry
}

// New creates an Installer backed by the given agent registry
func New(registry *agents.Registry) *Installer {
	return &Installer{registry: registry}
}

// resolvePaths computes the base skills directory for the agent and the
// target directory for the sanitized skill name.
func (i *Installer) resolvePaths(name string, agentType agents.Type, opts Options) (string, string, error) {
	desc, err := i.registry.Get(agentType)
	if err != nil {
		return "", "", err
	}

	var base string
	if opts.Global {
		base = desc.GlobalSkillsDir
	} else {
		cwd := opts.Cwd
		if cwd == "" {
			cwd, err = os.Getwd()
			if err != nil {
				return "", "", errors.Wrap(err, "failed to get working directory")
			}
		}
		base = filepath.Join(cwd, desc.SkillsDir)
	}

	return base, filepath.Join(base, SanitizeName(name)), nil
}

// InstallSkillForAgent installs the skill into the agent's skills
// directory. The target path is validated before any filesystem write.
// Failures never surface as an error value; they are reported in the
// Result so callers can always rely on getting a value back.
func (i *Installer) InstallSkillForAgent(ctx context.Context, skill Skill, agentType agents.Type, opts Options) Result {
	name := skill.Name
	if name == "" {
		name = filepath.Base(skill.Path)
	}

	base, targetDir, err := i.resolvePaths(name, agentType, opts)
	if err != nil {
		return Result{Path: targetDir, Error: err.Error()}
	}

	if !IsPathSafe(base, targetDir) {
		return Result{Path: targetDir, Error: ErrPathTraversal.Error()}
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return Result{Path: targetDir, Error: errors.Wrap(err, "failed to create skill directory").Error()}
	}

	if err := copySkillDir(ctx, skill.Path, targetDir); err != nil {
		return Result{Path: targetDir, Error: err.Error()}
	}

	logger.G(ctx).WithField("skill", SanitizeName(name)).WithField("path", targetDir).Debug("Installed skill")
	return Result{Success: true, Path: targetDir}
}

// IsSkillInstalled reports whether a skill with the given name is present
// in the agent's skills directory. Every failure, including I/O errors
// unrelated to traversal, collapses to false; the answer is a hint, not a
// locking primitive.
func (i *Installer) IsSkillInstalled(ctx context.Context, skillName string, agentType agents.Type, opts Options) bool {
	base, targetDir, err := i.resolvePaths(skillName, agentType, opts)
	if err != nil {
		logger.G(ctx).WithError(err).Debug("Failed to resolve skill path")
		return false
	}

	if !IsPathSafe(base, targetDir) {
		return false
	}

	if _, err := os.Stat(targetDir); err != nil {
		return false
	}
	return true
}

// GetInstallPath returns the directory the skill would be installed to
// without touching the filesystem. It returns ErrPathTraversal when the
// composed path fails validation; this is the one operation whose failure
// callers must handle as an error.
func (i *Installer) GetInstallPath(skillName string, agentType agents.Type, opts Options) (string, error) {
	base, targetDir, err := i.resolvePaths(skillName, agentType, opts)
	if err != nil {
		return "", err
	}

	if !IsPathSafe(base, targetDir) {
		return "", ErrPathTraversal
	}

	return targetDir, nil
}

// excluded reports whether a directory entry is skipped during copy.
// README.md and metadata.json describe the bundle rather than belong to
// it, and underscore-prefixed entries are reserved for templates.
func excluded(name string) bool {
	if name == "README.md" || name == "metadata.json" {
		return true
	}
	return strings.HasPrefix(name, "_")
}

// copySkillDir copies the skill tree from src into dst, applying the
// exclusion rules at every depth. Non-regular entries (symlinks, sockets)
// are skipped with a warning.
func copySkillDir(ctx context.Context, src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "failed to read skill directory %s", src)
	}

	for _, entry := range entries {
		if excluded(entry.Name()) {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := os.MkdirAll(dstPath, 0o755); err != nil {
				return errors.Wrapf(err, "failed to create directory %s", dstPath)
			}
			if err := copySkillDir(ctx, srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return errors.Wrapf(err, "failed to copy %s", entry.Name())
			}
		default:
			logger.G(ctx).WithField("path", srcPath).Warn("Skipping non-regular entry in skill bundle")
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
