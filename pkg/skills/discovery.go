package skills

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/shaneholloman/fetch-skill/pkg/agents"
	"github.com/shaneholloman/fetch-skill/pkg/installer"
)

const skillFileName = "SKILL.md"

// Discovery handles skill discovery from configured directories
type Discovery struct {
	skillDirs []string
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithSkillDirs sets custom skill directories
func WithSkillDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		if len(dirs) == 0 {
			return errors.New("at least one skill directory must be specified")
		}
		d.skillDirs = dirs
		return nil
	}
}

// ForAgent configures discovery over the agent's skills directory selected
// by opts: the global directory when opts.Global is set, otherwise the
// project-local directory resolved against opts.Cwd (or the working
// directory).
func ForAgent(registry *agents.Registry, agentType agents.Type, opts installer.Options) Option {
	return func(d *Discovery) error {
		desc, err := registry.Get(agentType)
		if err != nil {
			return err
		}

		if opts.Global {
			d.skillDirs = []string{desc.GlobalSkillsDir}
			return nil
		}

		cwd := opts.Cwd
		if cwd == "" {
			cwd, err = os.Getwd()
			if err != nil {
				return errors.Wrap(err, "failed to get working directory")
			}
		}
		d.skillDirs = []string{filepath.Join(cwd, desc.SkillsDir)}
		return nil
	}
}

// NewDiscovery creates a new skill discovery instance
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	if len(d.skillDirs) == 0 {
		return nil, errors.New("no skill directories configured")
	}

	return d, nil
}

// DiscoverSkills finds all installed skills from the configured
// directories. Earlier directories take precedence over later ones when
// names collide.
func (d *Discovery) DiscoverSkills() map[string]*Skill {
	skills := make(map[string]*Skill)

	for _, dir := range d.skillDirs {
		d.discoverSkillsFromDir(dir, skills)
	}

	return skills
}

func (d *Discovery) discoverSkillsFromDir(dir string, skills map[string]*Skill) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		entryPath := filepath.Join(dir, entry.Name())
		skill := d.loadSkill(entryPath)

		if _, exists := skills[skill.Name]; !exists {
			skills[skill.Name] = skill
		}
	}
}

// ListSkillNames returns the names of all installed skills
func (d *Discovery) ListSkillNames() []string {
	skills := d.DiscoverSkills()

	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}

	return names
}

// loadSkill loads a skill from its directory. When SKILL.md is missing or
// unparseable the directory name alone identifies the skill.
func (d *Discovery) loadSkill(dir string) *Skill {
	skill := &Skill{
		Name:      filepath.Base(dir),
		Directory: dir,
	}

	metadata, err := parseSkillFile(filepath.Join(dir, skillFileName))
	if err != nil {
		return skill
	}

	if metadata.Name != "" {
		skill.Name = metadata.Name
	}
	skill.Description = metadata.Description

	return skill
}

// parseSkillFile extracts the YAML frontmatter from a SKILL.md file
func parseSkillFile(path string) (Metadata, error) {
	var metadata Metadata

	content, err := os.ReadFile(path)
	if err != nil {
		return metadata, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return metadata, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return metadata, errors.New("missing frontmatter")
	}

	metadata.Name, _ = metaData["name"].(string)
	metadata.Description, _ = metaData["description"].(string)

	return metadata, nil
}
