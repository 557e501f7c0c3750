// Package agents maps coding-agent identifiers to the directories where
// each agent expects installed skills to live. The registry is preloaded
// with well-known agents and can be extended through configuration.
package agents

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Type identifies a supported coding agent.
type Type string

// Builtin agent types
const (
	Claude   Type = "claude"
	Codex    Type = "codex"
	Copilot  Type = "copilot"
	Cursor   Type = "cursor"
	Gemini   Type = "gemini"
	OpenCode Type = "opencode"
)

// Descriptor describes where an agent keeps its skills. SkillsDir is
// relative to the project root; GlobalSkillsDir is an absolute path under
// the user's home directory.
type Descriptor struct {
	Name            string
	SkillsDir       string
	GlobalSkillsDir string
}

// Registry resolves agent types to their skill directory descriptors
type Registry struct {
	agents map[Type]Descriptor
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithAgent registers (or overrides) a descriptor for the given agent type
func WithAgent(agentType Type, desc Descriptor) RegistryOption {
	return func(r *Registry) {
		r.agents[agentType] = desc
	}
}

// customAgent is the configuration shape for user-defined agents declared
// under the "agents" config key.
type customAgent struct {
	Name            string `mapstructure:"name"`
	SkillsDir       string `mapstructure:"skills_dir"`
	GlobalSkillsDir string `mapstructure:"global_skills_dir"`
}

// NewRegistry creates a registry preloaded with the builtin agents plus any
// custom agents declared in configuration.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user home directory")
	}

	r := &Registry{agents: builtinAgents(homeDir)}

	if err := r.loadCustomAgents(homeDir); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func builtinAgents(homeDir string) map[Type]Descriptor {
	return map[Type]Descriptor{
		Claude: {
			Name:            "Claude Code",
			SkillsDir:       filepath.Join(".claude", "skills"),
			GlobalSkillsDir: filepath.Join(homeDir, ".claude", "skills"),
		},
		Codex: {
			Name:            "Codex CLI",
			SkillsDir:       filepath.Join(".codex", "skills"),
			GlobalSkillsDir: filepath.Join(homeDir, ".codex", "skills"),
		},
		Copilot: {
			Name:            "GitHub Copilot",
			SkillsDir:       filepath.Join(".github", "skills"),
			GlobalSkillsDir: filepath.Join(homeDir, ".copilot", "skills"),
		},
		Cursor: {
			Name:            "Cursor",
			SkillsDir:       filepath.Join(".cursor", "skills"),
			GlobalSkillsDir: filepath.Join(homeDir, ".cursor", "skills"),
		},
		Gemini: {
			Name:            "Gemini CLI",
			SkillsDir:       filepath.Join(".gemini", "skills"),
			GlobalSkillsDir: filepath.Join(homeDir, ".gemini", "skills"),
		},
		OpenCode: {
			Name:            "OpenCode",
			SkillsDir:       filepath.Join(".opencode", "skills"),
			GlobalSkillsDir: filepath.Join(homeDir, ".config", "opencode", "skills"),
		},
	}
}

// loadCustomAgents merges agents declared under the "agents" config key.
// A relative global_skills_dir is resolved against the home directory.
func (r *Registry) loadCustomAgents(homeDir string) error {
	if !viper.IsSet("agents") {
		return nil
	}

	custom := map[string]customAgent{}
	if err := viper.UnmarshalKey("agents", &custom); err != nil {
		return errors.Wrap(err, "failed to parse custom agents configuration")
	}

	for name, agent := range custom {
		if agent.SkillsDir == "" || agent.GlobalSkillsDir == "" {
			return errors.Errorf("custom agent %q must set both skills_dir and global_skills_dir", name)
		}

		globalDir := agent.GlobalSkillsDir
		if !filepath.IsAbs(globalDir) {
			globalDir = filepath.Join(homeDir, globalDir)
		}

		displayName := agent.Name
		if displayName == "" {
			displayName = name
		}

		r.agents[Type(name)] = Descriptor{
			Name:            displayName,
			SkillsDir:       agent.SkillsDir,
			GlobalSkillsDir: globalDir,
		}
	}

	return nil
}

// Get returns the descriptor for the given agent type
func (r *Registry) Get(agentType Type) (Descriptor, error) {
	desc, ok := r.agents[agentType]
	if !ok {
		return Descriptor{}, errors.Errorf("unknown agent type %q", agentType)
	}
	return desc, nil
}

// Types returns all registered agent types in sorted order
func (r *Registry) Types() []Type {
	types := make([]Type, 0, len(r.agents))
	for t := range r.agents {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
