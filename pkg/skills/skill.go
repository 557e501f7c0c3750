// Package skills discovers skills installed in an agent's skills
// directories. A skill is a directory bundle that may carry a SKILL.md
// file with YAML frontmatter describing it; bundles without one are still
// listed under their directory name.
package skills

// Skill represents an installed skill
type Skill struct {
	Name        string // From frontmatter, or the directory name
	Description string // Brief description from frontmatter, may be empty
	Directory   string // Full path to the skill directory
}

// Metadata represents the YAML frontmatter in SKILL.md files
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}
