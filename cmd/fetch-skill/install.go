package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/shaneholloman/fetch-skill/pkg/agents"
	"github.com/shaneholloman/fetch-skill/pkg/installer"
	"github.com/shaneholloman/fetch-skill/pkg/presenter"
)

type InstallConfig struct {
	Agents []string
	Global bool
	Name   string
}

func NewInstallConfig() *InstallConfig {
	return &InstallConfig{
		Agents: []string{string(agents.Claude)},
	}
}

var installCmd = &cobra.Command{
	Use:   "install <skill-dir>",
	Short: "Install a skill directory for one or more agents",
	Long: `Install a skill bundle (a directory of files) into the skills directory
of one or more agents. README.md, metadata.json, and underscore-prefixed
entries are not copied.

Examples:
  fetch-skill install ./my-skill
  fetch-skill install ./my-skill --agent claude --agent codex
  fetch-skill install ./my-skill --name better-name -g`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getInstallConfigFromFlags(cmd)
		installSkill(cmd, args[0], config)
	},
}

func init() {
	defaults := NewInstallConfig()
	installCmd.Flags().StringSliceP("agent", "a", defaults.Agents, "Agent(s) to install the skill for")
	installCmd.Flags().BoolP("global", "g", defaults.Global, "Install to the agent's global skills directory instead of the project-local one")
	installCmd.Flags().StringP("name", "n", defaults.Name, "Override the skill name (defaults to the source directory name)")
}

func getInstallConfigFromFlags(cmd *cobra.Command) *InstallConfig {
	config := NewInstallConfig()
	if agentTypes, err := cmd.Flags().GetStringSlice("agent"); err == nil {
		config.Agents = agentTypes
	}
	if global, err := cmd.Flags().GetBool("global"); err == nil {
		config.Global = global
	}
	if name, err := cmd.Flags().GetString("name"); err == nil {
		config.Name = name
	}
	return config
}

func installSkill(cmd *cobra.Command, srcDir string, config *InstallConfig) {
	ctx := cmd.Context()

	info, err := os.Stat(srcDir)
	if err != nil {
		presenter.Error(err, "Failed to read skill source")
		os.Exit(1)
	}
	if !info.IsDir() {
		presenter.Error(errors.Errorf("%s is not a directory", srcDir), "Invalid skill source")
		os.Exit(1)
	}

	registry, err := agents.NewRegistry()
	if err != nil {
		presenter.Error(err, "Failed to load agent registry")
		os.Exit(1)
	}

	inst := installer.New(registry)
	skill := installer.Skill{Name: config.Name, Path: srcDir}
	opts := installer.Options{Global: config.Global}

	var errs *multierror.Error
	for _, agent := range config.Agents {
		result := inst.InstallSkillForAgent(ctx, skill, agents.Type(agent), opts)
		if !result.Success {
			errs = multierror.Append(errs, errors.Errorf("%s: %s", agent, result.Error))
			continue
		}
		presenter.Success(fmt.Sprintf("Installed skill for %s at %s", agent, result.Path))
	}

	if err := errs.ErrorOrNil(); err != nil {
		presenter.Error(err, "Failed to install skill")
		os.Exit(1)
	}
}
