package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaneholloman/fetch-skill/pkg/agents"
	"github.com/shaneholloman/fetch-skill/pkg/installer"
	"github.com/shaneholloman/fetch-skill/pkg/presenter"
)

type PathConfig struct {
	Agent  string
	Global bool
}

func NewPathConfig() *PathConfig {
	return &PathConfig{
		Agent: string(agents.Claude),
	}
}

var pathCmd = &cobra.Command{
	Use:   "path <skill-name>",
	Short: "Print the install path for a skill",
	Long: `Print the directory a skill would be installed to for an agent, and
whether it is currently installed there.

Examples:
  fetch-skill path my-skill
  fetch-skill path my-skill --agent cursor -g`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getPathConfigFromFlags(cmd)
		showInstallPath(cmd, args[0], config)
	},
}

func init() {
	defaults := NewPathConfig()
	pathCmd.Flags().StringP("agent", "a", defaults.Agent, "Agent to compute the install path for")
	pathCmd.Flags().BoolP("global", "g", defaults.Global, "Use the agent's global skills directory instead of the project-local one")
}

func getPathConfigFromFlags(cmd *cobra.Command) *PathConfig {
	config := NewPathConfig()
	if agent, err := cmd.Flags().GetString("agent"); err == nil {
		config.Agent = agent
	}
	if global, err := cmd.Flags().GetBool("global"); err == nil {
		config.Global = global
	}
	return config
}

func showInstallPath(cmd *cobra.Command, skillName string, config *PathConfig) {
	ctx := cmd.Context()

	registry, err := agents.NewRegistry()
	if err != nil {
		presenter.Error(err, "Failed to load agent registry")
		os.Exit(1)
	}

	inst := installer.New(registry)
	opts := installer.Options{Global: config.Global}

	path, err := inst.GetInstallPath(skillName, agents.Type(config.Agent), opts)
	if err != nil {
		presenter.Error(err, "Failed to compute install path")
		os.Exit(1)
	}

	fmt.Println(path)

	if inst.IsSkillInstalled(ctx, skillName, agents.Type(config.Agent), opts) {
		presenter.Success("Installed")
	} else {
		presenter.Info("Not installed")
	}
}
