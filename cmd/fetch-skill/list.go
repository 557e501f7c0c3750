package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shaneholloman/fetch-skill/pkg/agents"
	"github.com/shaneholloman/fetch-skill/pkg/installer"
	"github.com/shaneholloman/fetch-skill/pkg/presenter"
	"github.com/shaneholloman/fetch-skill/pkg/skills"
)

type ListConfig struct {
	Agent  string
	Global bool
}

func NewListConfig() *ListConfig {
	return &ListConfig{
		Agent: string(agents.Claude),
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed skills for an agent",
	Long: `List the skills installed in an agent's skills directory with their
names, descriptions, and directory paths.

Examples:
  fetch-skill list
  fetch-skill list --agent codex -g`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getListConfigFromFlags(cmd)
		listSkills(config)
	},
}

func init() {
	defaults := NewListConfig()
	listCmd.Flags().StringP("agent", "a", defaults.Agent, "Agent to list skills for")
	listCmd.Flags().BoolP("global", "g", defaults.Global, "List the agent's global skills directory instead of the project-local one")
}

func getListConfigFromFlags(cmd *cobra.Command) *ListConfig {
	config := NewListConfig()
	if agent, err := cmd.Flags().GetString("agent"); err == nil {
		config.Agent = agent
	}
	if global, err := cmd.Flags().GetBool("global"); err == nil {
		config.Global = global
	}
	return config
}

func listSkills(config *ListConfig) {
	registry, err := agents.NewRegistry()
	if err != nil {
		presenter.Error(err, "Failed to load agent registry")
		os.Exit(1)
	}

	discovery, err := skills.NewDiscovery(
		skills.ForAgent(registry, agents.Type(config.Agent), installer.Options{Global: config.Global}),
	)
	if err != nil {
		presenter.Error(err, "Failed to initialize skill discovery")
		os.Exit(1)
	}

	allSkills := discovery.DiscoverSkills()
	if len(allSkills) == 0 {
		presenter.Info("No skills installed")
		return
	}

	names := make([]string, 0, len(allSkills))
	for name := range allSkills {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t---------\t-----------")

	for _, name := range names {
		skill := allSkills[name]
		description := skill.Description
		if len(description) > 60 {
			description = description[:57] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Directory, description)
	}
	tw.Flush()
}
