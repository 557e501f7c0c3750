package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shaneholloman/fetch-skill/pkg/agents"
	"github.com/shaneholloman/fetch-skill/pkg/presenter"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List supported agents and their skills directories",
	Long: `List all known agents with their project-local and global skills
directories. Custom agents can be added under the "agents" key of the
configuration file.`,
	Run: func(_ *cobra.Command, _ []string) {
		listAgents()
	},
}

func listAgents() {
	registry, err := agents.NewRegistry()
	if err != nil {
		presenter.Error(err, "Failed to load agent registry")
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AGENT\tNAME\tPROJECT DIR\tGLOBAL DIR")
	fmt.Fprintln(tw, "-----\t----\t-----------\t----------")

	for _, agentType := range registry.Types() {
		desc, err := registry.Get(agentType)
		if err != nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", agentType, desc.Name, desc.SkillsDir, desc.GlobalSkillsDir)
	}
	tw.Flush()
}
