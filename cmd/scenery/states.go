package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/scenery/event"
)

func statesCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "Print the configured state graph and scene bindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			h, err := buildHost(cfg, nil)
			if err != nil {
				return err
			}
			return printStates(cmd.OutOrStdout(), h)
		},
	}
}

// printStates writes one block per state: parent, initial flag, transitions and bound scenes
func printStates(out io.Writer, h *host) error {
	sm := h.app.States()

	scenes := make(map[int][]string)
	for _, b := range h.scene.Bindings() {
		scenes[int(b.State)] = append(scenes[int(b.State)], b.Key.Short())
	}

	for _, id := range sm.States() {
		node, _ := sm.Node(id)

		initial := ""
		if id == sm.InitialStateID {
			initial = " (initial)"
		}
		if _, err := fmt.Fprintf(out, "%s%s\n  parent: %s\n", node.Name, initial, sm.StateName(node.ParentID)); err != nil {
			return err
		}

		on := make([]string, 0, len(node.Transitions))
		for _, t := range node.Transitions {
			on = append(on, fmt.Sprintf("%s -> %s", event.GetEventName(t.Event), sm.StateName(t.TargetID)))
		}
		sort.Strings(on)
		if len(on) > 0 {
			fmt.Fprintf(out, "  on:     %s\n", strings.Join(on, ", "))
		}

		if names := scenes[int(id)]; len(names) > 0 {
			sort.Strings(names)
			fmt.Fprintf(out, "  scenes: %s\n", strings.Join(names, ", "))
		}
	}
	return nil
}
