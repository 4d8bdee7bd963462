package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newNodesCmd(opts *rootOptions) *cobra.Command {
	var showInputs bool

	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List the known node types",
		Long:  `List every node type from the catalog with the extensions that hook it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			registry, err := opts.registry(client)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			defs := registry.Defs()
			fmt.Fprintln(out, primaryText(fmt.Sprintf("%d node types", len(defs))))
			for _, def := range defs {
				line := fmt.Sprintf("  %-28s %s", def.Name, dimText(def.Category))
				if exts := registry.Extensions(def.Name); len(exts) > 0 {
					line += "  " + infoText("["+strings.Join(exts, ", ")+"]")
				}
				fmt.Fprintln(out, line)

				if !showInputs {
					continue
				}
				for _, in := range def.Inputs {
					fmt.Fprintf(out, "      %-20s %s\n", in.Name, dimText(strings.ToLower(in.Type)))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showInputs, "inputs", "i", false, "Show the inputs of each node")

	return cmd
}
