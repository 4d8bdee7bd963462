package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// listWidth is the width font names are laid out in
const listWidth = 80

func newFontsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List the fonts available to the text maker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()

			fonts, err := client.Fonts(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(fonts) == 0 {
				fmt.Fprintln(out, warningText("No fonts found"))
				return nil
			}
			fmt.Fprint(out, columns(fonts, listWidth))
			return nil
		},
	}
}

func newColorsCmd(opts *rootOptions) *cobra.Command {
	var palette string

	cmd := &cobra.Command{
		Use:   "colors [file]",
		Short: "List palette files or the colors of one",
		Long: `Without a file, list the palette files of the hex or rvb color picker.
With a file, print its colors as swatches.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			var prefix string
			switch palette {
			case "hex":
				prefix = client.Endpoints().HexPicker
			case "rvb":
				prefix = client.Endpoints().RVBPicker
			default:
				return fmt.Errorf("unknown palette %q, use hex or rvb", palette)
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				files, err := client.PaletteFiles(ctx, prefix)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintln(out, f)
				}
				return nil
			}

			colors, err := client.PaletteColors(ctx, prefix, args[0])
			if err != nil {
				return err
			}
			for i, c := range colors {
				swatch := lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("    ")
				fmt.Fprintf(out, "%4d  %s %s\n", i, swatch, c)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&palette, "palette", "p", "hex", "Palette kind: hex or rvb")

	return cmd
}

// columns lays names out in rows of at most width cells
func columns(names []string, width int) string {
	longest := 0
	for _, n := range names {
		longest = max(longest, len(n))
	}
	per := max(1, width/(longest+2))

	var sb strings.Builder
	for i, n := range names {
		sb.WriteString(n)
		if (i+1)%per == 0 || i == len(names)-1 {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(strings.Repeat(" ", longest+2-len(n)))
	}
	return sb.String()
}
