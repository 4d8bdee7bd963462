package main

import (
	"fmt"
	"io"
	"time"

	"folderpick/pkg/types"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newLsCmd(opts *rootOptions) *cobra.Command {
	var (
		exts       string
		regex      string
		exclude    bool
		caseSense  bool
		sortBy     string
		descending bool
		recursive  bool
	)

	cmd := &cobra.Command{
		Use:   "ls [directory]",
		Short: "List a directory the way the picker panel sees it",
		Long: `List the subdirectories and files of a directory through the node host,
with the same filters and ordering the picker panel uses. --recursive uses
the flat file-picker listing and shows sizes and modification times.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := types.DefaultNavigationState()
			if len(args) > 0 {
				state.Directory = args[0]
			}
			state.Extensions = exts
			state.Regex = regex
			if exclude {
				state.RegexMode = types.RegexExclude
			}
			state.RegexIgnoreCase = !caseSense
			key, err := types.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			state.SortBy = key
			state.Descending = descending

			client, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()

			if recursive {
				listing, err := client.ListDir(ctx, state, true)
				if err != nil {
					return err
				}
				printPickerListing(cmd.OutOrStdout(), listing)
				return nil
			}

			listing, err := client.List(ctx, state)
			if err != nil {
				return err
			}
			printListing(cmd.OutOrStdout(), listing)
			return nil
		},
	}

	cmd.Flags().StringVarP(&exts, "ext", "e", "", "Comma-separated extensions to keep, e.g. .png,.jpg")
	cmd.Flags().StringVarP(&regex, "regex", "r", "", "Regular expression matched against file names")
	cmd.Flags().BoolVarP(&exclude, "exclude", "x", false, "Drop files matching --regex instead of keeping them")
	cmd.Flags().BoolVar(&caseSense, "case-sensitive", false, "Match --regex case-sensitively")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "name", "Sort files by name, mtime or size")
	cmd.Flags().BoolVar(&descending, "desc", false, "Reverse the sort order")
	cmd.Flags().BoolVarP(&recursive, "recursive", "R", false, "List files of every subdirectory")

	return cmd
}

func printListing(out io.Writer, l *types.Listing) {
	fmt.Fprintln(out, primaryText(l.CurrentDirectory))
	for _, d := range l.Dirs {
		fmt.Fprintln(out, infoText("  ▸ "+d.Name+"/"))
	}
	for i, f := range l.Files {
		fmt.Fprintf(out, "  %4d  %s %s\n", i, f.Name, dimText(string(f.Type)))
	}
	fmt.Fprintln(out, dimText(fmt.Sprintf("%s directories, %s files",
		humanize.Comma(int64(len(l.Dirs))), humanize.Comma(int64(len(l.Files))))))
}

func printPickerListing(out io.Writer, l *types.PickerListing) {
	fmt.Fprintln(out, primaryText(l.Dir))
	for i, f := range l.Files {
		when := ""
		if f.MTime > 0 {
			when = humanize.Time(time.Unix(int64(f.MTime), 0))
		}
		fmt.Fprintf(out, "  %4d  %-40s %9s  %s\n", i, f.Name, humanize.Bytes(uint64(max(f.Size, 0))), dimText(when))
	}
	fmt.Fprintln(out, dimText(humanize.Comma(int64(l.Count))+" files"))
}
