package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/npratt/pollygraph/internal/export"
	"github.com/npratt/pollygraph/internal/store"
	"github.com/npratt/pollygraph/internal/tui"
)

func addLevelFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray(FlagInner, nil, "Drill into the inner level of this node (repeatable)")
	cmd.Flags().String(FlagRoot, "", "Data root that replaces the configured UI root")
}

func (a *app) newSearchCmd() *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search <source> <query>",
		Short: "Search labels and infos of a graph level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := a.loadFromArgs(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			contextLength := a.cfg.Search.Context
			if cmd.Flags().Changed(FlagContext) {
				contextLength, _ = cmd.Flags().GetInt(FlagContext)
			}
			caseSensitive := a.cfg.Search.CaseSensitive
			if cmd.Flags().Changed(FlagCaseSensitive) {
				caseSensitive, _ = cmd.Flags().GetBool(FlagCaseSensitive)
			}

			results := s.Search(args[1], s.Path(), contextLength, caseSensitive)
			if asJSON, _ := cmd.Flags().GetBool(FlagJSON); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			return writeResults(cmd.OutOrStdout(), results)
		},
	}

	searchCmd.Flags().Int(FlagContext, 0, "Characters of context around each match")
	searchCmd.Flags().Bool(FlagCaseSensitive, false, "Match case exactly")
	searchCmd.Flags().Bool(FlagJSON, false, "Output results as JSON")
	addLevelFlags(searchCmd)
	return searchCmd
}

// writeResults prints matches grouped by the field they were found in.
func writeResults(w io.Writer, results store.SearchResults) error {
	if results.Len() == 0 {
		_, err := fmt.Fprintln(w, "no matches")
		return err
	}
	groups := []struct {
		name    string
		results []store.SearchResult
	}{
		{"node labels", results.NodeLabels},
		{"node info", results.NodeInfos},
		{"edge labels", results.EdgeLabels},
		{"edge info", results.EdgeInfos},
	}
	for _, g := range groups {
		if len(g.results) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s:\n", g.name); err != nil {
			return err
		}
		for _, r := range g.results {
			if _, err := fmt.Fprintf(w, "  %s  %s\n", r.Ref, r.Excerpt); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *app) newInspectCmd() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect <source>",
		Short: "Print a graph level and its nesting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, g, err := a.loadFromArgs(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if err := tui.WriteSummary(out, g, s.Path()); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
			depth, _ := cmd.Flags().GetInt(FlagDepth)
			return tui.WriteHierarchy(out, g, depth)
		},
	}

	inspectCmd.Flags().Int(FlagDepth, -1, "Inner levels to expand (-1 = all)")
	addLevelFlags(inspectCmd)
	return inspectCmd
}

func (a *app) newExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export <source>[#element]",
		Short: "Write an SVG snapshot of a graph level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, focus := splitRef(args[0])
			s, g, err := a.loadFromArgs(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			opts := export.Options{
				Width:  a.cfg.Export.Width,
				Height: a.cfg.Export.Height,
				Margin: a.cfg.Export.Margin,
				Focus:  focus,
			}
			if cmd.Flags().Changed(FlagWidth) {
				opts.Width, _ = cmd.Flags().GetInt(FlagWidth)
			}
			if cmd.Flags().Changed(FlagHeight) {
				opts.Height, _ = cmd.Flags().GetInt(FlagHeight)
			}
			if cmd.Flags().Changed(FlagFocus) {
				opts.Focus, _ = cmd.Flags().GetString(FlagFocus)
			}
			opts.Title, _ = cmd.Flags().GetString(FlagTitle)

			out, _ := cmd.Flags().GetString(FlagOut)
			path, err := export.SaveSVG(out, g, opts)
			if err != nil {
				return err
			}
			a.logger.Debug("exported snapshot", "path", path, "nodes", g.NodeCount())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}

	exportCmd.Flags().String(FlagOut, "graph.svg", "Output file (.svg)")
	exportCmd.Flags().String(FlagFocus, "", "Element drawn focused")
	exportCmd.Flags().Int(FlagWidth, 0, "Canvas width in pixels")
	exportCmd.Flags().Int(FlagHeight, 0, "Canvas height in pixels")
	exportCmd.Flags().String(FlagTitle, "", "Title drawn in the header")
	addLevelFlags(exportCmd)
	return exportCmd
}
