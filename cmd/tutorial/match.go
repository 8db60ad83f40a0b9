package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func matchCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "match [path...]",
		Short: "Resolve paths against the route table",
		Long: `Resolve paths against the route table without navigating or loading data.

Examples:
  tutorial match /example/3
  tutorial match /welcome /nope
  tutorial match --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			routes, _, err := a.routes()
			if err != nil {
				return err
			}

			header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
			cell := lipgloss.NewStyle().Padding(0, 1)
			t := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return header
					}
					return cell
				})

			if list || len(args) == 0 {
				t.Headers("#", "PATTERN", "VIEW")
				for i, e := range routes.Entries() {
					t.Row(fmt.Sprint(i), e.Pattern, string(e.View))
				}
				fmt.Fprintln(cmd.OutOrStdout(), t.Render())
				for _, e := range routes.Shadowed() {
					warn("%s is shadowed by an earlier pattern", e.Pattern)
				}
				return nil
			}

			t.Headers("PATH", "VIEW", "PATTERN", "PARAMS")
			for _, p := range args {
				m := routes.Match(p)
				t.Row(p, string(m.View()), m.Pattern(), m.Params().String())
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List the route table")

	return cmd
}
