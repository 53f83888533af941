package cli

import (
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/auth"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/expansion"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/ordering"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/tui"
	"github.com/spf13/cobra"
)

func (a *app) browseCommand() *cobra.Command {
	var (
		gallery string
		tab     string
		admin   bool
	)
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the showcase in the terminal",
		Long: `Browse the showcase in the terminal. --gallery opens a gallery by slug or id
the same way a shared link does. With --admin the browser asks for the password
when needed and lets you reorder galleries with J/K.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if gallery != "" {
				query.Set(expansion.ParamGallery, gallery)
			}
			if tab != "" {
				query.Set(expansion.ParamTab, tab)
			}

			opts := tui.Options{Work: a.api, Query: query}
			if admin {
				opts.Board = ordering.NewBoard(a.api)
				opts.Gate = auth.NewGate(a.session, a.api)
				opts.AfterLogin = a.saveToken
			}

			program := tea.NewProgram(tui.New(opts),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := program.Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&gallery, "gallery", "g", "", "gallery slug or id to open")
	cmd.Flags().StringVar(&tab, "tab", "", "photography, videography, design or book")
	cmd.Flags().BoolVar(&admin, "admin", false, "log in and allow reordering")
	return cmd
}
