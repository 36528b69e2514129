package cmd

import (
	"fmt"

	"github.com/matheuskafuri/fng/internal/browser"
	"github.com/matheuskafuri/fng/internal/ui"
	"github.com/spf13/cobra"
)

var flagInfoOpen bool

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display information about the Fear and Greed Index",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep := ui.NewConsole(cmd.OutOrStdout())
		rep.Print(ui.RenderInfo())
		if !flagInfoOpen {
			return nil
		}
		if err := browser.Open(browser.IndexURL); err != nil {
			return fmt.Errorf("opening browser: %w", err)
		}
		return nil
	},
}

func init() {
	infoCmd.Flags().BoolVar(&flagInfoOpen, "open", false, "open the CNN index page in your browser")
}
