package cmd

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lhcompare/config"
	"lhcompare/logger"
	"lhcompare/tui"
)

const configFileFlag = "config"

var (
	configFilePath string
	cfg            config.Config
	log            = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "lhcompare",
	Short: "Compare Lighthouse reports against a baseline",
	Long: `lhcompare compares Lighthouse reports of a build against the reports of
its ancestor build, page by page, and reports which metrics regressed.

Run sets come from JSON files, lhci collect output directories, or a
Lighthouse CI server.`,
	SilenceUsage:      true,
	PersistentPreRunE: initialize,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}

		p := tea.NewProgram(tui.NewMenuModel())
		m, err := p.Run()
		if err != nil {
			return err
		}

		if m.(tui.MenuModel).Selected == tui.MenuCompare {
			// compare with no sources opens the picker flow
			return compareCmd.RunE(compareCmd, nil)
		}
		return nil
	},
}

// initialize merges the config file, LHCOMPARE_* variables and the flags of
// the command being run, then sets up logging.
func initialize(cmd *cobra.Command, _ []string) error {
	v := config.New()
	if err := config.BindFlags(cmd, v); err != nil {
		return err
	}

	loaded, err := config.Load(v, configFilePath)
	if err != nil {
		return err
	}
	cfg = loaded

	log = logger.New(os.Stderr, cfg.DebugEnabled())
	if configFilePath != "" {
		log.Debug().Str("config", configFilePath).Msg("loaded configuration file")
	}
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFilePath, configFileFlag, "", "Path to the config file")
	cobra.CheckErr(rootCmd.MarkPersistentFlagFilename(configFileFlag, "yaml", "yml", "json"))
	rootCmd.PersistentFlags().Bool("debug", false, "Log comparison diagnostics")
}
