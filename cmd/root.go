package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/josephlewis42/nsh/core/config"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	runLine string
	noColor bool
	verbose bool
)

// loadConfig reads --config if it was given, otherwise the built-in defaults
// are used.
func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nsh",
	Short: "A small interactive shell",
	Long: `A small interactive shell that runs programs from the PATH in the
foreground or, with a trailing &, in the background. Previous commands can be
listed with history and run again with !! or !N.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		status, err := runSession(configuration, cmd.Flags().Changed("command"))
		if err != nil {
			return err
		}
		if status != 0 {
			os.Exit(status)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory, defaults are used if unset")

	rootCmd.Flags().StringVarP(&runLine, "command", "c", "", "run a single line and exit with its status")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "never colorize output")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print prompts and echo lines read from non-terminal input")
}
