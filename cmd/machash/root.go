package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/soypat/machash/hashcheck"
	"github.com/soypat/machash/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type app struct {
	v          *viper.Viper
	log        zerolog.Logger
	configFile string
	loglevel   string
	// vectors returns the table checked by the verify command.
	vectors func() []hashcheck.Vector
}

// newRootCmd returns the command tree. vectors supplies the table checked by verify.
func newRootCmd(vectors func() []hashcheck.Vector) *cobra.Command {
	a := &app{
		v:       viper.New(),
		log:     zerolog.Nop(),
		vectors: vectors,
	}
	root := &cobra.Command{
		Use:              programname,
		Short:            "Ethernet MAC hash filter index calculator",
		SilenceErrors:    true,
		SilenceUsage:     true,
		TraverseChildren: true,
	}
	root.PersistentFlags().StringVar(&a.loglevel, "loglevel", "info", "Console log level, one of "+strings.Join(ui.LogLevelStrings(), ", "))
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML configuration file")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := a.loadConfiguration(cmd.Root()); err != nil {
			return err
		}
		lvl, err := ui.ParseLevel(a.loglevel)
		if err != nil {
			return err
		}
		a.log = ui.NewLogger(logOutput(cmd.ErrOrStderr()), lvl)
		if used := a.v.ConfigFileUsed(); used != "" {
			a.log.Debug().Str("file", used).Msg("using configuration file")
		}
		return nil
	}
	root.AddCommand(
		a.verifyCmd(),
		a.collisionsCmd(),
		a.indexCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Show " + programname + " version information",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", programname, version, commit)
				return err
			},
		},
	)
	return root
}

func (a *app) loadConfiguration(root *cobra.Command) error {
	a.v.SetEnvPrefix("MACHASH")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if a.configFile == "" {
		a.configFile = a.v.GetString("config")
	}
	if a.configFile != "" {
		a.v.SetConfigFile(a.configFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading configuration %s: %w", a.configFile, err)
		}
	}
	return a.bindFlags(root)
}

// bindFlags applies configuration values to every flag not set on the command line.
func (a *app) bindFlags(cmd *cobra.Command) error {
	var err error
	apply := func(f *pflag.Flag) {
		if err != nil || f.Changed || !a.v.IsSet(f.Name) {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			err = sv.Replace(a.v.GetStringSlice(f.Name))
		} else {
			err = f.Value.Set(a.v.GetString(f.Name))
		}
		if err != nil {
			err = fmt.Errorf("configuration value for %s: %w", f.Name, err)
		}
	}
	cmd.PersistentFlags().VisitAll(apply)
	cmd.Flags().VisitAll(apply)
	if err != nil {
		return err
	}
	for _, sub := range cmd.Commands() {
		if err := a.bindFlags(sub); err != nil {
			return err
		}
	}
	return nil
}
