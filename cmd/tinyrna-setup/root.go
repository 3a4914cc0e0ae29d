package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/montgomerylab/tinyrna-setup/internal/acquire"
	"github.com/montgomerylab/tinyrna-setup/internal/checksum"
	"github.com/montgomerylab/tinyrna-setup/internal/condatool"
	"github.com/montgomerylab/tinyrna-setup/internal/config"
	"github.com/montgomerylab/tinyrna-setup/internal/logfile"
	"github.com/montgomerylab/tinyrna-setup/internal/logging"
	"github.com/montgomerylab/tinyrna-setup/internal/messages"
	"github.com/montgomerylab/tinyrna-setup/internal/pkginstall"
	"github.com/montgomerylab/tinyrna-setup/internal/platform"
	"github.com/montgomerylab/tinyrna-setup/internal/provision"
	"github.com/montgomerylab/tinyrna-setup/internal/subproc"
)

var (
	loadSettingsFunc = config.Load
	detectFunc       = platform.Detect
	locateFunc       = condatool.Locate
	locatePrefixFunc = condatool.LocatePrefix
	getwd            = os.Getwd
	homedirFunc      = homedir.Dir
)

func newRootCmd(runner *subproc.Runner) *cobra.Command {
	var verbose bool
	var sourceDir string

	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettingsFunc()
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), verbose)

			envName := settings.DefaultEnvName
			if len(args) == 1 && args[0] != "" {
				envName = args[0]
			}

			sys := platform.RealSystem{}
			host, err := detectFunc(sys)
			if err != nil {
				return err
			}
			if err := platform.CheckEnvNotActive(sys, envName); err != nil {
				return err
			}
			logger.Debug().
				Str("os", host.OS).Str("arch", host.Arch).Str("shell", host.Shell).
				Str("env", envName).Msg("host detected")

			cwd, err := getwd()
			if err != nil {
				return err
			}

			tool, found := locateFunc()
			if !found {
				tool, err = installRuntime(cmd, runner, settings, host, cwd, logger)
				if err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.LocatedRuntimeFmt, tool.Name)
			logger.Debug().Str("tool", tool.Name).Str("path", tool.Path).Msg("runtime selected")

			lockfileDir := settings.LockfileDir
			if lockfileDir == "" {
				lockfileDir = cwd
			}
			lockfile := filepath.Join(lockfileDir, host.LockfileName())
			if _, err := os.Stat(lockfile); err != nil {
				return fmt.Errorf(messages.LockfileMissingFmt, lockfile)
			}

			logs := logfile.NewFactory(cwd)
			provisioner := &provision.Provisioner{
				Tool:     tool,
				Runner:   runner,
				Prompter: &provision.ReaderPrompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()},
				Logs:     logs,
				Out:      cmd.OutOrStdout(),
				Log:      logger,
			}
			err = provisioner.Provision(cmd.Context(), provision.Request{Name: envName, Lockfile: lockfile})
			if errors.Is(err, provision.ErrDeclined) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.ProvisionDeclinedFmt, envName)
				return &SilentExitError{Code: 1}
			}
			if err != nil {
				return err
			}

			if err := pkginstall.Run(cmd.Context(), envName, pkginstall.Options{
				Tool:      tool,
				Runner:    runner,
				Logs:      logs,
				Out:       cmd.OutOrStdout(),
				SourceDir: sourceDir,
			}); err != nil {
				return err
			}

			success := color.New(color.FgGreen)
			_, _ = success.Fprintf(cmd.OutOrStdout(), messages.DoneFmt, envName)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.ActivateHintFmt, tool.Name, envName)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, messages.RootFlagVerbose)
	cmd.Flags().StringVar(&sourceDir, "source", ".", messages.RootFlagSource)

	return cmd
}

// installRuntime acquires Miniconda and re-probes for a usable tool. A fresh
// install is usually not on PATH yet, so the default install prefix is probed
// directly before giving up.
func installRuntime(cmd *cobra.Command, runner *subproc.Runner, settings config.Settings, host platform.Host, cwd string, logger zerolog.Logger) (condatool.Tool, error) {
	acquirer := &acquire.Acquirer{
		BaseURL:  settings.InstallerBaseURL,
		Verifier: &checksum.Verifier{IndexURL: settings.IndexURL},
		Runner:   runner,
		UI:       acquire.HuhUI{},
		Out:      cmd.OutOrStdout(),
		Log:      logger,
	}
	err := acquirer.Acquire(cmd.Context(), cwd, host.InstallerName())
	if errors.Is(err, acquire.ErrDeclined) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.AcquireDeclined)
		return condatool.Tool{}, &SilentExitError{Code: 1}
	}
	if err != nil {
		return condatool.Tool{}, err
	}

	if tool, found := locateFunc(); found {
		return tool, nil
	}
	if home, err := homedirFunc(); err == nil {
		if tool, found := locatePrefixFunc(filepath.Join(home, "miniconda3")); found {
			return tool, nil
		}
	}
	return condatool.Tool{}, errors.New(messages.AcquireToolStillMissing)
}
