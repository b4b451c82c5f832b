package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dicom-deident/internal/cli"
	"dicom-deident/internal/config"
	"dicom-deident/internal/gui"
	"dicom-deident/internal/logging"
)

func newRootCmd(gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anonymizer",
		Short: "Deterministic DICOM de-identification",
		Long: `anonymizer rewrites identifying DICOM attributes with pseudonymous values
derived from DeviceSerialNumber, StudyDate, StudyTime and the study/series UIDs.
The same inputs always produce the same identifiers; no mapping table is kept.

Run without a subcommand to open the desktop application.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd)
		},
	}
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newFileCmd(),
		newBatchCmd(),
		newGUICmd(),
		newVersionCmd(gitsha),
	)
	return cmd
}

func newEngine(cmd *cobra.Command) (*cli.Engine, *config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(os.Stderr, cfg.LogLevel)
	e, err := cli.NewEngine(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return e, cfg, nil
}

func newFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file <input> <output>",
		Short: "Anonymize a single file",
		Long: `Anonymize a single file. Without --naming, <output> is the output file path.
With --naming, <output> is a base directory and the file is written to
<output>/<patient>/<study>/<series>/<modality>_<imagetype>_<instance>.<ext>.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			naming, _ := cmd.Flags().GetBool("naming")

			e, _, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			return cli.RunFile(e, args[0], args[1], naming, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Bool("naming", false, "Use the naming-convention output tree")
	return cmd
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <destination> <input>...",
		Short: "Anonymize files and directories into a naming-convention tree",
		Long: `Anonymize every input concurrently into <destination>. Directories are searched
for DICOM files. Files that cannot be anonymized are reported and skipped; the
batch always completes.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cfg, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			_, err = cli.RunBatch(e, cli.BatchOptions{
				Inputs:      args[1:],
				Destination: args[0],
				Recursive:   cfg.Recursive,
				Out:         cmd.OutOrStdout(),
			})
			return err
		},
	}
}

func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd)
		},
	}
}

func runGUI(cmd *cobra.Command) error {
	e, cfg, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	gui.NewApp(e, cfg.Recursive).Run()
	return nil
}

func newVersionCmd(gitsha string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
}
