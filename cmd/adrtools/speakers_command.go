package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"adrtools/internal/faults"
	"adrtools/internal/logging"
	"adrtools/internal/speakers"
)

func newSpeakersCommand(ctx *commandContext) *cobra.Command {
	var (
		charactersPath string
		castingsPath   string
		namesPath      string
		outputPath     string
		ratio          int
	)

	cmd := &cobra.Command{
		Use:   "speakers",
		Short: "Build a casting registry from character, casting and name lists",
		Long: "Characters are tab-separated \"name<TAB>nickname...\" lines, castings are\n" +
			"\"name<TAB>G25-30\" samples and names is one candidate alias per line.\n" +
			"The registry JSON is written to --out or stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if ratio <= 0 {
				ratio = cfg.Speakers.SplitRatio
			}
			logger, _, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "speakers")

			input := speakers.BootstrapInput{Ratio: ratio}
			charFile, err := openOptional(charactersPath)
			if err != nil {
				return err
			}
			if charFile == nil {
				return faults.Wrap(faults.ErrConfiguration, "speakers", "flags", "--characters is required", nil)
			}
			defer charFile.Close()
			if input.Characters, err = speakers.ParseCharacters(charFile); err != nil {
				return faults.Wrap(faults.ErrConfiguration, "speakers", "parse characters", charactersPath, err)
			}

			castFile, err := openOptional(castingsPath)
			if err != nil {
				return err
			}
			if castFile != nil {
				defer castFile.Close()
				if input.Castings, err = speakers.ParseCastingSamples(castFile); err != nil {
					return faults.Wrap(faults.ErrConfiguration, "speakers", "parse castings", castingsPath, err)
				}
			}

			namesFile, err := openOptional(namesPath)
			if err != nil {
				return err
			}
			if namesFile != nil {
				defer namesFile.Close()
				if input.Names, err = speakers.ParseNames(namesFile); err != nil {
					return faults.Wrap(faults.ErrConfiguration, "speakers", "parse names", namesPath, err)
				}
			}

			result, err := speakers.Bootstrap(input)
			if err != nil {
				return faults.Wrap(faults.ErrValidation, "speakers", "bootstrap", "", err)
			}
			for _, name := range result.Unmatched {
				logging.WarnWithContext(logger, "casting sample matched no character", "unmatched_casting",
					logging.String("name", name),
					logging.String(logging.FieldErrorHint, "add the name as a nickname or lower --ratio"),
					logging.String(logging.FieldImpact, "sample ignored"),
				)
			}
			logger.Info("registry built",
				logging.Int("speakers", len(result.Registry.Speakers)),
				logging.Int("castings", len(input.Castings)),
				logging.Int("unmatched", len(result.Unmatched)),
				logging.Int("ratio", ratio),
			)

			if err := writeOutput(cmd.OutOrStdout(), outputPath, func(w io.Writer) error {
				return result.Registry.Encode(w)
			}); err != nil {
				return err
			}
			if outputPath != "" && outputPath != "-" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d speakers to %s\n", len(result.Registry.Speakers), outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&charactersPath, "characters", "", "Character list (name<TAB>nicknames)")
	cmd.Flags().StringVar(&castingsPath, "castings", "", "Casting samples (name<TAB>G25-30)")
	cmd.Flags().StringVar(&namesPath, "names", "", "Candidate alias names, one per line")
	cmd.Flags().StringVar(&outputPath, "out", "", "Registry destination (default stdout)")
	cmd.Flags().IntVar(&ratio, "ratio", 0, "Match threshold 0-100 (default speakers.split_ratio)")
	return cmd
}
