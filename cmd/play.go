package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aleksandri0/mathpower/internal/app"
	"github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/presenter"
	"github.com/aleksandri0/mathpower/internal/presenter/line"
)

type playOptions struct {
	plain       bool
	level       string
	skipWelcome bool
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz",
	Long: `Start a quiz. With --plain the quiz runs as line-based prompts on stdin and
stdout, which also works in pipes:

  printf '1\n4\n6\nn\n' | mathpower play --plain --source bank`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		level, _ := cmd.Flags().GetString("level")
		return play(cmd, playOptions{plain: plain, level: level, skipWelcome: true})
	},
}

func init() {
	playCmd.Flags().Bool("plain", false, "Use line-based prompts instead of the full-screen UI")
	playCmd.Flags().String("level", "", "Start at this difficulty (plain mode only): easy, medium or hard")
}

func play(cmd *cobra.Command, opts playOptions) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	set, err := loadSet(cmd, cfg, st)
	if err != nil {
		return err
	}

	if !opts.plain {
		if opts.level != "" {
			return errors.New("--level requires --plain")
		}
		return app.Run(ctx, app.Options{
			Set:         set,
			ResetPolicy: policy,
			SkipWelcome: opts.skipWelcome,
		})
	}

	var lineOpts []line.Option
	if opts.level != "" {
		l, err := difficulty.Parse(opts.level)
		if err != nil {
			return err
		}
		lineOpts = append(lineOpts, line.WithLevel(l))
	}

	p := line.New(cmd.InOrStdin(), cmd.OutOrStdout(), set, lineOpts...)
	if err := p.Run(ctx, presenter.NewFlow(p, set, policy)); err != nil {
		if errors.Is(err, line.ErrNoDifficulties) {
			fmt.Fprintln(os.Stderr, "Nothing to play: the calculation set is empty.")
		}
		return err
	}
	return nil
}
