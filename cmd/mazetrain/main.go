// Command mazetrain trains an agent on a maze from the terminal and prints the
// learned values, optionally writing the move history chart to an HTML file.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/beka-birhanu/vinom-rl/config"
	"github.com/beka-birhanu/vinom-rl/domain"
	"github.com/beka-birhanu/vinom-rl/game/agent"
	"github.com/beka-birhanu/vinom-rl/game/trainer"
	"github.com/beka-birhanu/vinom-rl/infrastruture/chart"
	"github.com/beka-birhanu/vinom-rl/service"
	"github.com/beka-birhanu/vinom-rl/service/i"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

type mazeFlags struct {
	layout   string
	width    int
	height   int
	generate bool
	seed     int64
}

func (f *mazeFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.layout, "layout", "", "Encoded wall layout")
	cmd.PersistentFlags().IntVar(&f.width, "width", 0, "Width of the maze")
	cmd.PersistentFlags().IntVar(&f.height, "height", 0, "Height of the maze")
	cmd.PersistentFlags().BoolVar(&f.generate, "generate", false, "Generate a random layout of the given size")
	cmd.PersistentFlags().Int64Var(&f.seed, "maze-seed", 0, "Seed of the layout generator")
}

func (f *mazeFlags) spec() i.MazeSpec {
	return i.MazeSpec{
		Encoded:  f.layout,
		Width:    f.width,
		Height:   f.height,
		Generate: f.generate,
		Seed:     f.seed,
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var mf mazeFlags
	var color bool

	root := &cobra.Command{
		Use:           "mazetrain",
		Short:         "Train a maze solving agent",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	mf.register(root)
	root.PersistentFlags().BoolVar(&color, "color", false, "Colour the maze drawing")

	root.AddCommand(showCommand(stdout, &mf, &color))
	root.AddCommand(trainCommand(stdout, stderr, &mf, &color))
	return root
}

func showCommand(stdout io.Writer, mf *mazeFlags, color *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print a maze and its encoded layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := service.BuildMaze(mf.spec())
			if err != nil {
				return err
			}

			fmt.Fprint(stdout, m.Render(aurora.NewAurora(*color)))
			fmt.Fprintf(stdout, "layout:   %s\nsolvable: %t\n", m.EncodeTiles(), m.Solvable())
			return nil
		},
	}
}

func trainCommand(stdout, stderr io.Writer, mf *mazeFlags, color *bool) *cobra.Command {
	var (
		episodes  int
		stepCap   int
		alpha     float64
		epsilon   float64
		seed      int64
		floor     float64
		logEvery  int
		chartPath string
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an agent and print the learned values",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := service.BuildMaze(mf.spec())
			if err != nil {
				return err
			}

			c := trainer.Config{
				Episodes:     episodes,
				StepCap:      stepCap,
				Alpha:        alpha,
				RandomFactor: epsilon,
				Seed:         seed,
				LogEvery:     logEvery,
				Logger:       log.New(stderr, fmt.Sprintf("%s[TRAINER]%s ", config.ColorMagenta, config.ColorReset), log.LstdFlags),
			}
			if cmd.Flags().Changed("floor") {
				c.Floor = &floor
			}

			t, err := trainer.New(c)
			if err != nil {
				return err
			}
			result, err := t.Train(cmd.Context(), m)
			if err != nil {
				return err
			}

			run := domain.NewRun(domain.RunConfig{
				Layout:       m.EncodeTiles(),
				Width:        result.Width,
				Height:       result.Height,
				Solvable:     result.Solvable,
				MoveHistory:  result.MoveHistory,
				Values:       result.Values,
				RandomFactor: result.RandomFactor,
			})

			fmt.Fprint(stdout, m.Render(aurora.NewAurora(*color)))
			fmt.Fprint(stdout, m.RenderValues(result.Values))
			fmt.Fprintf(stdout, "seed: %d  episodes: %d  final moves: %d  mean moves: %.2f (sd %.2f)  epsilon: %.4f\n",
				result.Seed, len(run.MoveHistory), run.FinalMoves(), run.MeanMoves, run.StdDevMoves, run.RandomFactor)

			if chartPath == "" {
				return nil
			}
			f, err := os.Create(chartPath)
			if err != nil {
				return err
			}
			defer f.Close()
			return chart.NewEChartsRenderer(0).RenderMoveHistory(f, "Move History", run.MoveHistory)
		},
	}

	cmd.Flags().IntVar(&episodes, "episodes", trainer.DefaultEpisodes, "Number of episodes")
	cmd.Flags().IntVar(&stepCap, "step-cap", trainer.DefaultStepCap, "Steps after which an episode is ended")
	cmd.Flags().Float64Var(&alpha, "alpha", agent.DefaultAlpha, "Learning rate")
	cmd.Flags().Float64Var(&epsilon, "epsilon", agent.DefaultRandomFactor, "Initial exploration rate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed of the agent, 0 picks one")
	cmd.Flags().Float64Var(&floor, "floor", 0, "Lower bound of the exploration rate, unbounded when unset")
	cmd.Flags().IntVar(&logEvery, "log-every", 500, "Log progress every n episodes")
	cmd.Flags().StringVar(&chartPath, "chart", "", "Write the move history chart to this HTML file")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s[ERROR]%s %v\n", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
}
