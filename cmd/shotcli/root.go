package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/playpool/shotsolver/internal/config"
	"github.com/playpool/shotsolver/internal/shot"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shotcli",
		Short:         "Rank pool shots for a cue ball, object ball and pocket",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newSolveCmd(), newPocketsCmd())
	return root
}

func newSolver() (*shot.Solver, error) {
	cfg := config.Load()
	return shot.NewSolver(cfg.Table(), shot.WithWorkers(cfg.SolverWorkers))
}

func newSolveCmd() *cobra.Command {
	var (
		cue, object, pocket string
		cushions            int
		asJSON              bool
		limit               int
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Enumerate direct, one- and two-cushion shots",
		Example: "  shotcli solve --cue 300,1000 --object 500,500 --pocket bottom_right\n" +
			"  shotcli solve --cue 300,1000 --object 500,500 --cushions 2 --json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cuePos, err := parseVec(cue)
			if err != nil {
				return fmt.Errorf("--cue: %w", err)
			}
			objectPos, err := parseVec(object)
			if err != nil {
				return fmt.Errorf("--object: %w", err)
			}
			s, err := newSolver()
			if err != nil {
				return err
			}
			shots, err := s.Solve(shot.Request{Cue: cuePos, Object: objectPos, Pocket: pocket, MaxCushions: cushions})
			if err != nil {
				return err
			}
			if limit > 0 && len(shots) > limit {
				shots = shots[:limit]
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(shots)
			}
			return printShots(cmd.OutOrStdout(), shots)
		},
	}
	cmd.Flags().StringVar(&cue, "cue", "", "cue ball position x,y in mm")
	cmd.Flags().StringVar(&object, "object", "", "object ball position x,y in mm")
	cmd.Flags().StringVar(&pocket, "pocket", "", "target pocket (default: all six)")
	cmd.Flags().IntVar(&cushions, "cushions", 0, "maximum cushions, 0-2")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print candidates as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many shots")
	cmd.MarkFlagRequired("cue")
	cmd.MarkFlagRequired("object")
	return cmd
}

func newPocketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pockets",
		Short: "List pocket names and positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSolver()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "POCKET\tX\tY")
			for _, p := range s.Table().Pockets() {
				fmt.Fprintf(w, "%s\t%.1f\t%.1f\n", p.Name, p.Position.X, p.Position.Y)
			}
			return w.Flush()
		},
	}
}

func parseVec(s string) (shot.Vec2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return shot.Vec2{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return shot.Vec2{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return shot.Vec2{}, err
	}
	return shot.NewVec2(x, y), nil
}

func printShots(out io.Writer, shots []shot.Candidate) error {
	if len(shots) == 0 {
		fmt.Fprintln(out, "no feasible shot; try more cushions or another pocket")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPOCKET\tKIND\tRAILS\tAIM\tDISTANCE\tSCORE\tDIFFICULTY")
	for i, c := range shots {
		rails := strings.Join(lo.Map(c.RailsUsed, func(r shot.Rail, _ int) string { return r.String() }), ">")
		if rails == "" {
			rails = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t(%.1f, %.1f)\t%.1f\t%.3f\t%s\n",
			i+1, c.Pocket.Name, c.Kind, rails, c.AimPoint.X, c.AimPoint.Y, c.TotalDistance, c.DifficultyScore, c.Difficulty)
	}
	return w.Flush()
}
