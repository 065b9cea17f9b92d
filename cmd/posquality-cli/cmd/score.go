package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dombatch "github.com/kailas-cloud/posquality/internal/domain/batch"
	"github.com/kailas-cloud/posquality/internal/domain/quality"
	scoringuc "github.com/kailas-cloud/posquality/internal/usecase/scoring"
)

type scoreOptions struct {
	asJSON     bool
	timeliness float64
}

// jsonItem is one line of --json output.
type jsonItem struct {
	ID                string   `json:"id"`
	Score             *float64 `json:"score,omitempty"`
	DistanceKm        float64  `json:"distance_km,omitempty"`
	QuantitativeTotal float64  `json:"quantitative_total,omitempty"`
	CategoricalTotal  int      `json:"categorical_total,omitempty"`
	WeightProduct     float64  `json:"weight_product,omitempty"`
	Error             string   `json:"error,omitempty"`
}

func newScoreCmd() *cobra.Command {
	var opts scoreOptions

	c := &cobra.Command{
		Use:   "score <scenario.yaml>",
		Short: "Score every provider in a scenario file",
		Long: `Score every provider of a scenario file against its user.

Results are printed in file order, one "id<TAB>score" line per provider.
Providers that cannot be scored print their error code instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var override *quality.Weights
			if cmd.Flags().Changed("timeliness") {
				w := quality.WeightsFromTimeliness(opts.timeliness)
				override = &w
			}
			return runScore(cmd, args[0], override, opts.asJSON)
		},
	}

	c.Flags().BoolVar(&opts.asJSON, "json", false, "print score breakdowns as JSON")
	c.Flags().Float64Var(&opts.timeliness, "timeliness", 0.5,
		"timeliness weight; accuracy is 1 minus this value")
	return c
}

func runScore(cmd *cobra.Command, path string, override *quality.Weights, asJSON bool) error {
	logger := loggerFrom(cmd)

	sc, err := loadScenario(path)
	if err != nil {
		return err
	}

	weights := sc.weights()
	if override != nil {
		weights = override
	}

	user, err := sc.User.toParty("user", 0)
	if err != nil {
		return err
	}
	providers := make([]scoringuc.Party, len(sc.Providers))
	for i, p := range sc.Providers {
		if providers[i], err = p.toParty("provider", i); err != nil {
			return err
		}
	}

	svc := scoringuc.New(quality.DefaultWeights(), nil).WithMaxBatchSize(len(providers))
	results, err := svc.ScoreBatch(cmd.Context(), user, providers, weights)
	if err != nil {
		return fmt.Errorf("score %s: %w", path, err)
	}

	logger.Debug("scenario scored",
		zap.String("path", path),
		zap.Int("providers", len(results)),
	)

	if asJSON {
		return writeJSONResults(cmd, results)
	}
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.ID(), formatResult(r))
	}
	return nil
}

func formatResult(r dombatch.Result) string {
	if r.Err() != nil {
		return scoringuc.OutcomeOf(r.Err())
	}
	return strconv.FormatFloat(r.Breakdown().Score, 'g', -1, 64)
}

func writeJSONResults(cmd *cobra.Command, results []dombatch.Result) error {
	items := make([]jsonItem, len(results))
	for i, r := range results {
		items[i] = jsonItem{ID: r.ID()}
		if r.Err() != nil {
			items[i].Error = scoringuc.OutcomeOf(r.Err())
			continue
		}
		b := r.Breakdown()
		items[i].Score = &b.Score
		items[i].DistanceKm = b.DistanceKm
		items[i].QuantitativeTotal = b.QuantitativeTotal
		items[i].CategoricalTotal = b.CategoricalTotal
		items[i].WeightProduct = b.WeightProduct
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}
