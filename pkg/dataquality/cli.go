package dataquality

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/travigo/dataquality/pkg/database"
	"github.com/travigo/dataquality/pkg/elastic_client"
	"github.com/travigo/dataquality/pkg/metrics"
	"github.com/urfave/cli/v2"
)

// LoadCatalogue returns the observations from path, or the built in catalogue when path is empty
func LoadCatalogue(path string) ([]Observation, error) {
	if path == "" {
		return WeightedObservations()
	}

	return LoadObservationsFile(path)
}

func reportIDArgument(c *cli.Context) (int, error) {
	if c.Args().Len() != 1 {
		return 0, fmt.Errorf("expected a single report id argument")
	}

	return strconv.Atoi(c.Args().First())
}

func RegisterCLI() *cli.Command {
	observationsFlag := &cli.StringFlag{
		Name:  "observations",
		Usage: "YAML file overriding the weighted observation catalogue",
	}

	return &cli.Command{
		Name:  "score",
		Usage: "Calculate data quality scores for timetable reports",
		Subcommands: []*cli.Command{
			{
				Name:      "report",
				Usage:     "calculate the score of a single report without storing it",
				ArgsUsage: "<report id>",
				Flags:     []cli.Flag{observationsFlag},
				Action: func(c *cli.Context) error {
					reportID, err := reportIDArgument(c)
					if err != nil {
						return err
					}

					observations, err := LoadCatalogue(c.String("observations"))
					if err != nil {
						return err
					}

					if err := database.Connect(); err != nil {
						return err
					}

					store := NewMongoStore()
					calculator := NewCalculator(store, store, observations...)

					score, err := calculator.Calculate(c.Context, reportID)
					if err != nil {
						return err
					}

					rag := FromScore(score)
					log.Info().
						Int("report", reportID).
						Float64("score", score).
						Str("rag", string(rag.Level)).
						Str("percentage", rag.Percentage()).
						Msg("Calculated data quality score")

					return nil
				},
			},
			{
				Name:      "rag",
				Usage:     "show the RAG of a report, calculating and storing its score if needed",
				ArgsUsage: "<report id>",
				Flags:     []cli.Flag{observationsFlag},
				Action: func(c *cli.Context) error {
					reportID, err := reportIDArgument(c)
					if err != nil {
						return err
					}

					observations, err := LoadCatalogue(c.String("observations"))
					if err != nil {
						return err
					}

					if err := database.Connect(); err != nil {
						return err
					}

					store := NewMongoStore()
					report, err := store.Report(c.Context, reportID)
					if err != nil {
						return err
					}

					rag, err := GetDataQualityRAG(c.Context, report, NewCalculator(store, store, observations...), store)
					if err != nil {
						return err
					}
					if rag == nil {
						log.Warn().Int("report", reportID).Msg("Data quality score unavailable")
						return nil
					}

					log.Info().
						Int("report", reportID).
						Str("rag", string(rag.Level)).
						Str("indicator", rag.Indicator).
						Str("percentage", rag.Percentage()).
						Msg("Data quality RAG")

					return nil
				},
			},
			{
				Name:  "all",
				Usage: "score every report in parallel",
				Flags: []cli.Flag{
					observationsFlag,
					&cli.IntFlag{
						Name:  "workers",
						Value: 8,
						Usage: "number of reports scored at once",
					},
					&cli.BoolFlag{
						Name:  "unscored",
						Usage: "only score reports that have no stored score",
					},
				},
				Action: func(c *cli.Context) error {
					observations, err := LoadCatalogue(c.String("observations"))
					if err != nil {
						return err
					}

					if err := database.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}
					defer elastic_client.WaitUntilQueueEmpty()

					store := NewMongoStore()
					reports, err := store.AllReports(c.Context, c.Bool("unscored"))
					if err != nil {
						return err
					}

					batch := &BatchScorer{
						NewScorer: func() Scorer {
							return NewCalculator(store, store, observations...)
						},
						Store:   store,
						Workers: c.Int("workers"),
						Metrics: metrics.New(),
					}

					results := batch.ScoreReports(c.Context, reports)

					distribution := map[RAGLevel]int{}
					failed := 0
					for _, result := range results {
						if result.RAG == nil {
							failed++
							continue
						}
						distribution[result.RAG.Level]++
					}

					log.Info().
						Int("reports", len(results)).
						Int("green", distribution[RAGGreen]).
						Int("amber", distribution[RAGAmber]).
						Int("red", distribution[RAGRed]).
						Int("unavailable", failed).
						Msg("Scored reports")

					return nil
				},
			},
		},
	}
}
