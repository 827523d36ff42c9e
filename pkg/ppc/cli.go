package ppc

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/dataquality/pkg/consumer"
	"github.com/travigo/dataquality/pkg/database"
	"github.com/travigo/dataquality/pkg/elastic_client"
	"github.com/travigo/dataquality/pkg/metrics"
	"github.com/travigo/dataquality/pkg/redis_client"
	"github.com/travigo/dataquality/pkg/siri_vm"
	"github.com/travigo/dataquality/pkg/util"
	"github.com/urfave/cli/v2"
)

func feedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:     "feed-id",
			Usage:    "ID of the AVL feed the sample came from",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "feed-name",
			Usage: "name of the AVL feed the sample came from",
		},
	}
}

func fileArgument(c *cli.Context) (string, error) {
	if c.Args().Len() != 1 {
		return "", errors.New("expected a single SIRI-VM file argument")
	}

	return c.Args().First(), nil
}

func parseDateFlag(c *cli.Context, name string) (time.Time, error) {
	date, err := time.Parse(util.YearMonthDayFormat, c.String(name))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", name, err)
	}

	return date, nil
}

func timetableSource(cached bool) (TimetableSource, error) {
	var source TimetableSource = NewMongoTimetableSource()
	if !cached {
		return source, nil
	}

	if err := redis_client.Connect(); err != nil {
		return nil, err
	}

	return NewCachedTimetableSource(source), nil
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "ppc",
		Usage: "Post publishing checks of SIRI-VM feeds against published timetables",
		Subcommands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "check a SIRI-VM sample now and print the summary",
				ArgsUsage: "<siri-vm file>",
				Flags: append(feedFlags(),
					&cli.BoolFlag{
						Name:  "save",
						Usage: "store the daily report",
					},
					&cli.BoolFlag{
						Name:  "cache",
						Usage: "cache timetable lookups in redis",
					},
				),
				Action: func(c *cli.Context) error {
					path, err := fileArgument(c)
					if err != nil {
						return err
					}

					file, err := os.Open(path)
					if err != nil {
						return err
					}
					defer file.Close()

					siri, err := siri_vm.ParseXML(file)
					if err != nil {
						return err
					}

					if err := database.Connect(); err != nil {
						return err
					}

					source, err := timetableSource(c.Bool("cache"))
					if err != nil {
						return err
					}

					engine := &Engine{Matcher: &VehicleJourneyFinder{Source: source}}
					feed := Feed{ID: c.Int("feed-id"), Name: c.String("feed-name")}

					report, err := engine.Check(c.Context, feed, siri.Header(), siri.VehicleActivities())
					if err != nil {
						return err
					}

					for _, row := range report.Summary {
						log.Info().
							Str("field", row.SirivmField).
							Int("populated", row.TotalPopulated).
							Str("populated_percentage", row.PercentPopulated).
							Int("matched", row.Matched).
							Str("match_percentage", row.PercentMatched).
							Msg("Field summary")
					}
					for _, row := range report.Uncounted {
						log.Info().Str("journey", row.DatedVehicleJourneyRef).Msg(row.ErrorNote)
					}

					if c.Bool("save") {
						return NewMongoReportStore().SaveDailyReport(c.Context, report)
					}

					return nil
				},
			},
			{
				Name:      "submit",
				Usage:     "queue a SIRI-VM sample to be checked by the consumers",
				ArgsUsage: "<siri-vm file>",
				Flags:     feedFlags(),
				Action: func(c *cli.Context) error {
					path, err := fileArgument(c)
					if err != nil {
						return err
					}

					document, err := os.ReadFile(path)
					if err != nil {
						return err
					}

					if _, err := siri_vm.ParseBytes(document); err != nil {
						return err
					}

					if err := redis_client.Connect(); err != nil {
						return err
					}

					queue, err := redis_client.QueueConnection.OpenQueue(QueueName)
					if err != nil {
						return err
					}

					feed := Feed{ID: c.Int("feed-id"), Name: c.String("feed-name")}
					if err := SubmitToQueue(queue, feed, document); err != nil {
						return err
					}

					log.Info().Int("feed", feed.ID).Str("queue", QueueName).Msg("Submitted SIRI-VM sample")

					return nil
				},
			},
			{
				Name:  "consume",
				Usage: "run the queue consumers that check submitted samples",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "consumers",
						Value: 2,
						Usage: "number of queue consumers",
					},
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "listen address of the queue stats server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}

					ppcMetrics := metrics.New()
					redisConsumer := &consumer.RedisConsumer{
						QueueName:       QueueName,
						NumberConsumers: c.Int("consumers"),
						BatchSize:       5,
						Timeout:         2 * time.Second,
						Consumer: &BatchConsumer{
							Engine: &Engine{
								Matcher: &VehicleJourneyFinder{Source: NewCachedTimetableSource(NewMongoTimetableSource())},
								Metrics: ppcMetrics,
							},
							Store:   NewMongoReportStore(),
							Metrics: ppcMetrics,
						},
						StatsListen: c.String("stats-listen"),
					}

					redisConsumer.Setup()

					return nil
				},
			},
			{
				Name:  "weekly",
				Usage: "write the weekly zip report of a feed",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "feed-id",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "start",
						Usage:    "first day of the week (YYYY-MM-DD)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "end",
						Usage: "last day of the week (YYYY-MM-DD), defaults to six days after start",
					},
					&cli.StringFlag{
						Name:  "output",
						Value: "weekly_report.zip",
					},
				},
				Action: func(c *cli.Context) error {
					start, err := parseDateFlag(c, "start")
					if err != nil {
						return err
					}
					end := start.AddDate(0, 0, 6)
					if c.String("end") != "" {
						if end, err = parseDateFlag(c, "end"); err != nil {
							return err
						}
					}

					if err := database.Connect(); err != nil {
						return err
					}

					reports, err := NewMongoReportStore().DailyReports(c.Context, c.Int("feed-id"), start, end)
					if err != nil {
						return err
					}

					weekly := AggregateWeekly(reports)

					output, err := os.Create(c.String("output"))
					if err != nil {
						return err
					}
					defer output.Close()

					if err := weekly.WriteZip(output); err != nil {
						return err
					}

					log.Info().
						Int("feed", c.Int("feed-id")).
						Int("days", len(reports)).
						Int("analysed", weekly.VehicleActivitiesAnalysed).
						Str("output", c.String("output")).
						Msg("Wrote weekly report")

					return nil
				},
			},
		},
	}
}
