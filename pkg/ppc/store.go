package ppc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/travigo/dataquality/pkg/database"
	"github.com/travigo/dataquality/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDailyReportNotFound = errors.New("daily report not found")
var ErrDailyReportExists = errors.New("daily report already exists")

type ReportStore interface {
	SaveDailyReport(ctx context.Context, report *DailyReport) error
	DailyReport(ctx context.Context, feedID int, date time.Time) (*DailyReport, error)
	DailyReports(ctx context.Context, feedID int, start time.Time, end time.Time) ([]*DailyReport, error)
}

type MongoReportStore struct {
	Reports *mongo.Collection
}

func NewMongoReportStore() *MongoReportStore {
	return &MongoReportStore{
		Reports: database.GetCollection(database.PPCReportsCollection),
	}
}

// SaveDailyReport stores the report unless one already exists for the feed on that day
func (s *MongoReportStore) SaveDailyReport(ctx context.Context, report *DailyReport) error {
	filter := bson.M{"feed.id": report.Feed.ID, "date": report.Date}
	opts := options.Update().SetUpsert(true)

	result, err := s.Reports.UpdateOne(ctx, filter, bson.M{"$setOnInsert": report}, opts)
	if err != nil {
		return err
	}

	if result.UpsertedCount == 0 {
		return fmt.Errorf("%w: feed %d on %s", ErrDailyReportExists, report.Feed.ID, report.Date.Format(util.YearMonthDayFormat))
	}

	return nil
}

func (s *MongoReportStore) DailyReport(ctx context.Context, feedID int, date time.Time) (*DailyReport, error) {
	var report *DailyReport

	day := util.TruncateToDate(date)
	err := s.Reports.FindOne(ctx, bson.M{"feed.id": feedID, "date": day}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: feed %d on %s", ErrDailyReportNotFound, feedID, day.Format(util.YearMonthDayFormat))
	} else if err != nil {
		return nil, err
	}

	return report, nil
}

// DailyReports returns the reports of the feed between the dates inclusive, oldest first
func (s *MongoReportStore) DailyReports(ctx context.Context, feedID int, start time.Time, end time.Time) ([]*DailyReport, error) {
	filter := bson.M{
		"feed.id": feedID,
		"date": bson.M{
			"$gte": util.TruncateToDate(start),
			"$lte": util.TruncateToDate(end),
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := s.Reports.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	reports := []*DailyReport{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}
