package dataquality

import (
	"context"
	"errors"
	"fmt"

	"github.com/travigo/dataquality/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrReportNotFound = errors.New("data quality report not found")
var ErrSummaryNotFound = errors.New("data quality report summary not found")
var ErrRevisionNotFound = errors.New("dataset revision not found")

type reportSummaryDocument struct {
	ReportID int            `bson:"report_id"`
	Counts   map[string]int `bson:"counts"`
}

type revisionDocument struct {
	ID            int `bson:"id"`
	NumberOfLines int `bson:"num_of_lines"`
	NumberOfStops int `bson:"num_of_bus_stops"`
}

// MongoStore reads reports, summaries and revisions from mongo and stores calculated scores
type MongoStore struct {
	Reports         *mongo.Collection
	Summaries       *mongo.Collection
	Revisions       *mongo.Collection
	Services        *mongo.Collection
	TimingPatterns  *mongo.Collection
	VehicleJourneys *mongo.Collection
}

func NewMongoStore() *MongoStore {
	return &MongoStore{
		Reports:         database.GetCollection(database.ReportsCollection),
		Summaries:       database.GetCollection(database.ReportSummariesCollection),
		Revisions:       database.GetCollection(database.RevisionsCollection),
		Services:        database.GetCollection(database.ServicesCollection),
		TimingPatterns:  database.GetCollection(database.TimingPatternsCollection),
		VehicleJourneys: database.GetCollection(database.VehicleJourneysCollection),
	}
}

func (s *MongoStore) Report(ctx context.Context, reportID int) (*Report, error) {
	var report *Report

	err := s.Reports.FindOne(ctx, bson.M{"id": reportID}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %d", ErrReportNotFound, reportID)
	} else if err != nil {
		return nil, err
	}

	return report, nil
}

// AllReports returns every report, optionally only those that have not been scored yet
func (s *MongoStore) AllReports(ctx context.Context, unscoredOnly bool) ([]*Report, error) {
	filter := bson.M{}
	if unscoredOnly {
		filter = bson.M{"$or": bson.A{
			bson.M{"score": bson.M{"$lte": 0}},
			bson.M{"score": bson.M{"$exists": false}},
		}}
	}

	cursor, err := s.Reports.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var reports []*Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}

func (s *MongoStore) SaveScore(ctx context.Context, reportID int, score float64) error {
	result, err := s.Reports.UpdateOne(ctx, bson.M{"id": reportID}, bson.M{"$set": bson.M{"score": score}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %d", ErrReportNotFound, reportID)
	}

	return nil
}

func (s *MongoStore) ReportSummary(ctx context.Context, reportID int) (map[string]int, error) {
	var summary reportSummaryDocument

	err := s.Summaries.FindOne(ctx, bson.M{"report_id": reportID}).Decode(&summary)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %d", ErrSummaryNotFound, reportID)
	} else if err != nil {
		return nil, err
	}

	if summary.Counts == nil {
		return map[string]int{}, nil
	}

	return summary.Counts, nil
}

func (s *MongoStore) RevisionCounts(ctx context.Context, reportID int) (RevisionCounts, error) {
	report, err := s.Report(ctx, reportID)
	if err != nil {
		return RevisionCounts{}, err
	}

	var revision revisionDocument
	err = s.Revisions.FindOne(ctx, bson.M{"id": report.Revision}).Decode(&revision)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return RevisionCounts{}, fmt.Errorf("%w: %d", ErrRevisionNotFound, report.Revision)
	} else if err != nil {
		return RevisionCounts{}, err
	}

	serviceIDs, err := s.Services.Distinct(ctx, "id", reportServicesFilter(reportID))
	if err != nil {
		return RevisionCounts{}, err
	}

	timingPatternIDs, err := s.distinctIDs(ctx, s.TimingPatterns, "service_id", serviceIDs)
	if err != nil {
		return RevisionCounts{}, err
	}

	vehicleJourneyIDs, err := s.distinctIDs(ctx, s.VehicleJourneys, "timing_pattern_id", timingPatternIDs)
	if err != nil {
		return RevisionCounts{}, err
	}

	return RevisionCounts{
		NumberOfLines:   revision.NumberOfLines,
		NumberOfStops:   revision.NumberOfStops,
		TimingPatterns:  len(timingPatternIDs),
		VehicleJourneys: len(vehicleJourneyIDs),
	}, nil
}

// distinctIDs returns the ids of documents whose parent field is one of parentIDs
func (s *MongoStore) distinctIDs(ctx context.Context, collection *mongo.Collection, parentField string, parentIDs []any) ([]any, error) {
	if len(parentIDs) == 0 {
		return []any{}, nil
	}

	return collection.Distinct(ctx, "id", parentFilter(parentField, parentIDs))
}

// Timing patterns and vehicle journeys are reached through the services linked to a report
func reportServicesFilter(reportID int) bson.M {
	return bson.M{"report_ids": reportID}
}

func parentFilter(parentField string, parentIDs []any) bson.M {
	return bson.M{parentField: bson.M{"$in": parentIDs}}
}
