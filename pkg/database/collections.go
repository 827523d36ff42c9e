package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ReportsCollection         = "data_quality_reports"
	ReportSummariesCollection = "data_quality_report_summaries"
	RevisionsCollection       = "dataset_revisions"
	ServicesCollection        = "data_quality_services"
	TimingPatternsCollection  = "timing_patterns"
	VehicleJourneysCollection = "vehicle_journeys"
	TXCFilesCollection        = "txc_file_attributes"
	PPCReportsCollection      = "ppc_daily_reports"
)

func createIndexes() {
	createDataQualityIndexes()
	createTimetableIndexes()
	createPPCIndexes()
}

func createManyIndexes(collectionName string, indexes []mongo.IndexModel) {
	collection := GetCollection(collectionName)

	_, err := collection.Indexes().CreateMany(context.Background(), indexes, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Str("collection", collectionName).Msg("Creating Index")
	}
}

func createDataQualityIndexes() {
	createManyIndexes(ReportsCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "revision_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "score", Value: 1}},
		},
	})

	createManyIndexes(ReportSummariesCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "report_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}

func createTimetableIndexes() {
	createManyIndexes(RevisionsCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	createManyIndexes(ServicesCollection, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "report_ids", Value: 1}},
		},
	})

	createManyIndexes(TimingPatternsCollection, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "service_id", Value: 1}},
		},
	})

	createManyIndexes(VehicleJourneysCollection, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "timing_pattern_id", Value: 1}},
		},
	})

	createManyIndexes(TXCFilesCollection, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "national_operator_code", Value: 1},
				{Key: "line_names", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "revision_id", Value: 1}},
		},
	})
}

func createPPCIndexes() {
	createManyIndexes(PPCReportsCollection, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "feed.id", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	})
}
