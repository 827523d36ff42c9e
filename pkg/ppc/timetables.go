package ppc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/dataquality/pkg/database"
	"github.com/travigo/dataquality/pkg/redis_client"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrTimetableNotFound = errors.New("timetable document not found")

// TimetableFile is the attributes of a published TransXChange file
type TimetableFile struct {
	DatasetID            int      `bson:"dataset_id" json:"dataset_id"`
	RevisionID           int      `bson:"revision_id" json:"revision_id"`
	FileName             string   `bson:"filename" json:"filename"`
	NationalOperatorCode string   `bson:"national_operator_code" json:"national_operator_code"`
	LineNames            []string `bson:"line_names" json:"line_names"`
	ServiceCode          string   `bson:"service_code" json:"service_code"`
}

type TimetableSource interface {
	TimetableFiles(ctx context.Context, noc string, lineName string) ([]TimetableFile, error)
	TimetableDocument(ctx context.Context, file TimetableFile) ([]byte, error)
}

// MongoTimetableSource reads file attributes and the raw documents from the txc_file_attributes collection
type MongoTimetableSource struct {
	Files *mongo.Collection
}

func NewMongoTimetableSource() *MongoTimetableSource {
	return &MongoTimetableSource{
		Files: database.GetCollection(database.TXCFilesCollection),
	}
}

func (s *MongoTimetableSource) TimetableFiles(ctx context.Context, noc string, lineName string) ([]TimetableFile, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "content", Value: 0}})

	cursor, err := s.Files.Find(ctx, bson.M{"national_operator_code": noc, "line_names": lineName}, opts)
	if err != nil {
		return nil, err
	}

	files := []TimetableFile{}
	if err := cursor.All(ctx, &files); err != nil {
		return nil, err
	}

	return files, nil
}

func (s *MongoTimetableSource) TimetableDocument(ctx context.Context, file TimetableFile) ([]byte, error) {
	var document struct {
		Content string `bson:"content"`
	}

	opts := options.FindOne().SetProjection(bson.D{{Key: "content", Value: 1}})
	err := s.Files.FindOne(ctx, bson.M{"revision_id": file.RevisionID, "filename": file.FileName}, opts).Decode(&document)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrTimetableNotFound, file.FileName)
	} else if err != nil {
		return nil, err
	}

	return []byte(document.Content), nil
}

// StringCache is the subset of a gocache cache the timetable cache needs
type StringCache interface {
	Get(ctx context.Context, key any) (string, error)
	Set(ctx context.Context, key any, object string, options ...store.Option) error
}

// CachedTimetableSource keeps file lookups and documents in redis so repeated
// activities for the same line do not go back to mongo
type CachedTimetableSource struct {
	Source TimetableSource
	Cache  StringCache
}

const noTimetableFiles = "N/A"

func NewCachedTimetableSource(source TimetableSource) *CachedTimetableSource {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(90*time.Minute))

	return &CachedTimetableSource{
		Source: source,
		Cache:  cache.New[string](redisStore),
	}
}

func (c *CachedTimetableSource) TimetableFiles(ctx context.Context, noc string, lineName string) ([]TimetableFile, error) {
	cacheKey := fmt.Sprintf("ppc/timetablefiles/%s/%s", noc, lineName)

	cacheValue, err := c.Cache.Get(ctx, cacheKey)
	if err == nil {
		if cacheValue == noTimetableFiles {
			return []TimetableFile{}, nil
		}

		var files []TimetableFile
		if err := json.Unmarshal([]byte(cacheValue), &files); err == nil {
			return files, nil
		}
	}

	files, err := c.Source.TimetableFiles(ctx, noc, lineName)
	if err != nil {
		return nil, err
	}

	cacheValue, err = encodeTimetableFiles(files)
	if err != nil {
		log.Debug().Err(err).Str("key", cacheKey).Msg("Failed to encode timetable files")
		return files, nil
	}

	if err := c.Cache.Set(ctx, cacheKey, cacheValue); err != nil {
		log.Debug().Err(err).Str("key", cacheKey).Msg("Failed to cache timetable files")
	}

	return files, nil
}

func encodeTimetableFiles(files []TimetableFile) (string, error) {
	if len(files) == 0 {
		return noTimetableFiles, nil
	}

	filesJSON, err := json.Marshal(files)
	if err != nil {
		return "", err
	}

	return string(filesJSON), nil
}

func (c *CachedTimetableSource) TimetableDocument(ctx context.Context, file TimetableFile) ([]byte, error) {
	cacheKey := fmt.Sprintf("ppc/timetable/%d/%s", file.RevisionID, file.FileName)

	if cacheValue, err := c.Cache.Get(ctx, cacheKey); err == nil {
		return []byte(cacheValue), nil
	}

	document, err := c.Source.TimetableDocument(ctx, file)
	if err != nil {
		return nil, err
	}

	if err := c.Cache.Set(ctx, cacheKey, string(document)); err != nil {
		log.Debug().Err(err).Str("key", cacheKey).Msg("Failed to cache timetable document")
	}

	return document, nil
}
