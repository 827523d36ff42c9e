package redis_client

import (
	"context"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
	"github.com/travigo/dataquality/pkg/util"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

func Connect() error {
	env := util.GetEnvironmentVariables()

	address := util.EnvironmentString(env, "TRAVIGO_REDIS_ADDRESS", defaultConnectionAddress)
	password := util.EnvironmentString(env, "TRAVIGO_REDIS_PASSWORD", defaultConnectionPassword)

	database, err := util.EnvironmentInt(env, "TRAVIGO_REDIS_DATABASE", defaultDatabase)
	if err != nil {
		return err
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	statusCmd := Client.Ping(context.Background())
	if err := statusCmd.Err(); err != nil {
		return err
	}

	QueueConnection, err = rmq.OpenConnectionWithRedisClient("dataquality", Client, nil)
	if err != nil {
		return err
	}

	return nil
}
