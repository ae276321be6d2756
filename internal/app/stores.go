package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/lol-companion/internal/config"
	"github.com/riskibarqy/lol-companion/internal/domain/match"
	"github.com/riskibarqy/lol-companion/internal/infrastructure/repository/dynamo"
	"github.com/riskibarqy/lol-companion/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/lol-companion/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/lol-companion/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

func newMemoryStore() match.Repository {
	return memory.NewMatchRepository()
}

func openPostgresStore(cfg config.Config, logger *logging.Logger) (match.Repository, func() error, error) {
	dsn := postgres.ConnString(cfg.DBURL, cfg.DBDisablePreparedBinary)
	dbName := postgres.DatabaseName(dsn)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(postgres.TraceQuery),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	otelsql.ReportDBStatsMetrics(db.DB)

	logger.Info("match store ready", "driver", config.StorePostgres, "db_name", dbName)
	return postgres.NewMatchRepository(db), db.Close, nil
}

func openDynamoStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (match.Repository, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
	repo := dynamo.NewMatchRepository(client, cfg.DynamoDBTable)

	if cfg.DynamoDBCreateTable {
		if err := repo.EnsureTable(ctx); err != nil {
			return nil, fmt.Errorf("ensure dynamodb table %s: %w", cfg.DynamoDBTable, err)
		}
	}

	logger.Info("match store ready",
		"driver", config.StoreDynamoDB,
		"table", cfg.DynamoDBTable,
		"endpoint", cfg.DynamoDBEndpoint,
	)
	return repo, nil
}
