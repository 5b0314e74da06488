package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"deliveryops/internal/adapters/out/dynamo/orderrepo"
	"deliveryops/internal/adapters/out/kafka/analytics"
	"deliveryops/internal/core/application/usecases/commands"
	"deliveryops/internal/core/application/usecases/queries"
	"deliveryops/internal/jobs"
)

// DefaultBulkConcurrency bounds how many bulk items run in flight when the
// configuration does not say otherwise.
const DefaultBulkConcurrency = 4

type CompositionRoot struct {
	config Config
	logger *slog.Logger

	dynamoClient       *dynamodb.Client
	orderRepository    *orderrepo.DynamoOrderRepository
	analyticsPublisher *analytics.KafkaAnalyticsPublisher
}

func NewCompositionRoot(config Config) (CompositionRoot, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(config.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AWSAccessKeyID, config.AWSSecretAccessKey, ""),
		),
	)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("load AWS configuration: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg)
	writer := analytics.NewWriter(config.KafkaHost, config.KafkaAnalyticsTopic)

	return CompositionRoot{
		config:             config,
		logger:             slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		dynamoClient:       dynamoClient,
		orderRepository:    orderrepo.NewDynamoOrderRepository(dynamoClient, config.OrdersTable),
		analyticsPublisher: analytics.NewKafkaAnalyticsPublisher(writer),
	}, nil
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.orderRepository, c.analyticsPublisher, c.logger)
}

func (c *CompositionRoot) CreateBulkDeliverCommandHandler() commands.BulkDeliverCommandHandler {
	concurrency := DefaultBulkConcurrency
	if c.config.BulkConcurrency != "" {
		parsed, err := strconv.Atoi(c.config.BulkConcurrency)
		if err != nil {
			c.logger.Warn("invalid BULK_CONCURRENCY value, using default",
				"value", c.config.BulkConcurrency,
				"default", DefaultBulkConcurrency,
			)
		} else {
			concurrency = parsed
		}
	}

	return commands.NewBulkDeliverCommandHandler(c.CreateDeliverOrderCommandHandler(), concurrency)
}

func (c *CompositionRoot) CreateGetDeliveryStatusQueryHandler() queries.GetDeliveryStatusQueryHandler {
	return queries.NewGetDeliveryStatusQueryHandler(
		c.dynamoClient,
		c.config.OrdersTable,
		orderrepo.OrderIDIndexName,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.orderRepository, c.logger)
}

// Close releases the external connections held by the root.
func (c *CompositionRoot) Close() error {
	return c.analyticsPublisher.Close()
}
