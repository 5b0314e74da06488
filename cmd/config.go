package cmd

type Config struct {
	HTTPPort            string
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	OrdersTable         string
	KafkaHost           string
	KafkaAnalyticsTopic string
	BulkConcurrency     string
}
