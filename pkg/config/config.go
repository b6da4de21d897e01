package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port                string        `envconfig:"PORT" default:"8080"`
	LogLevel            string        `envconfig:"LOG_LEVEL" default:"info"`
	AWSRegion           string        `envconfig:"AWS_REGION" default:"eu-west-2"`
	CheckoutTableName   string        `envconfig:"CHECKOUT_TABLE_NAME" default:"checkout-activations"`
	DynamoDBEndpoint    string        `envconfig:"DYNAMODB_ENDPOINT" default:""` // DynamoDB Local endpoint
	KafkaBrokers        string        `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	OrderServiceURL     string        `envconfig:"ORDER_SERVICE_URL" default:"http://localhost:8081"`
	PaymentServiceURL   string        `envconfig:"PAYMENT_SERVICE_URL" default:"http://localhost:8082"`
	EntityServiceURL    string        `envconfig:"ENTITY_SERVICE_URL" default:"http://localhost:8083"`
	AuthServiceURL      string        `envconfig:"AUTH_SERVICE_URL" default:"http://localhost:8084"`
	UpstreamTimeout     time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
