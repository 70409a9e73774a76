package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs  []string `yaml:"addrs" envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
	Enable bool     `yaml:"enable" envconfig:"KAFKA_ENABLE"`
	Topic  string   `yaml:"topic" envconfig:"KAFKA_TOPIC" default:"library-events"`
}

type EventType string

const (
	EventBookBorrowed      EventType = "BOOK_BORROWED"
	EventBookReturned      EventType = "BOOK_RETURNED"
	EventPrintoutCreated   EventType = "PRINTOUT_CREATED"
	EventPrintoutPaid      EventType = "PRINTOUT_PAID"
	EventPrintoutStatus    EventType = "PRINTOUT_STATUS_CHANGED"
	EventPrintoutCancelled EventType = "PRINTOUT_CANCELLED"
)

type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	EventType  EventType `json:"eventType"`
	UserID     string    `json:"userId"`
	BookID     string    `json:"bookId,omitempty"`
	PrintoutID string    `json:"printoutId,omitempty"`
	Status     string    `json:"status,omitempty"`
	Amount     int64     `json:"amount,omitempty"`
}

func NewAsyncProducer(cfg Config) (sarama.AsyncProducer, error) {
	return sarama.NewAsyncProducer(cfg.Addrs, producerConfig())
}

func producerConfig() *sarama.Config {
	defaultCfg := sarama.NewConfig()
	defaultCfg.Producer.RequiredAcks = sarama.WaitForLocal
	defaultCfg.Producer.Return.Successes = false
	defaultCfg.Producer.Return.Errors = true
	defaultCfg.Producer.Retry.Max = 3
	defaultCfg.Producer.Flush.Frequency = 100 * time.Millisecond
	return defaultCfg
}
