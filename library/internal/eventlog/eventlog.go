package eventlog

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Astemirdum/elibrary-service/pkg/circuit_breaker"
	"github.com/Astemirdum/elibrary-service/pkg/kafka"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Publisher sends domain events once the change they describe is committed.
// Publishing is best-effort: a failure never undoes the change.
type Publisher interface {
	Publish(ev kafka.Event) error
	Close() error
}

var ErrEnqueueTimeout = errors.New("event queue is full")

const enqueueTimeout = 200 * time.Millisecond

type eventLog struct {
	producer sarama.AsyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
	wg       sync.WaitGroup
}

func New(producer sarama.AsyncProducer, topic string, log *zap.Logger) *eventLog {
	l := &eventLog{
		producer: producer,
		topic:    topic,
		cb:       circuit_breaker.New(100, 10*time.Second, 0.5, 5),
		log:      log.Named("eventlog"),
	}
	l.wg.Add(1)
	go l.drainErrors()
	return l
}

func (l *eventLog) drainErrors() {
	defer l.wg.Done()
	for perr := range l.producer.Errors() {
		l.log.Warn("deliver event", zap.String("topic", perr.Msg.Topic), zap.Error(perr.Err))
	}
}

func (l *eventLog) Publish(ev kafka.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: l.topic,
		Key:   sarama.StringEncoder(ev.UserID),
		Value: sarama.ByteEncoder(data),
	}
	err = l.cb.Call(func() error {
		select {
		case l.producer.Input() <- msg:
			return nil
		case <-time.After(enqueueTimeout):
			return ErrEnqueueTimeout
		}
	})
	if err != nil {
		l.log.Warn("publish event", zap.String("type", string(ev.EventType)), zap.Error(err))
	}
	return err
}

// Close flushes buffered events and waits for the error channel to drain.
func (l *eventLog) Close() error {
	err := l.producer.Close()
	l.wg.Wait()
	return err
}

type nop struct{}

// Nop drops every event. Used when kafka is disabled.
func Nop() Publisher { return nop{} }

func (nop) Publish(kafka.Event) error { return nil }

func (nop) Close() error { return nil }
