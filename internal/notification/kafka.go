package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"gopkg.in/tomb.v2"
)

// KafkaQueue publishes jobs to a topic and consumes them in the same process.
// Several instances sharing a group ID split the work between them.
type KafkaQueue struct {
	writer    *kafka.Writer
	reader    *kafka.Reader
	deliverer Deliverer
	log       zerolog.Logger

	t       tomb.Tomb
	mu      sync.Mutex
	started bool
	stopped bool
}

func NewKafkaQueue(brokers []string, topic, groupID string, d Deliverer, logger zerolog.Logger) (*KafkaQueue, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka queue: KAFKA_BROKERS is empty")
	}
	if topic == "" {
		return nil, errors.New("kafka queue: topic is empty")
	}

	log := logger.With().Str("component", "notify-kafka").Str("topic", topic).Logger()
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error().Err(err).Int("messages", len(messages)).Msg("kafka write failed")
			}
		},
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	})

	return &KafkaQueue{writer: writer, reader: reader, deliverer: d, log: log}, nil
}

func (q *KafkaQueue) Name() string { return "kafka" }

// Enqueue hands the job to the async writer; failures surface in the
// writer's completion callback.
func (q *KafkaQueue) Enqueue(ctx context.Context, job Job) error {
	q.mu.Lock()
	stopped := q.stopped
	q.mu.Unlock()
	if stopped {
		return ErrQueueClosed
	}

	value, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode notification job: %w", err)
	}
	return q.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(fmt.Sprintf("party-%d", job.PartyID)),
		Value: value,
	})
}

func (q *KafkaQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.stopped {
		return
	}
	q.started = true
	q.t.Go(q.consume)
}

func (q *KafkaQueue) Stop() error {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return nil
	}
	q.stopped = true
	started := q.started
	q.mu.Unlock()

	werr := q.writer.Close()
	if started {
		q.t.Kill(nil)
		if err := q.t.Wait(); err != nil {
			q.log.Error().Err(err).Msg("kafka consumer stopped with error")
		}
	}
	rerr := q.reader.Close()
	return errors.Join(werr, rerr)
}

func (q *KafkaQueue) consume() error {
	ctx := q.t.Context(context.Background())
	for {
		msg, err := q.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			q.log.Error().Err(err).Msg("kafka fetch failed")
			select {
			case <-q.t.Dying():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		var job Job
		if err := json.Unmarshal(msg.Value, &job); err != nil {
			q.log.Error().Err(err).Int64("offset", msg.Offset).Msg("skipping malformed notification job")
		} else {
			if err := q.deliverer.Deliver(context.Background(), job); err != nil {
				q.log.Error().Err(err).Uint("party_id", job.PartyID).Msg("notification delivery failed")
			}
		}

		if err := q.reader.CommitMessages(context.Background(), msg); err != nil {
			q.log.Error().Err(err).Int64("offset", msg.Offset).Msg("kafka commit failed")
		}
	}
}
