package worker

import (
	"context"
	"log/slog"
	"sync"

	"contactbook/config"
	"contactbook/internal/delivery"
	"contactbook/internal/delivery/worker/handler"
	"contactbook/internal/errors"
	"contactbook/internal/infra/mq"

	"go.uber.org/fx"
)

type subscriber interface {
	Subscribe(ctx context.Context, queue string, handler mq.Handler) error
	Close() error
}

type queueConsumer struct {
	client    subscriber
	queue     string
	processor *handler.MailProcessor
	logger    *slog.Logger
	done      chan struct{}
	stopOnce  sync.Once
}

// ConsumerParams holds dependencies for the RabbitMQ consumer
type ConsumerParams struct {
	fx.In

	Lc        fx.Lifecycle
	Cfg       *config.Config
	Logger    *slog.Logger
	Processor *handler.MailProcessor
}

// ConsumerResult contributes the consumer to the deliveries group only when
// RabbitMQ is configured.
type ConsumerResult struct {
	fx.Out

	Deliveries []delivery.Delivery `group:"deliveries,flatten"`
}

func NewConsumer(params ConsumerParams) (ConsumerResult, error) {
	if params.Cfg.RabbitMQ == nil || params.Cfg.RabbitMQ.URL == "" {
		params.Logger.Info("RabbitMQ not configured, queue consumer disabled")

		return ConsumerResult{}, nil
	}

	client, err := mq.NewClient(params.Cfg.RabbitMQ)
	if err != nil {
		return ConsumerResult{}, err
	}

	consumer := newQueueConsumer(client, params.Cfg.RabbitMQ.Queue, params.Processor, params.Logger)
	params.Lc.Append(fx.Hook{
		OnStop: consumer.stop,
	})

	return ConsumerResult{Deliveries: []delivery.Delivery{consumer}}, nil
}

func newQueueConsumer(client subscriber, queue string, processor *handler.MailProcessor, logger *slog.Logger) *queueConsumer {
	return &queueConsumer{
		client:    client,
		queue:     queue,
		processor: processor,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Serve blocks until the consumer is stopped or the channel closes.
func (q *queueConsumer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-q.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	q.logger.Info("Starting RabbitMQ mail consumer", slog.String("queue", q.queue))

	err := q.client.Subscribe(ctx, q.queue, q.handle)
	if err != nil && !errors.Is(err, context.Canceled) {
		return errors.WithStack(err)
	}

	return nil
}

func (q *queueConsumer) handle(ctx context.Context, msg mq.Message) error {
	err := q.processor.Process(ctx, msg.Data, msg.Attributes)
	if err == nil {
		return nil
	}

	retryable := handler.IsRetryable(err)
	q.logger.Error("[Worker] Failed to deliver queued mail",
		slog.String("message_id", msg.ID),
		slog.Bool("retryable", retryable),
		slog.Any("error", err),
	)
	if retryable {
		return mq.Requeue(err)
	}

	return err
}

func (q *queueConsumer) stop(context.Context) error {
	q.logger.Info("Stopping RabbitMQ mail consumer")
	q.stopOnce.Do(func() { close(q.done) })

	return q.client.Close()
}
