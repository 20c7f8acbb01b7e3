package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

type ackRecorder struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (a *ackRecorder) Ack(uint64, bool) error { a.acked = true; return nil }
func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeued = true, requeue
	return nil
}
func (a *ackRecorder) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeued = true, requeue
	return nil
}

type fakeNotifier struct {
	err  error
	jobs []*model.Job
}

func (f *fakeNotifier) Send(_ context.Context, j *model.Job) error {
	f.jobs = append(f.jobs, j)
	return f.err
}

type retryCall struct {
	job   *model.Job
	delay time.Duration
}

type fakeQueue struct {
	err     error
	retries []retryCall
}

func (f *fakeQueue) Publish(context.Context, *model.Job) error { return f.err }
func (f *fakeQueue) PublishRetry(_ context.Context, j *model.Job, d time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.retries = append(f.retries, retryCall{job: j, delay: d})
	return nil
}

func newTestConsumer(n *fakeNotifier, q *fakeQueue) *Consumer {
	logger := zerolog.Nop()
	cfg := &config.Config{}
	cfg.Async.MaxAttempts = 3
	cfg.Async.RetryBase = time.Second
	return New(cfg, &logger, nil, q, n, nil)
}

func delivery(t *testing.T, j *model.Job, ack *ackRecorder) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(j)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body}
}

func TestNew_Defaults(t *testing.T) {
	logger := zerolog.Nop()
	c := New(&config.Config{}, &logger, nil, &fakeQueue{}, &fakeNotifier{}, nil)
	assert.Equal(t, defaultWorkerCount, c.workerCount)
	assert.Equal(t, defaultMaxAttempts, c.maxAttempts)
	assert.Equal(t, 5*time.Second, c.backoff(0))
	assert.Equal(t, 20*time.Second, c.backoff(2))
}

func TestHandleMessage_Success(t *testing.T) {
	n, q := &fakeNotifier{}, &fakeQueue{}
	c := newTestConsumer(n, q)
	ack := &ackRecorder{}

	j := model.NewEmailJob("a@b.test", "", "s", "b", false)
	c.handleMessage(context.Background(), delivery(t, j, ack), zerolog.Nop())

	assert.True(t, ack.acked)
	require.Len(t, n.jobs, 1)
	assert.Equal(t, j.ID, n.jobs[0].ID)
	assert.Empty(t, q.retries)
}

func TestHandleMessage_MalformedBodyIsRejected(t *testing.T) {
	n := &fakeNotifier{}
	c := newTestConsumer(n, &fakeQueue{})
	ack := &ackRecorder{}

	c.handleMessage(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("{")}, zerolog.Nop())

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeued)
	assert.Empty(t, n.jobs)
}

func TestHandleMessage_FailureSchedulesRetry(t *testing.T) {
	n, q := &fakeNotifier{err: errors.New("smtp down")}, &fakeQueue{}
	c := newTestConsumer(n, q)
	ack := &ackRecorder{}

	j := model.NewEmailJob("a@b.test", "", "s", "b", false)
	j.Attempts = 1
	c.handleMessage(context.Background(), delivery(t, j, ack), zerolog.Nop())

	assert.True(t, ack.acked)
	require.Len(t, q.retries, 1)
	assert.Equal(t, 2, q.retries[0].job.Attempts)
	assert.Equal(t, 4*time.Second, q.retries[0].delay)
}

func TestHandleMessage_DropsAfterMaxAttempts(t *testing.T) {
	n, q := &fakeNotifier{err: errors.New("smtp down")}, &fakeQueue{}
	c := newTestConsumer(n, q)
	ack := &ackRecorder{}

	j := model.NewEmailJob("a@b.test", "", "s", "b", false)
	j.Attempts = 2
	c.handleMessage(context.Background(), delivery(t, j, ack), zerolog.Nop())

	assert.True(t, ack.acked)
	assert.Empty(t, q.retries)
}

func TestHandleMessage_RetryPublishFailureRequeues(t *testing.T) {
	n, q := &fakeNotifier{err: errors.New("smtp down")}, &fakeQueue{err: errors.New("broker gone")}
	c := newTestConsumer(n, q)
	ack := &ackRecorder{}

	c.handleMessage(context.Background(), delivery(t, model.NewTelegramJob(1, "s", "b"), ack), zerolog.Nop())

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeued)
}

func TestStop_WithoutStart(t *testing.T) {
	c := newTestConsumer(&fakeNotifier{}, &fakeQueue{})
	assert.NoError(t, c.Stop(context.Background()))
}

type fakeChannel struct {
	deliveries chan amqp.Delivery
	closeOnce  sync.Once
}

func (f *fakeChannel) Qos(int, int, bool) error { return nil }
func (f *fakeChannel) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}
func (f *fakeChannel) Close() error { return nil }

// brokerClose closes the delivery stream the way amqp091 does when the channel dies.
func (f *fakeChannel) brokerClose() { f.closeOnce.Do(func() { close(f.deliveries) }) }

type fakeShutdowner struct {
	calls chan []fx.ShutdownOption
}

func (f *fakeShutdowner) Shutdown(opts ...fx.ShutdownOption) error {
	f.calls <- opts
	return nil
}

func startWithChannel(t *testing.T, workers int) (*Consumer, *fakeChannel, *fakeShutdowner) {
	t.Helper()
	logger := zerolog.Nop()
	cfg := &config.Config{}
	cfg.Async.Workers = workers
	sd := &fakeShutdowner{calls: make(chan []fx.ShutdownOption, workers)}
	c := New(cfg, &logger, nil, &fakeQueue{}, &fakeNotifier{}, sd)

	ch := &fakeChannel{deliveries: make(chan amqp.Delivery)}
	c.declare = func() error { return nil }
	c.openChannel = func() (channel, error) { return ch, nil }
	require.NoError(t, c.Start(context.Background()))
	return c, ch, sd
}

func TestConsumer_ShutsDownWhenChannelCloses(t *testing.T) {
	c, ch, sd := startWithChannel(t, 3)

	ch.brokerClose()

	select {
	case opts := <-sd.calls:
		assert.Len(t, opts, 1, "shutdown carries the exit code")
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not request shutdown after its channel closed")
	}
	require.NoError(t, c.Stop(context.Background()))
	assert.Empty(t, sd.calls, "shutdown is requested once")
}

func TestConsumer_StopDoesNotRequestShutdown(t *testing.T) {
	c, ch, sd := startWithChannel(t, 2)

	require.NoError(t, c.Stop(context.Background()))
	ch.brokerClose()

	assert.Empty(t, sd.calls)
}

func TestConsumer_StartFailsWhenTopologyFails(t *testing.T) {
	logger := zerolog.Nop()
	c := New(&config.Config{}, &logger, nil, &fakeQueue{}, &fakeNotifier{}, nil)
	c.declare = func() error { return errors.New("access refused") }

	assert.EqualError(t, c.Start(context.Background()), "access refused")
}
