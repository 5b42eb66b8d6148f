package stack

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/settings"
	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var settingsData = settings.GetSettings()
var singleNatsInstance *NatsClient

type NatsClient struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func newConnection() *nats.Conn {
	var conn *nats.Conn

	operation := func() error {
		var err error
		conn, err = nats.Connect(
			fmt.Sprintf("nats://%s:4222", settingsData.NATS_HOST),
			nats.MaxReconnects(-1),
			nats.ReconnectWait(time.Second*2),
		)
		return err
	}
	if err := backoff.Retry(operation, backoff.NewExponentialBackOff()); err != nil {
		panic(err)
	}
	return conn
}

func (nc *NatsClient) Publish(subject string, data []byte) error {
	return nc.conn.Publish(subject, data)
}

// PublishEncode marshals data to JSON before publishing
func (nc *NatsClient) PublishEncode(subject string, data interface{}) error {
	message, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return nc.conn.Publish(subject, message)
}

func (nc *NatsClient) Subscribe(subject string, handler func(m *nats.Msg)) (*nats.Subscription, error) {
	sub, err := nc.conn.Subscribe(subject, handler)
	if err != nil {
		nc.logger.Error(
			"Could not subscribe to subject",
			zap.String("subject", subject),
			zap.Error(err),
		)
		return nil, err
	}
	return sub, nil
}

// Queue subscribe so horizontally scaled gateways split the work only when
// the subject is a work queue. Room fan-out uses plain Subscribe
func (nc *NatsClient) QueueSubscribe(
	subject,
	queue string,
	handler func(m *nats.Msg),
) (*nats.Subscription, error) {
	return nc.conn.QueueSubscribe(subject, queue, handler)
}

func (nc *NatsClient) Request(subject string, data []byte) (*nats.Msg, error) {
	return nc.conn.Request(subject, data, time.Second*5)
}

// DecodeJSON unmarshals a message payload into out
func (nc *NatsClient) DecodeJSON(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}

func NewNats() *NatsClient {
	if singleNatsInstance == nil {
		logger, _ := zap.NewProduction()
		singleNatsInstance = &NatsClient{
			conn:   newConnection(),
			logger: logger,
		}
	}
	return singleNatsInstance
}
