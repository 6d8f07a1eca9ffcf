package pumpd

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/mdouchement/logger"
)

var newMQTTClient = mqtt.NewClient

// telemetry mirrors the panel to a MQTT topic as a retained message.
type telemetry struct {
	client mqtt.Client
	topic  string
	log    logger.Logger
}

func newTelemetry(cfg MQTTConfig, log logger.Logger) *telemetry {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Infof("Connected to MQTT broker %s", cfg.Broker)
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.WithError(err).Error("MQTT connection lost")
	})

	return &telemetry{
		client: newMQTTClient(opts),
		topic:  cfg.Topic,
		log:    log,
	}
}

func (t *telemetry) Connect() {
	token := t.client.Connect()
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			t.log.WithError(err).Error("Could not connect to MQTT broker")
		}
	}()
}

// Publish drops the payload while the broker is unreachable.
func (t *telemetry) Publish(payload []byte) {
	if !t.client.IsConnectionOpen() {
		return
	}

	token := t.client.Publish(t.topic, 0, true, payload)
	go func() {
		if token.WaitTimeout(5*time.Second) && token.Error() != nil {
			t.log.WithError(token.Error()).Error(fmt.Sprintf("Could not publish on %s", t.topic))
		}
	}()
}

func (t *telemetry) Close() {
	t.client.Disconnect(250)
}
