package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/powerschedule/powerschedule/internal/config"
	"github.com/powerschedule/powerschedule/pkg/models"
)

// MQTTNotifier publishes notifications to an MQTT broker, one topic per
// queue number, for consumption by home automation setups.
type MQTTNotifier struct {
	client      mqtt.Client
	topicPrefix string
}

// NewMQTTNotifier connects to the broker from the given config.
func NewMQTTNotifier(cfg config.MQTTConfig) (*MQTTNotifier, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required")
	}

	topicPrefix := cfg.TopicPrefix
	if topicPrefix == "" {
		topicPrefix = "powerschedule"
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID("powerschedule")
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return &MQTTNotifier{client: client, topicPrefix: topicPrefix}, nil
}

type shutdownAlertPayload struct {
	QueueName   string `json:"queue_name"`
	QueueNumber string `json:"queue_number"`
	ShutdownAt  string `json:"shutdown_at"`
	Lead        string `json:"lead"`
}

type scheduleChangedPayload struct {
	QueueName   string `json:"queue_name"`
	QueueNumber string `json:"queue_number"`
}

func (n *MQTTNotifier) ShutdownAlert(queue models.PowerQueue, startClock, leadText string) error {
	return n.publish(fmt.Sprintf("%s/%s/shutdown_alert", n.topicPrefix, queue.QueueNumber),
		shutdownAlertPayload{
			QueueName:   queue.Name,
			QueueNumber: queue.QueueNumber,
			ShutdownAt:  startClock,
			Lead:        leadText,
		})
}

func (n *MQTTNotifier) ScheduleChanged(queue models.PowerQueue) error {
	return n.publish(fmt.Sprintf("%s/%s/schedule_changed", n.topicPrefix, queue.QueueNumber),
		scheduleChangedPayload{
			QueueName:   queue.Name,
			QueueNumber: queue.QueueNumber,
		})
}

func (n *MQTTNotifier) publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	if token := n.client.Publish(topic, 0, false, body); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publishing to %s: %w", topic, token.Error())
	}

	return nil
}

// Close disconnects from the MQTT broker
func (n *MQTTNotifier) Close() {
	if n.client != nil && n.client.IsConnected() {
		n.client.Disconnect(250)
	}
}
