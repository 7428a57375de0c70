package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/jgoulah/bikereport/internal/aggregate"
	"github.com/jgoulah/bikereport/internal/config"
	"github.com/jgoulah/bikereport/internal/logger"
	"github.com/jgoulah/bikereport/pkg/models"
)

// Topic suffixes under the configured prefix
const (
	TopicWeather = "weather"
	TopicWeekend = "weekend"
	TopicDaily   = "daily"
)

// Publisher sends aggregate tables to an MQTT broker for dashboards to pick up
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
	timeout     time.Duration
	log         logger.Logger
}

// New creates a publisher connected to the configured broker
func New(cfg config.MQTTConfig, log logger.Logger) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("MQTT publishing is not enabled in config")
	}
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID(cfg.GetClientID())
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(false)
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

	return NewWithClient(client, cfg.GetTopicPrefix(), log), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client mqtt.Client, topicPrefix string, log logger.Logger) *Publisher {
	return &Publisher{
		client:      client,
		topicPrefix: topicPrefix,
		timeout:     10 * time.Second,
		log:         log,
	}
}

// Envelope is the retained JSON message published for each aggregate
type Envelope struct {
	RunID       string      `json:"run_id"`
	GeneratedAt string      `json:"generated_at"`
	Source      string      `json:"source"`
	Kind        string      `json:"kind"`
	Rows        interface{} `json:"rows"`
}

type weatherPayload struct {
	Weathersit int     `json:"weathersit"`
	Label      string  `json:"label"`
	Cnt        float64 `json:"cnt"`
	Days       int     `json:"days"`
}

type weekendPayload struct {
	IsWeekend int     `json:"is_weekend"`
	Label     string  `json:"label"`
	Cnt       float64 `json:"cnt"`
	Days      int     `json:"days"`
}

type dailyPayload struct {
	Date string `json:"date"`
	Cnt  int    `json:"cnt"`
}

// Message is one encoded topic/payload pair
type Message struct {
	Topic   string
	Payload []byte
}

// Encode builds the messages for every aggregation that succeeded
func Encode(topicPrefix, source string, r *aggregate.Result, now time.Time) ([]Message, error) {
	runID := uuid.NewString()
	envelope := func(kind string, rows interface{}) Envelope {
		return Envelope{
			RunID:       runID,
			GeneratedAt: now.UTC().Format(time.RFC3339),
			Source:      source,
			Kind:        kind,
			Rows:        rows,
		}
	}

	var envelopes []Envelope
	if r.WeatherErr == nil {
		envelopes = append(envelopes, envelope(TopicWeather, weatherRows(r.Weather)))
	}
	if r.WeekendErr == nil {
		envelopes = append(envelopes, envelope(TopicWeekend, weekendRows(r.Weekend)))
	}
	if r.DailyErr == nil {
		envelopes = append(envelopes, envelope(TopicDaily, dailyRows(r.Daily)))
	}

	messages := make([]Message, 0, len(envelopes))
	for _, e := range envelopes {
		body, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("encoding %s payload: %w", e.Kind, err)
		}
		messages = append(messages, Message{
			Topic:   fmt.Sprintf("%s/%s", topicPrefix, e.Kind),
			Payload: body,
		})
	}
	return messages, nil
}

// Publish sends every successful aggregation as a retained message and
// returns how many were delivered
func (p *Publisher) Publish(source string, r *aggregate.Result) (int, error) {
	messages, err := Encode(p.topicPrefix, source, r, time.Now())
	if err != nil {
		return 0, err
	}

	published := 0
	for _, m := range messages {
		token := p.client.Publish(m.Topic, 1, true, m.Payload)
		if !token.WaitTimeout(p.timeout) {
			return published, fmt.Errorf("publishing to %s: timed out after %s", m.Topic, p.timeout)
		}
		if err := token.Error(); err != nil {
			return published, fmt.Errorf("publishing to %s: %w", m.Topic, err)
		}
		p.log.WithField("topic", m.Topic).Debugf("published %d bytes", len(m.Payload))
		published++
	}
	return published, nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

func weatherRows(agg models.WeatherAggregate) []weatherPayload {
	rows := make([]weatherPayload, 0, len(agg))
	for _, row := range agg {
		rows = append(rows, weatherPayload{
			Weathersit: row.Weathersit,
			Label:      models.WeatherLabel(row.Weathersit),
			Cnt:        row.Cnt,
			Days:       row.Days,
		})
	}
	return rows
}

func weekendRows(agg models.WeekendAggregate) []weekendPayload {
	rows := make([]weekendPayload, 0, len(agg))
	for _, row := range agg {
		flag := 0
		if row.IsWeekend {
			flag = 1
		}
		rows = append(rows, weekendPayload{
			IsWeekend: flag,
			Label:     models.DayTypeLabel(row.IsWeekend),
			Cnt:       row.Cnt,
			Days:      row.Days,
		})
	}
	return rows
}

func dailyRows(agg models.DailyTotal) []dailyPayload {
	rows := make([]dailyPayload, 0, len(agg))
	for _, row := range agg {
		rows = append(rows, dailyPayload{Date: row.Date.Format("2006-01-02"), Cnt: row.Cnt})
	}
	return rows
}
