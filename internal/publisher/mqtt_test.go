package publisher

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoulah/bikereport/internal/aggregate"
	"github.com/jgoulah/bikereport/internal/config"
	"github.com/jgoulah/bikereport/internal/logger"
	"github.com/jgoulah/bikereport/pkg/models"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (t *fakeToken) Error() error                   { return t.err }

type sent struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// fakeClient records publishes; other mqtt.Client methods are not used
type fakeClient struct {
	mqtt.Client
	sent      []sent
	failTopic string
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	if topic == c.failTopic {
		return &fakeToken{err: errors.New("not authorized")}
	}
	c.sent = append(c.sent, sent{topic, qos, retained, payload.([]byte)})
	return &fakeToken{}
}

func sampleResult() *aggregate.Result {
	return &aggregate.Result{
		Weather: models.WeatherAggregate{{Weathersit: 1, Cnt: 75, Days: 2}},
		Weekend: models.WeekendAggregate{{IsWeekend: false, Cnt: 75, Days: 2}},
		Daily:   models.DailyTotal{{Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Cnt: 150}},
	}
}

func TestEncode(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	messages, err := Encode("bike_rentals", "data/day.csv", sampleResult(), now)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	assert.Equal(t, "bike_rentals/weather", messages[0].Topic)
	assert.Equal(t, "bike_rentals/weekend", messages[1].Topic)
	assert.Equal(t, "bike_rentals/daily", messages[2].Topic)

	var weather struct {
		Envelope
		Rows []weatherPayload `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(messages[0].Payload, &weather))
	assert.Equal(t, "2024-05-01T12:00:00Z", weather.GeneratedAt)
	assert.Equal(t, "data/day.csv", weather.Source)
	assert.Equal(t, []weatherPayload{{Weathersit: 1, Label: "Clear", Cnt: 75, Days: 2}}, weather.Rows)

	var daily struct {
		RunID string         `json:"run_id"`
		Rows  []dailyPayload `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(messages[2].Payload, &daily))
	assert.Equal(t, []dailyPayload{{Date: "2023-01-01", Cnt: 150}}, daily.Rows)
	assert.Equal(t, weather.RunID, daily.RunID)
	assert.NotEmpty(t, daily.RunID)
}

func TestEncodeSkipsFailedAggregation(t *testing.T) {
	r := sampleResult()
	r.WeekendErr = errors.New("bad weekday")

	messages, err := Encode("p", "src", r, time.Now())
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "p/weather", messages[0].Topic)
	assert.Equal(t, "p/daily", messages[1].Topic)
}

func TestPublish(t *testing.T) {
	client := &fakeClient{}
	pub := NewWithClient(client, "bike_rentals", logger.Discard())

	n, err := pub.Publish("data/day.csv", sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.Len(t, client.sent, 3)
	for _, s := range client.sent {
		assert.Equal(t, byte(1), s.qos)
		assert.True(t, s.retained)
	}
}

func TestPublishError(t *testing.T) {
	client := &fakeClient{failTopic: "bike_rentals/weekend"}
	pub := NewWithClient(client, "bike_rentals", logger.Discard())

	n, err := pub.Publish("data/day.csv", sampleResult())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bike_rentals/weekend")
	assert.Equal(t, 1, n)
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(config.MQTTConfig{}, logger.Discard())
	assert.EqualError(t, err, "MQTT publishing is not enabled in config")

	_, err = New(config.MQTTConfig{Enabled: true}, logger.Discard())
	assert.EqualError(t, err, "MQTT broker address is required when enabled")
}
