//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"journal-service/internal/journal/events"
	"journal-service/internal/journal/models"
	"journal-service/internal/platform/kafka"
	id "journal-service/pkg/domain"
	"journal-service/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	producer *kgo.Client
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
	client, err := kafka.NewClient(s.redpanda.Brokers)
	s.Require().NoError(err)
	s.producer = client
}

func (s *KafkaPublisherSuite) TearDownSuite() {
	s.producer.Close()
}

func (s *KafkaPublisherSuite) TestPublishKeysByJournalID() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	topic := "journal.events.publish"
	s.Require().NoError(kafka.EnsureTopic(ctx, s.producer, topic, 1))

	journal := &models.Journal{ID: id.NewJournalID(), Name: "Fancy Journal", ISSNs: []string{"Online:0000-0002"}}
	publisher := events.NewKafkaPublisher(s.producer, topic)
	s.Require().NoError(publisher.Publish(ctx, events.New(ctx, events.ActionJournalCreated, journal)))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())

	records := fetches.Records()
	s.Require().Len(records, 1)
	s.Equal(journal.ID.String(), string(records[0].Key))

	var got events.Event
	s.Require().NoError(json.Unmarshal(records[0].Value, &got))
	s.Equal(events.ActionJournalCreated, got.Action)
	s.Equal(journal.ISSNs, got.ISSNs)
}
