package kafka

import (
	"context"
	"testing"
)

func TestUnconfiguredProducerIsNoop(t *testing.T) {
	for _, p := range []*Producer{
		NewProducer(nil, "helpdesk.events"),
		NewProducer([]string{"localhost:9092"}, ""),
	} {
		// Must not panic or block.
		p.ProduceSupportEvent(context.Background(), EventTicketCreated, map[string]interface{}{"ticket_id": 1})
		if err := p.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
}
