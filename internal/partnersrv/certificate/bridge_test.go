package certificate

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/pkg/types"
)

func testRequest() Request {
	return Request{
		Type:      types.CertificatePersonal,
		EntityID:  uuid.New(),
		Name:      "Jane Doe",
		Tier:      types.TierPremium,
		IssueDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestBridgePublishSubscribe(t *testing.T) {
	bridge := NewBridge(prometheus.NewRegistry(), zerolog.Nop())
	defer bridge.Stop()

	subId, ch := bridge.Subscribe(EventCertificateRequested)
	defer bridge.Unsubscribe(EventCertificateRequested, subId)

	req := testRequest()
	bridge.Publish(NewEvent(EventCertificateRequested, req))

	select {
	case evt := <-ch:
		assert.Equal(t, EventCertificateRequested, evt.Type)
		assert.Equal(t, req, evt.Request)
		assert.False(t, evt.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBridgeMultipleSubscribersEachReceive(t *testing.T) {
	bridge := NewBridge(nil, zerolog.Nop())
	defer bridge.Stop()

	_, ch1 := bridge.Subscribe(EventCertificateRequested)
	_, ch2 := bridge.Subscribe(EventCertificateRequested)

	req := testRequest()
	bridge.Publish(NewEvent(EventCertificateRequested, req))

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case evt := <-ch:
			assert.Equal(t, req.EntityID, evt.Request.EntityID)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBridgeSubscriberOnlySeesItsType(t *testing.T) {
	bridge := NewBridge(nil, zerolog.Nop())
	defer bridge.Stop()

	_, issuedCh := bridge.Subscribe(EventCertificateIssued)

	bridge.Publish(NewEvent(EventCertificateRequested, testRequest()))

	select {
	case evt := <-issuedCh:
		t.Fatalf("unexpected event %v", evt.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBridgeSubscribeFunc(t *testing.T) {
	bridge := NewBridge(nil, zerolog.Nop())

	var mu sync.Mutex
	var got []Request
	done := make(chan struct{})
	bridge.SubscribeFunc(EventCertificateIssued, func(evt Event) {
		mu.Lock()
		got = append(got, evt.Request)
		mu.Unlock()
		done <- struct{}{}
	})

	req := testRequest()
	bridge.Publish(NewEvent(EventCertificateIssued, req))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}

	// Stop closes the subscriber channel so the handler goroutine exits
	bridge.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, req.Name, got[0].Name)
}

func TestBridgeUnsubscribeStopsDelivery(t *testing.T) {
	bridge := NewBridge(nil, zerolog.Nop())
	defer bridge.Stop()

	subId, ch := bridge.Subscribe(EventCertificateRequested)
	bridge.Unsubscribe(EventCertificateRequested, subId)

	// channel is closed after unsubscribe
	_, open := <-ch
	assert.False(t, open)

	// publishing after unsubscribe does not panic
	bridge.Publish(NewEvent(EventCertificateRequested, testRequest()))
}
