package certificate

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/productfruits/partnerhub-internal/internal/common/uuid"
	"github.com/productfruits/partnerhub-internal/pkg/types"
)

const eventQueueSize = 20

type EventType string

const (
	// EventCertificateRequested fires when an operator asks for a certificate
	// for an entity. Subscribers receive the full prefill payload; nothing has
	// been written yet.
	EventCertificateRequested EventType = "certificate.requested"
	// EventCertificateIssued fires after the issue timestamp has been stored.
	EventCertificateIssued EventType = "certificate.issued"
)

// Request is the typed payload carried by certificate events. It identifies
// the entity by id, not display name, so a rename between request and issue
// cannot redirect the certificate.
type Request struct {
	Type      types.CertificateType `json:"type"`
	EntityID  uuid.UUID             `json:"entity_id"`
	Name      string                `json:"name"`
	Tier      types.Tier            `json:"tier"`
	IssueDate time.Time             `json:"issue_date"`
}

type Event struct {
	Timestamp time.Time
	Request   Request
	Type      EventType
}

func NewEvent(eventType EventType, req Request) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Request:   req,
	}
}

type SubscriberId int

type HandlerFunc func(Event)

// Bridge delivers certificate events to subscribers over per-subscriber typed
// channels. Each subscriber gets its own channel, so adding a second consumer
// (an audit log, a webhook relay) never requires touching the publishers.
type Bridge struct {
	mu          sync.RWMutex
	subscribers map[EventType]map[SubscriberId]*channelSubscriber
	lastSubId   SubscriberId
	metrics     *bridgeMetrics
	logger      zerolog.Logger
}

func NewBridge(promRegistry prometheus.Registerer, logger zerolog.Logger) *Bridge {
	b := &Bridge{
		subscribers: make(map[EventType]map[SubscriberId]*channelSubscriber),
		logger:      logger,
	}
	if promRegistry != nil {
		b.metrics = newBridgeMetrics(promRegistry)
	}
	return b
}

// channelSubscriber adapts a typed event channel behind the bus. Close is
// idempotent so Unsubscribe and Stop can race safely.
type channelSubscriber struct {
	ch     chan Event
	mu     sync.RWMutex
	closed bool
}

func newChannelSubscriber(buffer int) *channelSubscriber {
	return &channelSubscriber{ch: make(chan Event, buffer)}
}

func (c *channelSubscriber) deliver(evt Event) (err error) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil
	}
	defer c.mu.RUnlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("channel deliver panic: %v", r)
		}
	}()
	c.ch <- evt
	return nil
}

func (c *channelSubscriber) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}

// Subscribe returns a channel that receives every event of the given type.
func (b *Bridge) Subscribe(eventType EventType) (SubscriberId, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub := newChannelSubscriber(eventQueueSize)
	subId := b.lastSubId + 1
	b.lastSubId = subId
	if _, ok := b.subscribers[eventType]; !ok {
		b.subscribers[eventType] = make(map[SubscriberId]*channelSubscriber)
	}
	b.subscribers[eventType][subId] = sub
	if b.metrics != nil {
		b.metrics.subscribers.WithLabelValues(string(eventType)).Inc()
	}
	return subId, sub.ch
}

// SubscribeFunc runs the handler on its own goroutine for every event of the
// given type. The goroutine exits when the subscription is removed.
func (b *Bridge) SubscribeFunc(eventType EventType, handler HandlerFunc) SubscriberId {
	subId, ch := b.Subscribe(eventType)
	go func() {
		for evt := range ch {
			handler(evt)
		}
	}()
	return subId
}

// Unsubscribe stops delivery for the given subscription and closes its channel.
func (b *Bridge) Unsubscribe(eventType EventType, subId SubscriberId) {
	b.mu.Lock()
	var toClose *channelSubscriber
	if subs, ok := b.subscribers[eventType]; ok {
		if sub, ok2 := subs[subId]; ok2 {
			toClose = sub
			delete(subs, subId)
			if len(subs) == 0 {
				delete(b.subscribers, eventType)
			}
			if b.metrics != nil {
				b.metrics.subscribers.WithLabelValues(string(eventType)).Dec()
			}
		}
	}
	b.mu.Unlock()

	if toClose != nil {
		toClose.close()
	}
}

// Publish sends the event to every subscriber of its type. Delivery blocks
// per subscriber; a subscriber whose delivery fails is unregistered.
func (b *Bridge) Publish(evt Event) {
	b.mu.RLock()
	subs := b.subscribers[evt.Type]
	type subItem struct {
		id  SubscriberId
		sub *channelSubscriber
	}
	subList := make([]subItem, 0, len(subs))
	for id, sub := range subs {
		subList = append(subList, subItem{id: id, sub: sub})
	}
	b.mu.RUnlock()

	for _, item := range subList {
		if err := item.sub.deliver(evt); err != nil {
			b.Unsubscribe(evt.Type, item.id)
			if b.metrics != nil {
				b.metrics.deliveryErrors.WithLabelValues(string(evt.Type)).Inc()
			}
			b.logger.Debug().Str("type", string(evt.Type)).Err(err).Msg("event delivery error")
		}
	}
	if b.metrics != nil {
		b.metrics.eventsTotal.WithLabelValues(string(evt.Type)).Inc()
	}
}

// Stop closes every subscriber channel and clears the subscription table, so
// SubscribeFunc goroutines exit during shutdown. The bus stays usable.
func (b *Bridge) Stop() {
	b.mu.Lock()
	subsCopy := b.subscribers
	b.subscribers = make(map[EventType]map[SubscriberId]*channelSubscriber)
	b.mu.Unlock()

	for _, subs := range subsCopy {
		for _, sub := range subs {
			sub.close()
		}
	}
	if b.metrics != nil {
		b.metrics.subscribers.Reset()
	}
}

type bridgeMetrics struct {
	eventsTotal    *prometheus.CounterVec
	deliveryErrors *prometheus.CounterVec
	subscribers    *prometheus.GaugeVec
}

func newBridgeMetrics(registry prometheus.Registerer) *bridgeMetrics {
	m := &bridgeMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerhub_certificate_events_total",
				Help: "Total certificate events published by type",
			},
			[]string{"type"},
		),
		deliveryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "partnerhub_certificate_event_delivery_errors_total",
				Help: "Certificate event delivery failures by type",
			},
			[]string{"type"},
		),
		subscribers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "partnerhub_certificate_event_subscribers",
				Help: "Current certificate event subscribers by type",
			},
			[]string{"type"},
		),
	}
	registry.MustRegister(m.eventsTotal, m.deliveryErrors, m.subscribers)
	return m
}
