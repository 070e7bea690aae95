package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when no meter is supplied.
var ErrMeterNil = errors.New("telemetry: meter is nil")

// Order sources
const (
	SourceRappi    = "rappi"
	SourceCheckout = "checkout"
)

// BusinessMetrics counts orders and outgoing emails.
type BusinessMetrics struct {
	ordersIngested *Counter
	ordersRejected *Counter
	emailsSent     *Counter
	ticketsSynced  *Counter
}

// NewBusinessMetrics creates the business counters on meter.
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	bm := &BusinessMetrics{}
	var err error
	if bm.ordersIngested, err = NewCounter(meter, "pod_orders_ingested_total", "Orders persisted", "{orders}"); err != nil {
		return nil, err
	}
	if bm.ordersRejected, err = NewCounter(meter, "pod_orders_rejected_total", "Order payloads rejected", "{orders}"); err != nil {
		return nil, err
	}
	if bm.emailsSent, err = NewCounter(meter, "pod_emails_total", "Emails handed to the transport", "{emails}"); err != nil {
		return nil, err
	}
	if bm.ticketsSynced, err = NewCounter(meter, "pod_tickets_synced_total", "Tickets processed by the sync", "{tickets}"); err != nil {
		return nil, err
	}
	return bm, nil
}

// OrderIngested records a persisted order.
func (m *BusinessMetrics) OrderIngested(ctx context.Context, source string) {
	m.ordersIngested.Inc(ctx, attribute.String("source", source))
}

// OrderRejected records a rejected order payload.
func (m *BusinessMetrics) OrderRejected(ctx context.Context, source, reason string) {
	m.ordersRejected.Inc(ctx, attribute.String("source", source), attribute.String("reason", reason))
}

// EmailSent records one email attempt.
func (m *BusinessMetrics) EmailSent(ctx context.Context, template string, ok bool) {
	m.emailsSent.Inc(ctx, attribute.String("template", template), attribute.Bool("success", ok))
}

// TicketSynced records one ticket processed by the sync.
func (m *BusinessMetrics) TicketSynced(ctx context.Context, ok bool) {
	m.ticketsSynced.Inc(ctx, attribute.Bool("success", ok))
}
