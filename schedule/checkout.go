package schedule

import "time"

// FeeScheme resolves the delivery charge for an order subtotal. FixedFee is
// the only variant today; distance-based pricing slots in as a second
// implementation without touching the resolver.
type FeeScheme interface {
	Fee(subtotal float64) float64
}

// FixedFee charges a flat price, waived entirely once the subtotal reaches
// the free-delivery threshold. The threshold is inclusive; a nil threshold
// means no free tier exists and the comparison is skipped.
type FixedFee struct {
	Price         float64
	FreeThreshold *float64
}

func (f FixedFee) Fee(subtotal float64) float64 {
	if f.FreeThreshold != nil && subtotal >= *f.FreeThreshold {
		return 0
	}
	return f.Price
}

// Fulfillment selects which path a checkout request takes.
type Fulfillment string

const (
	FulfillmentImmediate Fulfillment = "immediate"
	FulfillmentScheduled Fulfillment = "scheduled"
	FulfillmentPickup    Fulfillment = "pickup"
)

// Zone is the delivery-zone snapshot the resolver quotes against.
type Zone struct {
	ID            string
	Active        bool
	Scheme        FeeScheme
	EstimatedTime *int // minutes
}

// SlotRef identifies the slot a scheduled checkout request asks for.
type SlotRef struct {
	Date  string
	Open  Minute
	Close Minute
}

// CheckoutRequest carries the fulfillment choice made by the customer.
type CheckoutRequest struct {
	Fulfillment Fulfillment
	Slot        *SlotRef // scheduled requests only
}

// Decision is the single value the order-placement flow consults before
// allowing checkout to proceed. On rejection the fee is still populated
// where it could be computed, so the UI can render "delivery costs $X, but
// we're currently closed" instead of an opaque failure. A returned fee is
// never implicit approval to place the order; only Eligible grants that.
type Decision struct {
	Fee           float64
	EstimatedTime *int
	Eligible      bool
	Reason        Reason
}

// ResolveCheckout resolves the applicable fee tier for the zone and couples
// it with the availability verdict for the requested fulfillment path.
//
// Immediate and pickup requests are gated by current openness; scheduled
// requests must name a slot present in NextSlots for the same snapshot —
// anything stale or out of horizon is rejected as SlotUnavailable.
func ResolveCheckout(zone Zone, subtotal float64, s *Schedule, exceptions []Exception, now time.Time, req CheckoutRequest) (Decision, error) {
	if now.IsZero() {
		return Decision{}, ErrInvalidInstant
	}
	if err := s.check(); err != nil {
		return Decision{}, err
	}

	if !zone.Active {
		return Decision{Eligible: false, Reason: ReasonZoneUnavailable}, nil
	}

	d := Decision{
		Fee:           zone.Scheme.Fee(subtotal),
		EstimatedTime: zone.EstimatedTime,
	}

	switch req.Fulfillment {
	case FulfillmentImmediate, FulfillmentPickup:
		avail, err := IsOpenAt(s, exceptions, now)
		if err != nil {
			return Decision{}, err
		}
		if !avail.Open {
			d.Reason = ReasonStoreClosed
			return d, nil
		}

	case FulfillmentScheduled:
		if req.Slot == nil || !slotOffered(s, exceptions, now, *req.Slot) {
			d.Reason = ReasonSlotUnavailable
			return d, nil
		}

	default:
		d.Reason = ReasonSlotUnavailable
		return d, nil
	}

	d.Eligible = true
	return d, nil
}

func slotOffered(s *Schedule, exceptions []Exception, now time.Time, ref SlotRef) bool {
	slots, err := NextSlots(s, exceptions, now, 0)
	if err != nil {
		return false
	}
	for _, slot := range slots {
		if slot.Date == ref.Date && slot.Period.Open == ref.Open && slot.Period.Close == ref.Close {
			return true
		}
	}
	return false
}
