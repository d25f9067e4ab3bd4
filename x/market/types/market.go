package types

import (
	"fmt"

	"cosmossdk.io/math"

	registrytypes "github.com/vela-compute/vela/x/registry/types"
)

// OrderState is the lifecycle state of an order. Closed and Complete are
// terminal.
type OrderState uint8

const (
	OrderStateActive OrderState = iota + 1
	OrderStateClosed
	OrderStateComplete
)

func (s OrderState) Validate() error {
	if s < OrderStateActive || s > OrderStateComplete {
		return fmt.Errorf("invalid order state %d", s)
	}
	return nil
}

func (s OrderState) String() string {
	switch s {
	case OrderStateActive:
		return "active"
	case OrderStateClosed:
		return "closed"
	case OrderStateComplete:
		return "complete"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// BidState is the lifecycle state of a bid. Matched and Canceled are terminal.
type BidState uint8

const (
	BidStateActive BidState = iota + 1
	BidStateMatched
	BidStateCanceled
)

func (s BidState) Validate() error {
	if s < BidStateActive || s > BidStateCanceled {
		return fmt.Errorf("invalid bid state %d", s)
	}
	return nil
}

func (s BidState) String() string {
	switch s {
	case BidStateActive:
		return "active"
	case BidStateMatched:
		return "matched"
	case BidStateCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// LeaseState is the lifecycle state of a lease.
type LeaseState uint8

const (
	LeaseStateInitiate LeaseState = iota + 1
	LeaseStateActive
	LeaseStateCanceled
	LeaseStateCompleted
)

func (s LeaseState) Validate() error {
	if s < LeaseStateInitiate || s > LeaseStateCompleted {
		return fmt.Errorf("invalid lease state %d", s)
	}
	return nil
}

func (s LeaseState) String() string {
	switch s {
	case LeaseStateInitiate:
		return "initiate"
	case LeaseStateActive:
		return "active"
	case LeaseStateCanceled:
		return "canceled"
	case LeaseStateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Specification describes the workload an order wants fulfilled. The spec
// string and quantity are opaque to the market; trust levels screen which
// providers may bid. MaxPrice echoes the order ceiling at creation time.
type Specification struct {
	Spec        string                     `json:"spec"`
	Quantity    uint64                     `json:"quantity"`
	TrustLevels []registrytypes.TrustLevel `json:"trust_levels,omitempty"`
	MaxPrice    math.Int                   `json:"max_price"`
}

func (s Specification) Validate() error {
	for _, level := range s.TrustLevels {
		if err := level.Validate(); err != nil {
			return err
		}
	}
	if s.MaxPrice.IsNil() || !s.MaxPrice.IsPositive() {
		return fmt.Errorf("spec max price must be positive")
	}
	return nil
}

// Accepts reports whether a provider at the given trust level satisfies the
// spec's screening. An empty list accepts every level. A non-empty list is a
// minimum bar: the provider must be at least as trusted as the least
// demanding level listed.
func (s Specification) Accepts(level registrytypes.TrustLevel) bool {
	if len(s.TrustLevels) == 0 {
		return true
	}
	weakest := s.TrustLevels[0]
	for _, required := range s.TrustLevels[1:] {
		if required > weakest {
			weakest = required
		}
	}
	return level.AtLeast(weakest)
}

// Order is a request for compute capacity. MaxPrice is the bid ceiling while
// the order is Active; once a bid is accepted it is overwritten with the
// settled price.
type Order struct {
	Id        uint64        `json:"id"`
	Owner     string        `json:"owner"`
	Denom     string        `json:"denom"`
	MaxPrice  math.Int      `json:"max_price"`
	State     OrderState    `json:"state"`
	Spec      Specification `json:"spec"`
	NumBlocks uint64        `json:"number_of_blocks"`
}

func (o Order) Validate() error {
	if o.Id == 0 {
		return fmt.Errorf("order id must be positive")
	}
	if o.Owner == "" {
		return fmt.Errorf("order owner must not be empty")
	}
	if o.Denom == "" {
		return fmt.Errorf("order denom must not be empty")
	}
	if o.MaxPrice.IsNil() || !o.MaxPrice.IsPositive() {
		return fmt.Errorf("order max price must be positive")
	}
	if o.NumBlocks == 0 {
		return fmt.Errorf("order duration must be positive")
	}
	if err := o.State.Validate(); err != nil {
		return err
	}
	return o.Spec.Validate()
}

// Bid is a provider's offer to fulfill an order at a price.
type Bid struct {
	Id         uint64   `json:"id"`
	OrderId    uint64   `json:"order_id"`
	ProviderId uint64   `json:"provider_id"`
	Price      math.Int `json:"bid_price"`
	State      BidState `json:"state"`
}

func (b Bid) Validate() error {
	if b.Id == 0 || b.OrderId == 0 || b.ProviderId == 0 {
		return fmt.Errorf("bid ids must be positive")
	}
	if b.Price.IsNil() || !b.Price.IsPositive() {
		return fmt.Errorf("bid price must be positive")
	}
	return b.State.Validate()
}

// Lease is a provider's commitment to serve an accepted order for a block
// interval. Container optionally references the workload deployment.
type Lease struct {
	Id         uint64     `json:"id"`
	OrderId    uint64     `json:"order_id"`
	ProviderId uint64     `json:"provider_id"`
	StartBlock int64      `json:"start_block"`
	EndBlock   int64      `json:"end_block"`
	State      LeaseState `json:"state"`
	Container  string     `json:"container,omitempty"`
}

func (l Lease) Validate() error {
	if l.Id == 0 || l.OrderId == 0 || l.ProviderId == 0 {
		return fmt.Errorf("lease ids must be positive")
	}
	if l.EndBlock < l.StartBlock {
		return fmt.Errorf("lease ends at %d before it starts at %d", l.EndBlock, l.StartBlock)
	}
	return l.State.Validate()
}
