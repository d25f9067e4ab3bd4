package types

import (
	"fmt"
)

// GenesisState is the market module's exported state.
type GenesisState struct {
	Params     Params  `json:"params"`
	Orders     []Order `json:"orders"`
	Bids       []Bid   `json:"bids"`
	Leases     []Lease `json:"leases"`
	OrderCount uint64  `json:"order_count"`
	BidCount   uint64  `json:"bid_count"`
	LeaseCount uint64  `json:"lease_count"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Params: DefaultParams()}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	orderIDs := make(map[uint64]struct{}, len(gs.Orders))
	for _, order := range gs.Orders {
		if err := order.Validate(); err != nil {
			return fmt.Errorf("order %d: %w", order.Id, err)
		}
		if order.Id > gs.OrderCount {
			return fmt.Errorf("order id %d exceeds order count %d", order.Id, gs.OrderCount)
		}
		if _, ok := orderIDs[order.Id]; ok {
			return fmt.Errorf("duplicate order id %d", order.Id)
		}
		orderIDs[order.Id] = struct{}{}
	}

	bidIDs := make(map[uint64]struct{}, len(gs.Bids))
	for _, bid := range gs.Bids {
		if err := bid.Validate(); err != nil {
			return fmt.Errorf("bid %d: %w", bid.Id, err)
		}
		if bid.Id > gs.BidCount {
			return fmt.Errorf("bid id %d exceeds bid count %d", bid.Id, gs.BidCount)
		}
		if _, ok := bidIDs[bid.Id]; ok {
			return fmt.Errorf("duplicate bid id %d", bid.Id)
		}
		bidIDs[bid.Id] = struct{}{}
		if _, ok := orderIDs[bid.OrderId]; !ok {
			return fmt.Errorf("bid %d references unknown order %d", bid.Id, bid.OrderId)
		}
	}

	leaseIDs := make(map[uint64]struct{}, len(gs.Leases))
	for _, lease := range gs.Leases {
		if err := lease.Validate(); err != nil {
			return fmt.Errorf("lease %d: %w", lease.Id, err)
		}
		if lease.Id > gs.LeaseCount {
			return fmt.Errorf("lease id %d exceeds lease count %d", lease.Id, gs.LeaseCount)
		}
		if _, ok := leaseIDs[lease.Id]; ok {
			return fmt.Errorf("duplicate lease id %d", lease.Id)
		}
		leaseIDs[lease.Id] = struct{}{}
		if _, ok := orderIDs[lease.OrderId]; !ok {
			return fmt.Errorf("lease %d references unknown order %d", lease.Id, lease.OrderId)
		}
	}

	return nil
}
