package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	registrytypes "github.com/vela-compute/vela/x/registry/types"
)

func TestSpecificationAccepts(t *testing.T) {
	open := Specification{MaxPrice: math.NewInt(1)}
	for level := registrytypes.TrustLevelOne; level <= registrytypes.TrustLevelFive; level++ {
		require.True(t, open.Accepts(level))
	}

	screened := Specification{
		MaxPrice:    math.NewInt(1),
		TrustLevels: []registrytypes.TrustLevel{registrytypes.TrustLevelOne, registrytypes.TrustLevelThree},
	}
	// The weakest listed level, Three, is the bar.
	require.True(t, screened.Accepts(registrytypes.TrustLevelOne))
	require.True(t, screened.Accepts(registrytypes.TrustLevelThree))
	require.False(t, screened.Accepts(registrytypes.TrustLevelFour))
	require.False(t, screened.Accepts(registrytypes.TrustLevelFive))
}

func TestStateValidation(t *testing.T) {
	require.NoError(t, OrderStateActive.Validate())
	require.Error(t, OrderState(0).Validate())
	require.Error(t, OrderState(4).Validate())

	require.NoError(t, BidStateMatched.Validate())
	require.Error(t, BidState(4).Validate())

	require.NoError(t, LeaseStateCompleted.Validate())
	require.Error(t, LeaseState(5).Validate())
}

func TestOrderValidate(t *testing.T) {
	order := Order{
		Id:        1,
		Owner:     "vela1owner",
		Denom:     "uvela",
		MaxPrice:  math.NewInt(100),
		State:     OrderStateActive,
		Spec:      Specification{Spec: "cpu", Quantity: 1, MaxPrice: math.NewInt(100)},
		NumBlocks: 10,
	}
	require.NoError(t, order.Validate())

	order.NumBlocks = 0
	require.Error(t, order.Validate())

	order.NumBlocks = 10
	order.MaxPrice = math.ZeroInt()
	require.Error(t, order.Validate())
}

func TestLeaseValidate(t *testing.T) {
	lease := Lease{Id: 1, OrderId: 1, ProviderId: 1, StartBlock: 10, EndBlock: 20, State: LeaseStateActive}
	require.NoError(t, lease.Validate())

	lease.EndBlock = 5
	require.Error(t, lease.Validate())

	lease.EndBlock = 20
	lease.ProviderId = 0
	require.Error(t, lease.Validate())
}

func TestMarketParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())
	require.Error(t, Params{MinLeaseBlocks: 0, MaxLeaseBlocks: 10}.Validate())
	require.Error(t, Params{MinLeaseBlocks: 10, MaxLeaseBlocks: 5}.Validate())
}
