package rpc

import (
	"context"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	vestingtypes "github.com/cosmos/cosmos-sdk/x/auth/vesting/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tessellated-io/signet/cosmos/tx"
	"github.com/tessellated-io/signet/grpc"
	"github.com/tessellated-io/signet/log"
)

// Page size to use
const pageSize = 100

// grpcClient is the private and default implementation.
type grpcClient struct {
	cdc      *codec.ProtoCodec
	callOpts []grpclib.CallOption

	authClient    authtypes.QueryClient
	bankClient    banktypes.QueryClient
	stakingClient stakingtypes.QueryClient

	log *log.Logger
}

// A struct that came back from an RPC query
type paginatedRpcResponse[dataType any] struct {
	data    []dataType
	nextKey []byte
}

// Ensure that grpcClient implements QueryClient
var _ QueryClient = (*grpcClient)(nil)

// NewGrpcQueryClient dials nodeGrpcUri and makes a new QueryClient.
func NewGrpcQueryClient(nodeGrpcUri string, log *log.Logger) (QueryClient, error) {
	conn, err := grpc.GetGrpcConnection(nodeGrpcUri)
	if err != nil {
		log.Error("Unable to connect to gRPC", "grpc_url", nodeGrpcUri)
		return nil, err
	}

	return NewGrpcQueryClientWithConn(conn, log), nil
}

// NewGrpcQueryClientWithConn makes a new QueryClient over an existing connection.
func NewGrpcQueryClientWithConn(conn grpclib.ClientConnInterface, log *log.Logger) QueryClient {
	cdc := NewCodec()

	return &grpcClient{
		cdc:      cdc,
		callOpts: []grpclib.CallOption{grpclib.ForceCodec(cdc.GRPCCodec())},

		authClient:    authtypes.NewQueryClient(conn),
		bankClient:    banktypes.NewQueryClient(conn),
		stakingClient: stakingtypes.NewQueryClient(conn),

		log: log,
	}
}

// NewCodec returns a codec that can unpack every account type a chain may return.
func NewCodec() *codec.ProtoCodec {
	registry := codectypes.NewInterfaceRegistry()
	authtypes.RegisterInterfaces(registry)
	vestingtypes.RegisterInterfaces(registry)
	cryptocodec.RegisterInterfaces(registry)

	return codec.NewProtoCodec(registry)
}

func (r *grpcClient) Account(ctx context.Context, address string) (*tx.AccountRecord, error) {
	// Make a query
	query := &authtypes.QueryAccountRequest{Address: address}
	res, err := r.authClient.Account(
		ctx,
		query,
		r.callOpts...,
	)
	if err != nil {
		grpcErr, ok := status.FromError(err)
		if ok && grpcErr.Code() == codes.NotFound {
			r.log.Debug("account not found", "address", address)
			return &tx.AccountRecord{}, nil
		}
		return nil, err
	}

	// Deserialize response
	var account authtypes.AccountI
	if err := r.cdc.UnpackAny(res.Account, &account); err != nil {
		return nil, err
	}

	// The account's own address renders with the process wide bech32 prefix, so echo the query instead.
	if account.GetAddress().Empty() {
		return &tx.AccountRecord{}, nil
	}

	return &tx.AccountRecord{
		Address:       address,
		AccountNumber: account.GetAccountNumber(),
		Sequence:      account.GetSequence(),
	}, nil
}

func (r *grpcClient) GetBalances(ctx context.Context, address string) (sdk.Coins, error) {
	getBalancesFunc := func(ctx context.Context, pageKey []byte) (*paginatedRpcResponse[sdk.Coin], error) {
		pagination := &query.PageRequest{
			Key:   pageKey,
			Limit: pageSize,
		}

		request := &banktypes.QueryAllBalancesRequest{
			Address:    address,
			Pagination: pagination,
		}

		response, err := r.bankClient.AllBalances(ctx, request, r.callOpts...)
		if err != nil {
			return nil, err
		}

		return &paginatedRpcResponse[sdk.Coin]{
			data:    response.Balances,
			nextKey: response.Pagination.GetNextKey(),
		}, nil
	}

	balances, err := retrievePaginatedData(ctx, r, "balances", getBalancesFunc)
	if err != nil {
		return nil, err
	}
	r.log.Debug("retrieved balances", "num_balances", len(balances), "address", address)

	return sdk.Coins(balances), nil
}

func (r *grpcClient) GetBalance(ctx context.Context, address, denom string) (*sdk.Coin, error) {
	balances, err := r.GetBalances(ctx, address)
	if err != nil {
		return nil, err
	}

	return extractCoin(denom, balances), nil
}

func (r *grpcClient) GetDelegations(ctx context.Context, delegator string) ([]Delegation, error) {
	transformFunc := func(input stakingtypes.DelegationResponse) Delegation {
		return Delegation{
			ValidatorAddress: input.Delegation.ValidatorAddress,
			Balance:          input.Balance,
		}
	}

	fetchDelegationPageFunc := func(ctx context.Context, pageKey []byte) (*paginatedRpcResponse[Delegation], error) {
		pagination := &query.PageRequest{
			Key:   pageKey,
			Limit: pageSize,
		}

		request := &stakingtypes.QueryDelegatorDelegationsRequest{
			DelegatorAddr: delegator,
			Pagination:    pagination,
		}
		response, err := r.stakingClient.DelegatorDelegations(ctx, request, r.callOpts...)
		if err != nil {
			return nil, err
		}

		delegations := make([]Delegation, len(response.DelegationResponses))
		for i, delegationResponse := range response.DelegationResponses {
			delegations[i] = transformFunc(delegationResponse)
		}

		return &paginatedRpcResponse[Delegation]{
			data:    delegations,
			nextKey: response.Pagination.GetNextKey(),
		}, nil
	}

	delegations, err := retrievePaginatedData(ctx, r, "delegations", fetchDelegationPageFunc)
	if err != nil {
		return nil, err
	}
	r.log.Debug("retrieved delegations", "delegator", delegator, "num_delegations", len(delegations))

	return delegations, nil
}

// Returns a zero coin if the denom is not held
func extractCoin(targetDenom string, coins sdk.Coins) *sdk.Coin {
	for _, coin := range coins {
		if strings.EqualFold(targetDenom, coin.Denom) {
			found := coin
			return &found
		}
	}

	zero := sdk.NewInt64Coin(targetDenom, 0)
	return &zero
}

// Pagination
// NOTE: Implemented as a private standalone func since go doesn't seem to support generics on struct methods.
func retrievePaginatedData[DataType any](
	ctx context.Context,
	r *grpcClient,
	noun string,
	retrievePageFn func(
		ctx context.Context,
		nextKey []byte,
	) (*paginatedRpcResponse[DataType], error),
) ([]DataType, error) {
	// Running list of data
	data := []DataType{}

	// Loop through all pages
	var nextKey []byte
	for {
		// Ditch if context has timed out
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		rpcResponse, err := retrievePageFn(ctx, nextKey)
		if err != nil {
			return nil, err
		}

		// Append the data
		data = append(data, rpcResponse.data...)
		r.log.Debug(fmt.Sprintf("fetched page of %s", noun), "num_in_page", len(rpcResponse.data), "total_fetched", len(data))

		// Update next key or break out of loop if we have finished
		if len(rpcResponse.nextKey) == 0 {
			break
		}
		nextKey = rpcResponse.nextKey
	}

	return data, nil
}
