package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testFaucetAddress = "5CtE5KeuNPtBazwVHdCyNwxAmSUzdTaM2eG82o1Z4d9uJZfA"

// fakeChain serves the node and indexer paths the client talks to.
type fakeChain struct {
	mux *http.ServeMux

	txPolls      atomic.Int64
	pollsPending int64 // tx-by-hash reports height 0 this many times

	submitted atomic.Int64

	mu        sync.Mutex
	lastBatch []Operation
}

func (f *fakeChain) batch() []Operation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBatch
}

func newFakeChain() *fakeChain {
	f := &fakeChain{mux: http.NewServeMux()}

	f.mux.HandleFunc("/v1/query/height", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]uint64{"height": 1024})
	})

	f.mux.HandleFunc("/v1/query/account", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Address string `json:"address"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		amount := uint64(0)
		if in.Address == testFaucetAddress {
			amount = 115000
		}
		_ = json.NewEncoder(w).Encode(Account{Address: in.Address, Amount: amount})
	})

	f.mux.HandleFunc("/v1/tx/batch", func(w http.ResponseWriter, r *http.Request) {
		var in submitBatchRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.mu.Lock()
		f.lastBatch = in.Operations
		f.mu.Unlock()
		f.submitted.Add(1)
		_ = json.NewEncoder(w).Encode(submitBatchResponse{TxHash: "0xfeed"})
	})

	f.mux.HandleFunc("/v1/query/tx-by-hash", func(w http.ResponseWriter, _ *http.Request) {
		height := uint64(77)
		if f.txPolls.Add(1) <= f.pollsPending {
			height = 0
		}
		_ = json.NewEncoder(w).Encode(txByHashResponse{TxHash: "0xfeed", Height: height})
	})

	f.mux.HandleFunc("/v1/query/events-by-height", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(eventsByHeightResponse{Events: []RpcEvent{
			{EventType: "transfer", Reference: "0xfeed", Height: 77,
				Msg: map[string]interface{}{"to": "wallet-a", "amount": float64(1150), "success": true}},
			{EventType: "nft-transfer", Reference: "0xfeed", Height: 77,
				Msg: map[string]interface{}{"to": "wallet-b", "nftId": "nft-1", "success": true}},
			// Another transaction in the same block: must be filtered out.
			{EventType: "transfer", Reference: "0xother", Height: 77,
				Msg: map[string]interface{}{"to": "wallet-x", "success": true}},
			// Unknown event kinds are dropped.
			{EventType: "reward", Reference: "0xfeed", Height: 77,
				Msg: map[string]interface{}{"to": "wallet-a"}},
		}})
	})

	f.mux.HandleFunc("/v1/query/nfts-by-series", func(w http.ResponseWriter, r *http.Request) {
		var in nftsBySeriesRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		if !in.Unassigned || !in.ExcludeBurnt {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if in.SeriesID != "series-1" {
			_ = json.NewEncoder(w).Encode(nftsBySeriesResponse{})
			return
		}
		_ = json.NewEncoder(w).Encode(nftsBySeriesResponse{NFTs: []NFT{
			{ID: "nft-1", SeriesID: "series-1"},
			{ID: "nft-2", SeriesID: "series-1"},
		}})
	})

	return f
}

func newTestClient(t *testing.T, endpoints ...string) *Client {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	return NewClient(logger, ClientOpts{
		FaucetAddress: testFaucetAddress,
		NodeOpts:      Opts{Endpoints: endpoints},
		IndexerOpts:   Opts{Endpoints: endpoints},
	})
}

func TestClientQueries(t *testing.T) {
	chain := newFakeChain()
	srv := httptest.NewServer(chain.mux)
	defer srv.Close()

	ctx := context.Background()
	c := newTestClient(t, srv.URL)

	t.Run("height", func(t *testing.T) {
		h, err := c.Height(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1024), h)
	})

	t.Run("faucet balance", func(t *testing.T) {
		b, err := c.FaucetBalance(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(115000), b)
	})

	t.Run("balance of an unknown account is zero", func(t *testing.T) {
		b, err := c.Balance(ctx, "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty")
		require.NoError(t, err)
		assert.Zero(t, b)
	})

	t.Run("unassigned nfts", func(t *testing.T) {
		nfts, err := c.UnassignedNFTs(ctx, "series-1")
		require.NoError(t, err)
		require.Len(t, nfts, 2)
		assert.Equal(t, "nft-1", nfts[0].ID)
	})

	t.Run("empty series", func(t *testing.T) {
		nfts, err := c.UnassignedNFTs(ctx, "series-unknown")
		require.NoError(t, err)
		assert.Empty(t, nfts)
	})
}

func TestSubmitBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an empty batch locally", func(t *testing.T) {
		chain := newFakeChain()
		srv := httptest.NewServer(chain.mux)
		defer srv.Close()

		c := newTestClient(t, srv.URL)
		_, err := c.SubmitBatch(ctx, nil)
		require.Error(t, err)
		assert.Zero(t, chain.submitted.Load())
	})

	t.Run("waits for inclusion and returns the tx events", func(t *testing.T) {
		chain := newFakeChain()
		chain.pollsPending = 2
		srv := httptest.NewServer(chain.mux)
		defer srv.Close()

		c := newTestClient(t, srv.URL)
		ops := []Operation{
			{Type: OpTypeTransfer, To: "wallet-a", Amount: 1150},
			{Type: OpTypeNFTTransfer, To: "wallet-b", SeriesID: "series-1", NFTID: "nft-1"},
		}

		receipt, err := c.SubmitBatch(ctx, ops)
		require.NoError(t, err)
		assert.Equal(t, "0xfeed", receipt.TxHash)
		assert.Equal(t, uint64(77), receipt.Height)
		assert.Equal(t, ops, chain.batch())
		assert.GreaterOrEqual(t, chain.txPolls.Load(), int64(3))

		// Only this transaction's known events survive the filter.
		require.Len(t, receipt.Events, 2)
		assert.Equal(t, EventTypeTransfer, receipt.Events[0].Type())
		assert.Equal(t, "wallet-a", receipt.Events[0].GetTo())
		assert.Equal(t, EventTypeNFTTransfer, receipt.Events[1].Type())
		assert.Equal(t, "wallet-b", receipt.Events[1].GetTo())
	})

	t.Run("missing tx hash in the ack is an error", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/v1/tx/batch", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(submitBatchResponse{})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := newTestClient(t, srv.URL)
		_, err := c.SubmitBatch(ctx, []Operation{{Type: OpTypeTransfer, To: "wallet-a", Amount: 1}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no tx hash")
	})
}

func TestDoJSONFailover(t *testing.T) {
	var primaryHits, secondaryHits atomic.Int64

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		primaryHits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()

	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		secondaryHits.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]uint64{"height": 7})
	}))
	defer secondary.Close()

	c := newTestClient(t, primary.URL, secondary.URL)

	h, err := c.Height(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), h)
	assert.Equal(t, int64(1), primaryHits.Load())
	assert.Equal(t, int64(1), secondaryHits.Load())
}
