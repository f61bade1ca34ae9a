package rpc

import (
	"context"
	"strings"
)

// RpcEvent represents an event from the node RPC.
// Events are emitted during block processing and carry a reference to
// the transaction that produced them (empty for begin/end block events).
type RpcEvent struct {
	EventType string                 `json:"eventType"`
	Msg       map[string]interface{} `json:"msg"`
	Height    uint64                 `json:"height"`
	Reference string                 `json:"reference"`
}

// detectEventType normalizes event type strings and maps them to EventType constants.
// This handles case variations and different naming conventions from the RPC layer.
func detectEventType(eventType string) EventType {
	normalized := strings.ToLower(strings.TrimSpace(eventType))

	switch normalized {
	case "transfer", "balance-transfer", "balance_transfer", "balancetransfer":
		return EventTypeTransfer
	case "nft-transfer", "nfttransfer", "nft_transfer":
		return EventTypeNFTTransfer
	default:
		// Return the normalized string as an EventType so unknown
		// event kinds pass through without being misclassified.
		return EventType(normalized)
	}
}

// parseEventMessage converts an RPC event message into a typed EventMessage.
// Unknown event types return nil and are ignored by reconciliation.
func parseEventMessage(eventType string, msgData map[string]interface{}) EventMessage {
	switch detectEventType(eventType) {
	case EventTypeTransfer:
		return &TransferEvent{Data: msgData}
	case EventTypeNFTTransfer:
		return &NFTTransferEvent{Data: msgData}
	default:
		return nil
	}
}

// eventsByHeightResponse is the wire shape of the events-by-height query.
type eventsByHeightResponse struct {
	Events []RpcEvent `json:"events"`
}

// EventsByHeight fetches the events emitted by the block at the given height,
// optionally filtered to a single transaction hash. Events of unknown types
// are dropped.
func (c *Client) EventsByHeight(ctx context.Context, height uint64, txHash string) ([]EventMessage, error) {
	var resp eventsByHeightResponse
	payload := map[string]any{"height": height}
	if err := c.node.doJSON(ctx, "POST", eventsByHeightPath, payload, &resp); err != nil {
		return nil, err
	}

	out := make([]EventMessage, 0, len(resp.Events))
	for _, ev := range resp.Events {
		if txHash != "" && ev.Reference != txHash {
			continue
		}
		if msg := parseEventMessage(ev.EventType, ev.Msg); msg != nil {
			out = append(out, msg)
		}
	}
	return out, nil
}
