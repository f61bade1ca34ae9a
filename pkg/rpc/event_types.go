package rpc

// EventType identifies the type of event emitted during block processing
type EventType string

const (
	EventTypeTransfer    EventType = "transfer"
	EventTypeNFTTransfer EventType = "nft-transfer"
)

func EventTypeAsStr(evt EventType) string {
	return string(evt)
}

// EventMessage is the interface all event types implement.
// This enables polymorphic handling of different event types while
// extracting the fields settlement reconciliation cares about
// (sender, recipient, amounts, success flags).
type EventMessage interface {
	Type() EventType
	GetFrom() string
	GetTo() string
	GetAmount() *uint64
	GetNFTID() *string
	GetSeriesID() *string
	GetSuccess() *bool
}

// TransferEvent represents a currency transfer emitted by an included block
type TransferEvent struct {
	Data map[string]interface{}
}

func (e *TransferEvent) Type() EventType      { return EventTypeTransfer }
func (e *TransferEvent) GetFrom() string      { return GetStringField(e.Data, "from") }
func (e *TransferEvent) GetTo() string        { return GetStringField(e.Data, "to") }
func (e *TransferEvent) GetAmount() *uint64   { return GetOptionalUint64Field(e.Data, "amount") }
func (e *TransferEvent) GetNFTID() *string    { return nil }
func (e *TransferEvent) GetSeriesID() *string { return nil }
func (e *TransferEvent) GetSuccess() *bool    { return GetOptionalBoolField(e.Data, "success") }

// NFTTransferEvent represents an NFT ownership change emitted by an included block
type NFTTransferEvent struct {
	Data map[string]interface{}
}

func (e *NFTTransferEvent) Type() EventType      { return EventTypeNFTTransfer }
func (e *NFTTransferEvent) GetFrom() string      { return GetStringField(e.Data, "from") }
func (e *NFTTransferEvent) GetTo() string        { return GetStringField(e.Data, "to") }
func (e *NFTTransferEvent) GetAmount() *uint64   { return nil }
func (e *NFTTransferEvent) GetNFTID() *string    { return GetOptionalStringField(e.Data, "nftId") }
func (e *NFTTransferEvent) GetSeriesID() *string { return GetOptionalStringField(e.Data, "seriesId") }
func (e *NFTTransferEvent) GetSuccess() *bool    { return GetOptionalBoolField(e.Data, "success") }
