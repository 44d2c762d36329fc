// ABOUTME: Record containers persisted by the protocol engine plus their empty defaults
// ABOUTME: File names and shapes mirror the engine's on-disk cache inside the data directory

package codec

// File names inside the engine's data directory.
const (
	InboundPaymentsFname  = "inbound_payments"
	OutboundPaymentsFname = "outbound_payments"
	ChannelIDsFname       = "channel_ids"
	MakerSwapsFname       = "maker_swaps"
	TakerSwapsFname       = "taker_swaps"
	SpenderTxsFname       = "output_spender_txes"
	NetworkGraphFname     = "network_graph"
	ScorerFname           = "scorer"
)

// ChannelIDsFile maps temporary channel IDs to final channel IDs, both as
// lowercase hex. Superseded by the relational store; still read once at
// startup so pre-store state can be migrated.
type ChannelIDsFile struct {
	ChannelIDs map[string]string `msgpack:"channel_ids"`
}

// NewChannelIDsFile returns the empty default.
func NewChannelIDsFile() ChannelIDsFile {
	return ChannelIDsFile{ChannelIDs: make(map[string]string)}
}

// Payment is one entry in the engine's payment bookkeeping.
type Payment struct {
	Preimage   string `msgpack:"preimage,omitempty"`
	Secret     string `msgpack:"secret,omitempty"`
	Status     string `msgpack:"status"`
	AmountMsat uint64 `msgpack:"amt_msat"`
}

// PaymentsFile holds inbound or outbound payment bookkeeping keyed by
// payment hash hex.
type PaymentsFile struct {
	Payments map[string]Payment `msgpack:"payments"`
}

// NewPaymentsFile returns the empty default.
func NewPaymentsFile() PaymentsFile {
	return PaymentsFile{Payments: make(map[string]Payment)}
}

// Swap is one maker or taker swap record.
type Swap struct {
	QtyFrom     uint64 `msgpack:"qty_from"`
	QtyTo       uint64 `msgpack:"qty_to"`
	FromAsset   string `msgpack:"from_asset,omitempty"`
	ToAsset     string `msgpack:"to_asset,omitempty"`
	PaymentHash string `msgpack:"payment_hash"`
	Status      string `msgpack:"status"`
}

// SwapsFile holds swap records keyed by payment hash hex.
type SwapsFile struct {
	Swaps map[string]Swap `msgpack:"swaps"`
}

// NewSwapsFile returns the empty default.
func NewSwapsFile() SwapsFile {
	return SwapsFile{Swaps: make(map[string]Swap)}
}

// SpenderTxsFile maps outpoints to the raw transactions that spend them,
// hex-encoded.
type SpenderTxsFile struct {
	Txes map[string]string `msgpack:"txes"`
}

// NewSpenderTxsFile returns the empty default.
func NewSpenderTxsFile() SpenderTxsFile {
	return SpenderTxsFile{Txes: make(map[string]string)}
}

// GraphChannel is one directed channel edge in the topology snapshot.
type GraphChannel struct {
	ShortChannelID uint64 `msgpack:"scid"`
	Node1          string `msgpack:"node_1"`
	Node2          string `msgpack:"node_2"`
	CapacitySats   uint64 `msgpack:"capacity_sats"`
}

// NetworkGraphFile is the engine's cached topology snapshot. A wiped or
// corrupt file means the graph is rebuilt from gossip.
type NetworkGraphFile struct {
	Network  string         `msgpack:"network"`
	Nodes    []string       `msgpack:"nodes"`
	Channels []GraphChannel `msgpack:"channels"`
}

// NewNetworkGraphFile returns an empty graph for network.
func NewNetworkGraphFile(network string) NetworkGraphFile {
	return NetworkGraphFile{Network: network}
}

// ChannelLiquidity is the scorer's learned liquidity estimate for a channel.
type ChannelLiquidity struct {
	MinMsat         uint64 `msgpack:"min_msat"`
	MaxMsat         uint64 `msgpack:"max_msat"`
	LastUpdatedUnix int64  `msgpack:"last_updated"`
}

// ScorerFile is the pathfinding scorer's persisted state, keyed by short
// channel ID. Losing it only costs accumulated scoring history.
type ScorerFile struct {
	Liquidities map[uint64]ChannelLiquidity `msgpack:"liquidities"`
}

// NewScorerFile returns the empty default.
func NewScorerFile() ScorerFile {
	return ScorerFile{Liquidities: make(map[uint64]ChannelLiquidity)}
}
