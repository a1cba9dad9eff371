// Package inter defines the chain's core data structures shared between
// the block-processing pipeline and the epoch-management layer.
package inter

// ShardID is an index of a state shard.
type ShardID uint32

// ProtocolVersion is the protocol version a validator announces
// while producing blocks.
type ProtocolVersion uint32

// ProtocolMaxMsgSize is the upper bound for sizes of decoded messages.
const ProtocolMaxMsgSize = 10 * 1024 * 1024
