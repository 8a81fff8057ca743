// Package block decodes a pcapng capture into typed structural blocks.
//
// Every block carries its raw bytes and a section table: an ordered list of
// (label, length) pairs that partitions the block byte-for-byte. The table
// drives both highlighting in the hex view and cursor-to-field lookup, so its
// lengths always sum to the declared block length.
//
// # Block framing
//
// Each block opens with a little-endian type tag and total length and closes
// with the same length repeated:
//
//	┌──────────────┬──────────────┬───────────────────┬──────────────┐
//	│ Type (4)     │ Length (4)   │ Body (Length-12)  │ Length (4)   │
//	└──────────────┴──────────────┴───────────────────┴──────────────┘
//
// Recognized kinds replace the generic Data entry with their own fields:
//
//   - Section Header: byte-order magic, version, section length, options
//   - Interface Description: link type, reserved, snap length, options
//   - Enhanced Packet: interface id, timestamp, lengths, packet data,
//     padding, options; optionally a link-type specific sub-header
//
// Decoding is a single forward pass. A block with an unusable length is
// emitted with its error marker set and ends the sequence, since a corrupt
// length leaves no safe way to find the next boundary.
package block
