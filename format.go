package bnk

// BNK on-disk layout:
//
//	[payload_0]...[payload_N-1]       contiguous, in directory order
//	[record_0]...[record_N-1]         48 bytes each, same order
//	[footer]                          18 bytes
//
// Each directory record stores the entry's payload position as a distance
// from the end of the file rather than an absolute offset, so records stay
// valid while the total file size is still being tallied.
const (
	// magic opens the footer of every BNK file.
	magic = "Wildfire"

	// nameSize is the fixed width of an entry name, null-padded.
	nameSize = 32

	// recordSize is the width of one directory record: 32-byte name,
	// then distance-from-EOF, payload size, uncompressed size, and
	// compression flag as little-endian uint32s.
	recordSize = 48

	// footerSize is magic (8) + reserved (6) + entry count (4).
	footerSize = 18
)

// reserved sits between the magic and the entry count. The engine writes
// these six bytes verbatim and rejects anything else.
var reserved = [6]byte{0x00, 0x00, 0x00, 0x00, 0x01, 0x00}

// Directory record field offsets.
const (
	recDistance     = nameSize
	recPayloadSize  = nameSize + 4
	recUncompressed = nameSize + 8
	recFlag         = nameSize + 12
)
