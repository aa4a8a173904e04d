// Package wire implements DDC/CI packet framing.
//
// A request written to the display's I2C address (0x37) looks like:
//
//	┌──────┬──────────┬─────────────┬──────────┐
//	│ 0x51 │ 0x80|len │ payload ... │ checksum │
//	└──────┴──────────┴─────────────┴──────────┘
//
// where checksum is the XOR of 0x6E and every preceding byte. Replies are
// read back from the same address and start with 0x6E; their checksum is
// seeded with 0x50 instead. A reply of length zero is the null message,
// sent by displays that are not ready to answer.
package wire
