package main

import (
	"sort"

	"github.com/wippyai/bincodec/codec"
)

// buildCatalog declares the built-in schemas: the packet protocol also
// used by examples/packet. A header with a constant barker, a
// bit-packed flags byte, a two-level command choice and a trailing
// checksum.
func buildCatalog() map[string]codec.Coder {
	getStatus := codec.MustRecord("GetStatus",
		codec.F("is_active", codec.MustBoolean()),
		codec.F("uptime", codec.MustUnsignedInteger(codec.WithWidth(4))),
	)
	reset := codec.MustRecord("Reset")
	general := codec.MustChoice("General", map[uint64]codec.Coder{
		0xfa: getStatus,
		0x02: reset,
	})
	upgrade := codec.MustRecord("Upgrade",
		codec.F("path", codec.MustString(1024)),
	)
	command := codec.MustChoice("Command", map[uint64]codec.Coder{
		0x54: general,
		0x01: upgrade,
	})
	header := codec.MustRecord("Header",
		codec.F("barker", codec.MustUnsignedInteger(codec.WithWidth(4), codec.WithDefault(0xcafebeef))),
		codec.F("size", codec.MustUnsignedInteger(codec.WithWidth(2))),
		codec.F("inverted_size", codec.MustUnsignedInteger(codec.WithWidth(2))),
	)
	flags := codec.MustBitPackedInteger("Flags", 1,
		codec.BF("packet_type", 0b11000000),
		codec.BF("protocol", 0b00110000),
		codec.BF("request_ack", 0b00001000),
		codec.BF("priority", 0b00000111),
	)
	packet := codec.MustRecord("Packet",
		codec.F("header", header),
		codec.F("flags", flags),
		codec.F("payload", command),
		codec.F("crc", codec.MustUnsignedInteger(codec.WithWidth(4))),
	)
	return map[string]codec.Coder{
		"header":     header,
		"flags":      flags,
		"get_status": getStatus,
		"reset":      reset,
		"general":    general,
		"upgrade":    upgrade,
		"command":    command,
		"packet":     packet,
	}
}

func catalogNames(catalog map[string]codec.Coder) []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
