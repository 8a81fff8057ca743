// Package blocktest builds pcapng captures for tests with gopacket's
// pcapng writer.
package blocktest

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/require"

	"ngview/internal/block"
)

// Capture returns a capture with one Ethernet interface and one Enhanced
// Packet per payload. The section header carries no options.
func Capture(t testing.TB, payloads ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := pcapgo.NewNgWriterInterface(&buf, pcapgo.NgInterface{
		Name:     "eth0",
		LinkType: layers.LinkTypeEthernet,
	}, pcapgo.NgWriterOptions{})
	require.NoError(t, err)
	for i, p := range payloads {
		ci := gopacket.CaptureInfo{
			Timestamp:     time.Unix(1700000000+int64(i), 0),
			CaptureLength: len(p),
			Length:        len(p),
		}
		require.NoError(t, w.WritePacket(ci, p))
	}
	require.NoError(t, w.Flush())
	return buf.Bytes()
}

// Blocks decodes Capture(t, payloads...).
func Blocks(t testing.TB, payloads ...[]byte) []block.Block {
	t.Helper()
	blocks, err := block.Decode(Capture(t, payloads...), nil)
	require.NoError(t, err)
	return blocks
}
