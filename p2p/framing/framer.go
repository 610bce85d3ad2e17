// Package framing reads and writes peer-to-peer messages framed with the
// magic bytes of the active network.
package framing

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/bsv-blockchain/go-wire"
	"github.com/examcoin/examd/chaincfg"
	"github.com/examcoin/examd/errors"
	"go.uber.org/atomic"
)

// Framer frames messages for one network at a time. Reconfigure switches the
// network; reads and writes in flight finish with the network they started
// with.
type Framer struct {
	net             *atomic.Uint32
	kind            *atomic.Uint32
	protocolVersion *atomic.Uint32
}

// NewFramer returns a Framer for params using wire.ProtocolVersion.
func NewFramer(params *chaincfg.Params) *Framer {
	f := &Framer{
		net:             atomic.NewUint32(0),
		kind:            atomic.NewUint32(0),
		protocolVersion: atomic.NewUint32(wire.ProtocolVersion),
	}

	f.Reconfigure(params)

	return f
}

// Reconfigure makes params the expected network. It has the chaincfg.SelectHook
// signature so it can be registered with chaincfg.WithSelectHook.
func (f *Framer) Reconfigure(params *chaincfg.Params) {
	f.net.Store(uint32(params.Net()))
	f.kind.Store(uint32(params.Kind()))
}

// SetProtocolVersion changes the protocol version used to encode payloads.
func (f *Framer) SetProtocolVersion(pver uint32) {
	f.protocolVersion.Store(pver)
}

// ProtocolVersion returns the protocol version used to encode payloads.
func (f *Framer) ProtocolVersion() uint32 {
	return f.protocolVersion.Load()
}

// Net returns the magic the framer writes and expects.
func (f *Framer) Net() wire.BitcoinNet {
	return wire.BitcoinNet(f.net.Load())
}

// Kind returns the network the framer is configured for.
func (f *Framer) Kind() chaincfg.NetworkKind {
	return chaincfg.NetworkKind(f.kind.Load())
}

// WriteMessage writes msg to w framed with the configured magic.
func (f *Framer) WriteMessage(w io.Writer, msg wire.Message) error {
	if err := wire.WriteMessage(w, msg, f.ProtocolVersion(), f.Net()); err != nil {
		return errors.NewNetworkError("failed to write %s message", msg.Command(), err)
	}

	return nil
}

// ReadMessage reads the next message from r. A message that does not start
// with the configured magic fails with ERR_NETWORK_MAGIC_MISMATCH before its
// payload is read; the error data carries the expected and received magic.
// A clean end of stream is returned as io.EOF.
func (f *Framer) ReadMessage(r io.Reader) (wire.Message, []byte, error) {
	expected := f.Net()

	var magic [4]byte

	if n, err := io.ReadFull(r, magic[:]); err != nil {
		if n == 0 && err == io.EOF {
			return nil, nil, io.EOF
		}

		return nil, nil, errors.NewNetworkInvalidResponseError("failed to read message magic", err)
	}

	got := wire.BitcoinNet(binary.LittleEndian.Uint32(magic[:]))
	if got != expected {
		mismatch := errors.NewNetworkMagicMismatchError("message magic %s does not match %s", got, expected)
		mismatch.SetData("expected", uint32(expected))
		mismatch.SetData("received", uint32(got))

		return nil, nil, mismatch
	}

	msg, payload, err := wire.ReadMessage(io.MultiReader(bytes.NewReader(magic[:]), r), f.ProtocolVersion(), expected)
	if err != nil {
		return nil, nil, errors.NewNetworkInvalidResponseError("failed to read %s message", f.Kind(), err)
	}

	return msg, payload, nil
}

// ProfileSource lists the known network profiles. *chaincfg.Registry
// satisfies it.
type ProfileSource interface {
	Profiles() []*chaincfg.Params
}

// NetworkForMagic returns the network whose magic is net. It identifies
// traffic that leaked in from another network.
func NetworkForMagic(profiles ProfileSource, net wire.BitcoinNet) (chaincfg.NetworkKind, bool) {
	for _, p := range profiles.Profiles() {
		if p.Net() == net {
			return p.Kind(), true
		}
	}

	return 0, false
}
