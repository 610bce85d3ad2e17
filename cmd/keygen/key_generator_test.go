package keygen

import (
	"bytes"
	"testing"

	"github.com/examcoin/examd/address"
	"github.com/examcoin/examd/chaincfg"
	"github.com/examcoin/examd/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	r := chaincfg.NewRegistry(ulogger.TestLogger{})

	for _, p := range r.Profiles() {
		t.Run(p.Name(), func(t *testing.T) {
			kp, err := Generate(p)
			require.NoError(t, err)

			assert.Equal(t, p.Name(), kp.Network)

			d, err := address.Decode(kp.Address, p)
			require.NoError(t, err)
			assert.Equal(t, chaincfg.PubKeyAddress, d.Type)

			d, err = address.Decode(kp.SecretKey, p)
			require.NoError(t, err)
			assert.Equal(t, chaincfg.SecretKey, d.Type)
			assert.True(t, d.Compressed)
		})
	}
}

func TestEncodeKeyPair(t *testing.T) {
	p := chaincfg.NewRegistry(ulogger.TestLogger{}).ProfileFor(chaincfg.Main)

	kp, err := encodeKeyPair(bytes.Repeat([]byte{1}, 32), p)
	require.NoError(t, err)

	assert.Equal(t, "JJsj5hjYHt5viUoSBHY3eRyYkjvFVv6GVewMBftdK8vtb6akyXb2", kp.SecretKey)
	assert.Equal(t, "EUFL6dmXWSapcMEC2RmRtipd6ALqKwwqVY", kp.Address)
	assert.Contains(t, kp.String(), "address: EUFL6dmXWSapcMEC2RmRtipd6ALqKwwqVY")

	_, err = encodeKeyPair([]byte{1}, p)
	require.Error(t, err)
}
