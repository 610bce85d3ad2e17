package chaincfg

import (
	"math/rand"
	"testing"
	"time"

	"github.com/examcoin/examd/errors"
	"github.com/examcoin/examd/ulogger"
	"github.com/stretchr/testify/require"
)

var testNow = time.Unix(1700000000, 0)

func newTestRegistry(t *testing.T, opts ...RegistryOption) *Registry {
	t.Helper()

	opts = append([]RegistryOption{WithSeedClock(testNow, rand.New(rand.NewSource(1)))}, opts...)

	return NewRegistry(ulogger.TestLogger{}, opts...)
}

// requirePanicsWithCode fails unless f panics with an *errors.Error of code.
func requirePanicsWithCode(t *testing.T, code errors.ERR, f func()) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")

		err, ok := r.(*errors.Error)
		require.True(t, ok, "panic value %v is not an *errors.Error", r)
		require.Equal(t, code, err.Code(), err.Error())
	}()

	f()
}
