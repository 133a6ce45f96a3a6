package platform

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockInstanceIsExclusive(t *testing.T) {
	appName := fmt.Sprintf("countdown-test-%d", time.Now().UnixNano())

	first, err := LockInstance(appName)
	require.NoError(t, err)

	second, err := LockInstance(appName)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Nil(t, second)

	require.NoError(t, first.Release())
	require.NoError(t, first.Release())

	third, err := LockInstance(appName)
	require.NoError(t, err)
	assert.NoError(t, third.Release())
}

func TestLockAddressIsStable(t *testing.T) {
	assert.Equal(t, LockAddress("Countdown"), LockAddress("Countdown"))
	assert.NotEqual(t, LockAddress("Countdown"), LockAddress("Countdown-dev"))

	var nilLock *InstanceLock
	assert.NoError(t, nilLock.Release())
}
