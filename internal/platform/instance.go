package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another countdown widget holds the lock.
var ErrAlreadyRunning = errors.New("countdown widget already running")

const (
	lockPortBase  = 20000
	lockPortRange = 20000
)

// InstanceLock keeps a loopback port bound for the lifetime of the widget so
// that a second launch finds it taken.
type InstanceLock struct {
	listener net.Listener
}

// LockInstance acquires the per-user lock for appName.
func LockInstance(appName string) (*InstanceLock, error) {
	listener, err := net.Listen("tcp", LockAddress(appName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, err)
	}
	return &InstanceLock{listener: listener}, nil
}

// LockAddress derives the loopback address guarding appName.
func LockAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return fmt.Sprintf("127.0.0.1:%d", lockPortBase+int(hash.Sum32()%lockPortRange))
}

// Release frees the lock. It is safe to call on a nil lock.
func (lock *InstanceLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	lock.listener = nil
	return err
}
