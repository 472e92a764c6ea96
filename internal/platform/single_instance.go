package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strconv"
	"sync"
	"time"
)

// ErrAlreadyRunning is returned when another process holds the instance port.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minPort = 20000
	maxPort = 39999

	activateTimeout = time.Second
)

// InstanceGuard keeps one Pomodoro process per user session, so the GUI and
// the terminal front end never tick two clocks against the same settings.
// Later launches can reach the running process through Activate.
type InstanceGuard struct {
	listener net.Listener

	once sync.Once
	done chan struct{}
}

// AcquireSingleInstance binds the loopback port derived from appName.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrAlreadyRunning, address, err)
	}
	return &InstanceGuard{listener: listener, done: make(chan struct{})}, nil
}

// Serve calls onActivate for every Activate request until Release. It blocks,
// so run it on its own goroutine.
func (guard *InstanceGuard) Serve(onActivate func()) {
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			select {
			case <-guard.done:
				return
			default:
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return
		}
		_ = conn.Close()
		if onActivate != nil {
			onActivate()
		}
	}
}

// Release frees the port and stops Serve.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	var err error
	guard.once.Do(func() {
		close(guard.done)
		err = guard.listener.Close()
	})
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil || guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

// Activate asks the running instance of appName to come to the front.
func Activate(appName string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), activateTimeout)
	if err != nil {
		return fmt.Errorf("reach running instance: %w", err)
	}
	return conn.Close()
}

// Port maps appName onto a stable port in [minPort, maxPort].
func Port(appName string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return minPort + int(hash.Sum32()%uint32(maxPort-minPort+1))
}

func instanceAddress(appName string) string {
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(Port(appName)))
}
