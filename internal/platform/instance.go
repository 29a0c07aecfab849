package platform

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net"
	"strings"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const activateCommand = "activate"

// InstanceGuard holds the single-instance lock. A later launch can ask the
// holder to bring its window forward through Activate.
type InstanceGuard struct {
	listener net.Listener
	logger   *slog.Logger
}

// AcquireSingleInstance binds the localhost port derived from appName.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	return acquire(InstanceAddress(appName))
}

// InstanceAddress returns the loopback address owned by the running instance.
func InstanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func acquire(address string) (*InstanceGuard, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, err)
	}
	return &InstanceGuard{listener: listener}, nil
}

// SetLogger injects a logger.
func (guard *InstanceGuard) SetLogger(logger *slog.Logger) {
	guard.logger = logger
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil || guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

// Serve accepts activation requests until ctx is done or the guard is
// released, calling onActivate for each one.
func (guard *InstanceGuard) Serve(ctx context.Context, onActivate func()) error {
	go func() {
		<-ctx.Done()
		_ = guard.listener.Close()
	}()

	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept activation: %w", err)
		}
		if guard.readActivation(conn) && onActivate != nil {
			onActivate()
		}
	}
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (guard *InstanceGuard) readActivation(conn net.Conn) bool {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		guard.log().Debug("activation read failed", slog.Any("error", err))
		return false
	}
	return strings.TrimSpace(line) == activateCommand
}

func (guard *InstanceGuard) log() *slog.Logger {
	if guard.logger != nil {
		return guard.logger
	}
	return slog.Default()
}

// Activate asks the running instance of appName to show itself.
func Activate(appName string) error {
	return activate(InstanceAddress(appName))
}

func activate(address string) error {
	conn, err := net.DialTimeout("tcp", address, time.Second)
	if err != nil {
		return fmt.Errorf("dial running instance: %w", err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintln(conn, activateCommand); err != nil {
		return fmt.Errorf("send activation: %w", err)
	}
	return nil
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
