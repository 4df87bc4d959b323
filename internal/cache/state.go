package cache

import (
	"context"
	"errors"
	"net"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	"booking-platform/internal/metrics"
	"booking-platform/pkg/logger"
)

// State is the connection state of a RedisCache
type State int32

const (
	// StateIdle means no connection was attempted yet (lazy connect)
	StateIdle State = iota
	// StateConnecting means the first connection attempt is in flight
	StateConnecting
	// StateReady means the backing store answered and operations go through
	StateReady
	// StateReconnecting means the store was lost and the watcher is retrying
	StateReconnecting
	// StateClosed is terminal
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateReconnecting:
		return "reconnecting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// connState is the single piece of state the connection callbacks mutate.
// Transitions are compare-and-swap so each one is logged exactly once no
// matter how many commands fail concurrently during an outage.
type connState struct {
	v       atomic.Int32
	log     *logger.Logger
	metrics *metrics.Metrics
}

func newConnState(log *logger.Logger, m *metrics.Metrics) *connState {
	return &connState{log: log, metrics: m}
}

func (s *connState) load() State {
	return State(s.v.Load())
}

func (s *connState) connected() bool {
	return s.load() == StateReady
}

// transition moves to the target state unless already there or closed.
// allowed restricts the source states; nil means any.
func (s *connState) transition(to State, event string, err error, allowed ...State) bool {
	for {
		from := s.load()
		if from == to || from == StateClosed {
			return false
		}
		if len(allowed) > 0 && !stateIn(from, allowed) {
			return false
		}
		if !s.v.CompareAndSwap(int32(from), int32(to)) {
			continue
		}

		s.metrics.CacheTransition(to.String(), to == StateReady)
		if err != nil {
			s.log.Warnw("cache connection state changed",
				"event", event,
				"from", from.String(),
				"to", to.String(),
				"error", err,
			)
		} else {
			s.log.Infow("cache connection state changed",
				"event", event,
				"from", from.String(),
				"to", to.String(),
			)
		}
		return true
	}
}

func stateIn(s State, set []State) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

// beginConnect claims the first connection attempt
func (s *connState) beginConnect() bool {
	return s.v.CompareAndSwap(int32(StateIdle), int32(StateConnecting))
}

// resetConnect hands an abandoned first attempt back to the next operation
func (s *connState) resetConnect() {
	s.v.CompareAndSwap(int32(StateConnecting), int32(StateIdle))
}

func (s *connState) onConnect() {
	s.transition(StateReady, "connect", nil)
}

func (s *connState) onError(err error) {
	s.transition(StateReconnecting, "error", err, StateIdle, StateConnecting, StateReady)
}

// onReconnecting records one watcher attempt; the state itself only moves
// when the attempt succeeds
func (s *connState) onReconnecting(attempt int, err error) {
	s.metrics.CacheReconnectAttempt(err == nil)
	if err != nil {
		s.log.Debugw("cache reconnect attempt failed", "event", "reconnecting", "attempt", attempt, "error", err)
		return
	}
	s.log.Infow("cache reconnect attempt succeeded", "event", "reconnecting", "attempt", attempt)
}

func (s *connState) onClose() {
	s.transition(StateClosed, "close", nil)
}

// stateHook feeds go-redis dial and command failures into connState
type stateHook struct {
	state *connState
}

var _ redis.Hook = stateHook{}

func (h stateHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil && isConnectivityError(err) {
			h.state.onError(err)
		}
		return conn, err
	}
}

func (h stateHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if isConnectivityError(err) {
			h.state.onError(err)
		}
		return err
	}
}

func (h stateHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if isConnectivityError(err) {
			h.state.onError(err)
		}
		return err
	}
}

// isConnectivityError separates transport failures from replies that prove
// the server is alive (nil reply, WRONGTYPE, ...) and from the caller giving up.
func isConnectivityError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var replyErr redis.Error
	return !errors.As(err, &replyErr)
}
