package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/brgrr/internal/catalog"
	"github.com/mmynk/brgrr/internal/metrics"
	"github.com/mmynk/brgrr/internal/storage"
)

var (
	ErrDeviceMismatch = errors.New("session belongs to a different device")
	ErrSessionEnded   = errors.New("session has ended")
)

const defaultEndedRetention = 24 * time.Hour

// Manager maps session ids to controllers.
type Manager struct {
	mu          sync.Mutex
	controllers map[string]*Controller
	// ended remembers when each closed session id ended, so its token
	// cannot bring it back.
	ended map[string]time.Time

	sessionStore storage.Store
	deviceStore  storage.Store
	catalog      *catalog.Catalog
	metrics      *metrics.Metrics
	idleTimeout  time.Duration
	retention    time.Duration
	now          func() time.Time
}

// Options configures a Manager.
type Options struct {
	// SessionStore holds identity, last order and history.
	SessionStore storage.Store
	// DeviceStore holds favorites.
	DeviceStore storage.Store
	// Catalog defaults to catalog.Default().
	Catalog *catalog.Catalog
	// Metrics may be nil.
	Metrics *metrics.Metrics
	// IdleTimeout ends sessions with no activity for this long. Zero disables sweeping.
	IdleTimeout time.Duration
	// EndedRetention is how long ended session ids stay refused. It should
	// cover the session token lifetime. Defaults to 24h.
	EndedRetention time.Duration
}

// NewManager creates a Manager.
func NewManager(opts Options) *Manager {
	c := opts.Catalog
	if c == nil {
		c = catalog.Default()
	}
	retention := opts.EndedRetention
	if retention <= 0 {
		retention = defaultEndedRetention
	}
	return &Manager{
		controllers:  make(map[string]*Controller),
		ended:        make(map[string]time.Time),
		sessionStore: opts.SessionStore,
		deviceStore:  opts.DeviceStore,
		catalog:      c,
		metrics:      opts.Metrics,
		idleTimeout:  opts.IdleTimeout,
		retention:    retention,
		now:          time.Now,
	}
}

// Catalog returns the menu sessions are priced against.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

// Start opens a new tab session. An empty deviceID is replaced by a new one.
func (m *Manager) Start(deviceID string) *Controller {
	if deviceID == "" {
		deviceID = uuid.NewString()
	}
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()

	ctrl := m.newControllerLocked(id, deviceID)
	slog.Info("Session started", "session_id", id, "device_id", deviceID)
	return ctrl
}

// Get returns the controller of a session, recreating it (with the
// identity restored from storage) if it was evicted. Every call counts as
// activity, both for the idle sweep and for stores that expire data.
// Ended sessions return ErrSessionEnded.
func (m *Manager) Get(ctx context.Context, sessionID, deviceID string) (*Controller, error) {
	ctrl, err := m.lookup(ctx, sessionID, deviceID)
	if err != nil {
		return nil, err
	}
	if err := ctrl.adapter.KeepAlive(ctx, m.now()); err != nil {
		slog.Warn("Failed to refresh session storage", "session_id", sessionID, "error", err)
	}
	return ctrl, nil
}

func (m *Manager) lookup(ctx context.Context, sessionID, deviceID string) (*Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.ended[sessionID]; ok {
		return nil, ErrSessionEnded
	}
	if ctrl, ok := m.controllers[sessionID]; ok {
		if ctrl.deviceID != deviceID {
			return nil, ErrDeviceMismatch
		}
		ctrl.touch(m.now())
		return ctrl, nil
	}

	ctrl := m.newControllerLocked(sessionID, deviceID)
	if err := ctrl.restoreIdentity(ctx); err != nil {
		delete(m.controllers, sessionID)
		m.metrics.SessionClosed()
		return nil, fmt.Errorf("failed to restore session %s: %w", sessionID, err)
	}
	slog.Debug("Session restored", "session_id", sessionID, "logged_in", ctrl.user != nil)
	return ctrl, nil
}

// End closes a session: session-scoped data is dropped, the controller is
// forgotten and the id is refused from then on. The device favorite is kept.
func (m *Manager) End(ctx context.Context, sessionID, deviceID string) error {
	m.mu.Lock()
	ctrl, ok := m.controllers[sessionID]
	if ok && ctrl.deviceID != deviceID {
		m.mu.Unlock()
		return ErrDeviceMismatch
	}
	m.retireLocked(sessionID, ctrl)
	m.mu.Unlock()

	return m.clear(ctx, ctrl, sessionID, deviceID)
}

// retireLocked removes a session from the live set and records it as ended.
// ctrl may be nil when the session has no controller.
func (m *Manager) retireLocked(sessionID string, ctrl *Controller) {
	if ctrl != nil {
		delete(m.controllers, sessionID)
		m.metrics.SessionClosed()
	}
	m.ended[sessionID] = m.now()
}

// clear deletes session storage. Holding the controller lock makes any
// operation already running finish first, and any waiting one see the
// session as ended, so nothing is written after the delete.
func (m *Manager) clear(ctx context.Context, ctrl *Controller, sessionID, deviceID string) error {
	if ctrl != nil {
		ctrl.mu.Lock()
		defer ctrl.mu.Unlock()
		ctrl.ended = true
	}

	adapter := storage.NewAdapter(m.sessionStore, m.deviceStore, sessionID, deviceID)
	if err := adapter.EndSession(ctx); err != nil {
		return err
	}
	slog.Info("Session ended", "session_id", sessionID)
	return nil
}

// Len returns the number of live controllers.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.controllers)
}

// Sweep ends every session idle for longer than the idle timeout and
// returns how many were ended. It also forgets ended ids older than the
// retention period.
func (m *Manager) Sweep(ctx context.Context) int {
	now := m.now()

	m.mu.Lock()
	for id, at := range m.ended {
		if now.Sub(at) > m.retention {
			delete(m.ended, id)
		}
	}
	if m.idleTimeout <= 0 {
		m.mu.Unlock()
		return 0
	}
	cutoff := now.Add(-m.idleTimeout)
	var stale []*Controller
	for _, ctrl := range m.controllers {
		if ctrl.idleSince().Before(cutoff) {
			stale = append(stale, ctrl)
		}
	}
	m.mu.Unlock()

	ended := 0
	for _, ctrl := range stale {
		if !m.retireIfIdle(ctrl, cutoff) {
			continue
		}
		if err := m.clear(ctx, ctrl, ctrl.id, ctrl.deviceID); err != nil {
			slog.Warn("Failed to clear idle session", "session_id", ctrl.id, "error", err)
			continue
		}
		ended++
	}
	return ended
}

// retireIfIdle retires ctrl unless it was used or replaced since the sweep
// collected it.
func (m *Manager) retireIfIdle(ctrl *Controller, cutoff time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.controllers[ctrl.id] != ctrl || !ctrl.idleSince().Before(cutoff) {
		return false
	}
	m.retireLocked(ctrl.id, ctrl)
	return true
}

// Run sweeps idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(ctx); n > 0 {
				slog.Info("Idle sessions ended", "count", n)
			}
		}
	}
}

func (m *Manager) newControllerLocked(id, deviceID string) *Controller {
	adapter := storage.NewAdapter(m.sessionStore, m.deviceStore, id, deviceID)
	ctrl := newController(id, deviceID, m.catalog, adapter, m.metrics)
	ctrl.touch(m.now())
	m.controllers[id] = ctrl
	m.metrics.SessionOpened()
	return ctrl
}
