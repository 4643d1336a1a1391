package dashboard

import (
	"context"
	"sync"
	"time"

	"rolereader/resume-matcher/internal/models"
)

const DefaultHealthInterval = 30 * time.Second

type HealthStatus string

const (
	StatusChecking HealthStatus = "Checking..."
	StatusOnline   HealthStatus = "Online"
	StatusPartial  HealthStatus = "Partial"
	StatusOffline  HealthStatus = "Offline"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) (*models.HealthResponse, error)
}

func StatusFor(state PanelState, health *models.HealthResponse) HealthStatus {
	switch state {
	case StateIdle, StateLoading:
		return StatusChecking
	case StateError:
		return StatusOffline
	}
	if health != nil && health.Status == "healthy" && health.NLPReady {
		return StatusOnline
	}
	return StatusPartial
}

// HealthMonitor checks the service right away and then on every tick
// until Stop is called.
type HealthMonitor struct {
	checker  HealthChecker
	interval time.Duration
	panel    *Panel[*models.HealthResponse]
	onChange func(HealthStatus)

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running bool
}

func NewHealthMonitor(checker HealthChecker, interval time.Duration) *HealthMonitor {
	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	return &HealthMonitor{
		checker:  checker,
		interval: interval,
		panel:    NewPanel[*models.HealthResponse]("Health check failed"),
	}
}

// OnChange registers a callback run after every check. Set it before Start.
func (m *HealthMonitor) OnChange(fn func(HealthStatus)) {
	m.onChange = fn
}

func (m *HealthMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.stop = make(chan struct{})
	m.done = make(chan struct{})

	go m.run(ctx, m.stop, m.done)
}

func (m *HealthMonitor) run(ctx context.Context, stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Stop ends polling and waits for an in-flight check. It is safe to call
// more than once.
func (m *HealthMonitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stop)
	done := m.done
	m.mu.Unlock()

	<-done
}

// Check runs one health check now.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	_ = m.panel.Load(ctx, m.checker.HealthCheck)
	status := m.Status()
	if m.onChange != nil {
		m.onChange(status)
	}
	return status
}

func (m *HealthMonitor) Status() HealthStatus {
	return StatusFor(m.panel.State(), m.panel.Value())
}

func (m *HealthMonitor) Health() *models.HealthResponse {
	return m.panel.Value()
}

func (m *HealthMonitor) ErrorText() string {
	return m.panel.ErrorText()
}
