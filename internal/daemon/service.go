// Package daemon provides the long-running portfolio monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"sitebudget/internal/insight"
	"sitebudget/internal/model"
	"sitebudget/internal/report"
	"sitebudget/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Addr         string
	Interval     time.Duration
	EventsBuffer int
}

// Snapshot is a compact portfolio state for status/event payloads.
type Snapshot struct {
	At             time.Time `json:"at"`
	Projects       int       `json:"projects"`
	Expenses       int       `json:"expenses"`
	TotalBudget    float64   `json:"total_budget"`
	TotalSpent     float64   `json:"total_spent"`
	Remaining      float64   `json:"remaining"`
	HealthScore    float64   `json:"health_score"`
	RiskCount      int       `json:"risk_count"`
	CriticalRisks  int       `json:"critical_risks"`
	LowStockItems  int       `json:"low_stock_items"`
	OutOfStock     int       `json:"out_of_stock"`
	InventoryValue float64   `json:"inventory_value"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Projects      int     `json:"projects"`
	Expenses      int     `json:"expenses"`
	TotalSpent    float64 `json:"total_spent"`
	RiskCount     int     `json:"risk_count"`
	LowStockItems int     `json:"low_stock_items"`
	OutOfStock    int     `json:"out_of_stock"`
}

func (d Delta) isZero() bool {
	return d.Projects == 0 &&
		d.Expenses == 0 &&
		d.TotalSpent == 0 &&
		d.RiskCount == 0 &&
		d.LowStockItems == 0 &&
		d.OutOfStock == 0
}

// Event is emitted whenever the portfolio snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Summary         Snapshot  `json:"summary"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg   Config
	store *store.Store

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service watching the given store.
func New(cfg Config, st *store.Store) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 5 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:7421"
	}

	return &Service{
		cfg:       cfg,
		store:     st,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/report", s.handleReport)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	now := time.Now()
	snap := takeSnapshot(s.store, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
			Delta:     Delta{},
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "budget_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func takeSnapshot(st *store.Store, at time.Time) Snapshot {
	projects := st.Projects()
	expenses := st.Expenses()
	items := st.Items()

	budgetAnalysis := insight.AnalyzeBudget(projects, expenses)
	stockAnalysis := insight.AnalyzeInventory(items)
	invStats := st.InventoryStats()

	critical := 0
	for _, r := range budgetAnalysis.Risks {
		if r.Level == insight.LevelCritical {
			critical++
		}
	}

	var totalBudget, totalSpent float64
	for _, in := range budgetAnalysis.Insights {
		if in.Type == insight.TypePortfolio {
			totalBudget = in.TotalBudget
			totalSpent = in.TotalSpent
		}
	}

	return Snapshot{
		At:             at,
		Projects:       len(projects),
		Expenses:       len(expenses),
		TotalBudget:    totalBudget,
		TotalSpent:     totalSpent,
		Remaining:      totalBudget - totalSpent,
		HealthScore:    budgetAnalysis.Score,
		RiskCount:      len(budgetAnalysis.Risks),
		CriticalRisks:  critical,
		LowStockItems:  stockAnalysis.LowStockCount,
		OutOfStock:     stockAnalysis.OutOfStockCount,
		InventoryValue: invStats.TotalValue,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Projects:      curr.Projects - prev.Projects,
		Expenses:      curr.Expenses - prev.Expenses,
		TotalSpent:    curr.TotalSpent - prev.TotalSpent,
		RiskCount:     curr.RiskCount - prev.RiskCount,
		LowStockItems: curr.LowStockItems - prev.LowStockItems,
		OutOfStock:    curr.OutOfStock - prev.OutOfStock,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Summary:         s.snapshot,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

// handleReport compiles a fresh full-range report on demand. Optional
// from/to query parameters narrow the range.
func (s *Service) handleReport(w http.ResponseWriter, r *http.Request) {
	var from, to time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.ParseInLocation(model.DateLayout, v, time.Local)
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.ParseInLocation(model.DateLayout, v, time.Local)
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
		to = t
	}

	rep := report.Generate(s.store.Projects(), s.store.Expenses(), from, to)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rep)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
