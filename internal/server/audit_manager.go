package server

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/config"
)

const sinkTimeout = 5 * time.Second

// AuditManager batches staff audit entries and hands them to a sink from a small worker pool.
// When the sink fails or the pipeline is saturated, entries are written to the log instead.
type AuditManager struct {
	workerCount int
	batchSize   int
	timeout     time.Duration
	sink        AuditSink
	logger      *zap.Logger

	inputChan  chan AuditLogEntry
	batchChan  chan []AuditLogEntry
	shutdownCh chan struct{}
	once       sync.Once

	// sendMu orders LogEntry sends against Shutdown so no entry lands in
	// inputChan after the aggregator has drained it.
	sendMu sync.RWMutex
	closed bool

	wg           sync.WaitGroup
	pendingMu    sync.Mutex
	pendingCount int
}

func NewAuditManager(cfg config.AuditConfig, sink AuditSink, logger *zap.Logger) *AuditManager {
	return &AuditManager{
		workerCount: cfg.Workers,
		batchSize:   cfg.BatchSize,
		timeout:     cfg.FlushTimeout,
		sink:        sink,
		logger:      logger.Named("audit"),
		inputChan:   make(chan AuditLogEntry, cfg.Workers*cfg.BatchSize*2),
		batchChan:   make(chan []AuditLogEntry, cfg.Workers*2),
		shutdownCh:  make(chan struct{}),
	}
}

func (m *AuditManager) Shutdown(ctx context.Context) {
	m.once.Do(func() {
		m.logger.Info("Initiating AuditManager shutdown")
		m.sendMu.Lock()
		m.closed = true
		m.sendMu.Unlock()
		close(m.shutdownCh)

		done := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			m.logger.Info("AuditManager shutdown completed", zap.Int("pending", m.Pending()))
		case <-ctx.Done():
			m.logger.Warn("AuditManager shutdown interrupted", zap.Int("pending", m.Pending()))
		}
	})
}

func (m *AuditManager) monitorShutdown(ctx context.Context) {
	select {
	case <-ctx.Done():
		m.Shutdown(context.Background())
	case <-m.shutdownCh:
	}
}

func (m *AuditManager) Start(ctx context.Context) {
	m.logger.Info("Starting AuditManager", zap.Int("workers", m.workerCount))
	m.wg.Add(1)
	go m.runAggregator()

	for i := 0; i < m.workerCount; i++ {
		m.wg.Add(1)
		go m.runWorker(ctx, i)
	}

	go m.monitorShutdown(ctx)
}

func (m *AuditManager) LogEntry(ctx context.Context, entry AuditLogEntry) {
	m.updatePendingCount(1)

	m.sendMu.RLock()
	defer m.sendMu.RUnlock()
	if m.closed {
		m.emergencyLog(entry)
		return
	}

	select {
	case m.inputChan <- entry:
	case <-ctx.Done():
		m.emergencyLog(entry)
	}
}

// runAggregator keeps reading until Shutdown, which monitorShutdown also
// triggers when the start context ends.
func (m *AuditManager) runAggregator() {
	defer m.wg.Done()

	var (
		batch    []AuditLogEntry
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	drain:
		for {
			select {
			case entry := <-m.inputChan:
				batch = append(batch, entry)
			default:
				break drain
			}
		}
		if len(batch) > 0 {
			m.dispatchBatch(batch)
		}
		close(m.batchChan)
	}()

	for {
		select {
		case entry := <-m.inputChan:
			batch = append(batch, entry)
			if len(batch) >= m.batchSize {
				m.dispatchBatch(batch)
				batch = nil
				if timer != nil {
					timer.Stop()
				}
				timeoutC = nil
			} else if len(batch) == 1 {
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(m.timeout)
				timeoutC = timer.C
			}

		case <-timeoutC:
			m.dispatchBatch(batch)
			batch = nil
			timeoutC = nil

		case <-m.shutdownCh:
			return
		}
	}
}

func (m *AuditManager) dispatchBatch(batch []AuditLogEntry) {
	batchCopy := make([]AuditLogEntry, len(batch))
	copy(batchCopy, batch)

	select {
	case m.batchChan <- batchCopy:
	default:
		m.logBatch(-1, batchCopy)
	}
}

func (m *AuditManager) runWorker(ctx context.Context, id int) {
	defer m.wg.Done()
	m.logger.Debug("Audit worker started", zap.Int("worker", id))

	for batch := range m.batchChan {
		m.flush(ctx, id, batch)
	}
	m.logger.Debug("Audit worker exiting", zap.Int("worker", id))
}

func (m *AuditManager) flush(ctx context.Context, workerID int, batch []AuditLogEntry) {
	sinkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkTimeout)
	defer cancel()

	if err := m.sink.RecordAudit(sinkCtx, batch); err != nil {
		m.logger.Error("Failed to record audit batch", zap.Int("worker", workerID), zap.Error(err))
		m.logBatch(workerID, batch)
		return
	}
	m.updatePendingCount(-len(batch))
}

func (m *AuditManager) emergencyLog(entry AuditLogEntry) {
	m.logger.Warn("Audit entry dropped from pipeline", zap.Any("entry", entry))
	m.updatePendingCount(-1)
}

func (m *AuditManager) logBatch(workerID int, batch []AuditLogEntry) {
	for _, entry := range batch {
		m.logger.Info("Audit entry", zap.Int("worker", workerID), zap.Any("entry", entry))
	}
	m.updatePendingCount(-len(batch))
}

func (m *AuditManager) updatePendingCount(delta int) {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	m.pendingCount += delta
}

func (m *AuditManager) Pending() int {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	return m.pendingCount
}
