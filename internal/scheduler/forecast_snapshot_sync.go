package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/subscription-forecast-api/infrastructure/repository"
	"github.com/vfg2006/subscription-forecast-api/internal/config"
	"github.com/vfg2006/subscription-forecast-api/internal/domain"
	"github.com/vfg2006/subscription-forecast-api/internal/usecases/catalog"
	"github.com/vfg2006/subscription-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/subscription-forecast-api/pkg/utils"
)

// ForecastSnapshotSyncConfig representa a configuração do agendador de snapshots de baseline
type ForecastSnapshotSyncConfig struct {
	CronSchedule  string
	SyncEnabled   bool
	RetentionDays int
}

// ForecastSnapshotSyncService roda periodicamente a simulação de baseline do
// catálogo persistido e grava o resumo resultante, mantendo um histórico do
// forecast sem nenhum override aplicado
type ForecastSnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              ForecastSnapshotSyncConfig
	catalogService      catalog.CatalogService
	snapshotRepo        repository.SnapshotRepository
	simulator           forecasting.Simulator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewForecastSnapshotSyncService cria uma nova instância do serviço de snapshots de baseline
func NewForecastSnapshotSyncService(
	catalogService catalog.CatalogService,
	snapshotRepo repository.SnapshotRepository,
	simulator forecasting.Simulator,
	appConfig *config.Config,
) *ForecastSnapshotSyncService {
	snapshotConfig := ForecastSnapshotSyncConfig{
		CronSchedule:  appConfig.SnapshotSync.CronSchedule,
		SyncEnabled:   appConfig.SnapshotSync.Enabled,
		RetentionDays: appConfig.SnapshotSync.RetentionDays,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  snapshotConfig.CronSchedule,
		"sync_enabled":   snapshotConfig.SyncEnabled,
		"retention_days": snapshotConfig.RetentionDays,
	}).Info("Configuração do agendador de snapshots de baseline carregada")

	return &ForecastSnapshotSyncService{
		scheduler:      scheduler,
		config:         snapshotConfig,
		catalogService: catalogService,
		snapshotRepo:   snapshotRepo,
		simulator:      simulator,
		syncRunning:    false,
	}
}

// Start inicia o agendador
func (s *ForecastSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Snapshots de baseline desabilitados por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots de baseline")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncForecastSnapshot()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar snapshot de baseline: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots de baseline")
		s.scheduler.Stop()
	}()

	return nil
}

// syncForecastSnapshot simula o baseline do catálogo atual e persiste o resumo
func (s *ForecastSnapshotSyncService) syncForecastSnapshot() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot de baseline já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando snapshot de baseline do forecast")

	projects, err := s.catalogService.List()
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar catálogo para snapshot de baseline")
		return
	}

	if len(projects) == 0 {
		logrus.Info("Catálogo vazio, snapshot de baseline ignorado")
		return
	}

	// Baseline: nenhum override, todos os projetos selecionados
	response, err := s.simulator.Simulate(&domain.SimulationRequest{}, projects)
	if err != nil {
		logrus.WithError(err).Error("Erro ao simular baseline para snapshot")
		return
	}

	snapshot := &domain.ForecastSnapshot{
		TakenAt:      startTime.UTC(),
		MonthCount:   len(response.Metadata.Months),
		ProjectCount: len(response.Metadata.Projects),
		Summary:      response.Summary,
	}

	if err := s.snapshotRepo.Save(snapshot); err != nil {
		logrus.WithError(err).Error("Erro ao salvar snapshot de baseline")
		return
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debugf("Resumo do snapshot de baseline: %s", utils.PrettyJson(response.Summary))
	}

	s.pruneOldSnapshots()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"months":   snapshot.MonthCount,
		"projects": snapshot.ProjectCount,
	}).Info("Snapshot de baseline concluído")

	s.lastSyncCompletedAt = time.Now()
}

// pruneOldSnapshots remove snapshots além da janela de retenção
func (s *ForecastSnapshotSyncService) pruneOldSnapshots() {
	if s.config.RetentionDays <= 0 {
		return
	}

	removed, err := s.snapshotRepo.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao limpar snapshots antigos")
		return
	}

	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"removed":        removed,
			"retention_days": s.config.RetentionDays,
		}).Info("Snapshots antigos removidos")
	}
}

// TriggerManualSync inicia manualmente um snapshot de baseline
func (s *ForecastSnapshotSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot de baseline já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando snapshot manual de baseline")
	go s.syncForecastSnapshot()
}

// GetStatus retorna o status atual do agendador
func (s *ForecastSnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
