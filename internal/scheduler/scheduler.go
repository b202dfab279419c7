package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"dropship-dashboard/internal/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	idTimeLayout      = "20060102150405"
	resultTimeLayout  = "2006-01-02 15:04:05"
	defaultRunTimeout = 10 * time.Minute
)

// Runner executa um tipo de tarefa
type Runner interface {
	Run(ctx context.Context, params map[string]any) (map[string]any, error)
}

// RunnerFunc adapta uma função para Runner
type RunnerFunc func(ctx context.Context, params map[string]any) (map[string]any, error)

func (f RunnerFunc) Run(ctx context.Context, params map[string]any) (map[string]any, error) {
	return f(ctx, params)
}

// Store espelha o registro em armazenamento persistente
type Store interface {
	SaveTask(ctx context.Context, t *models.ScheduledTask) error
	UpdateTask(ctx context.Context, t *models.ScheduledTask) error
	ListTasks(ctx context.Context) ([]models.ScheduledTask, error)
}

// Notifier é avisado de cada execução concluída
type Notifier interface {
	TaskFinished(ctx context.Context, t *models.ScheduledTask)
}

// Recorder recebe as métricas das tarefas
type Recorder interface {
	ObserveTask(taskType, status string, elapsed time.Duration)
	SetScheduledTasks(n int)
}

// Config contém as dependências opcionais de um Scheduler
type Config struct {
	Store      Store
	Notifier   Notifier
	Metrics    Recorder
	Logger     *zap.Logger
	RunTimeout time.Duration
}

type entry struct {
	task   *models.ScheduledTask
	cronID cron.EntryID
}

// Scheduler executa as tarefas registradas na sua frequência. Execuções nunca se sobrepõem:
// uma tarefa por vez em todo o registro.
type Scheduler struct {
	cron    *cron.Cron
	runners map[string]Runner
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	tasks   map[string]*entry
	started bool
	ctx     context.Context
	cancel  context.CancelFunc

	runMu sync.Mutex
	// storeMu ordena as gravações no espelho na mesma ordem das mudanças no registro
	storeMu sync.Mutex
}

// New cria um agendador parado com os runners indexados por tipo de tarefa
func New(runners map[string]Runner, cfg Config) *Scheduler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = defaultRunTimeout
	}
	logger := cfg.Logger.Named("scheduler")

	s := &Scheduler{
		runners: runners,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		tasks:   make(map[string]*entry),
	}
	s.cron = cron.New(
		cron.WithLogger(newCronLogger(logger)),
		cron.WithChain(cron.Recover(newCronLogger(logger))),
	)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// Start começa a disparar as tarefas agendadas. Chamar duas vezes não tem efeito.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}
	s.started = true
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("tasks", len(s.tasks)))
}

// Stop para o timer e espera a tarefa em execução, no limite de ctx.
// Chamar em um agendador parado não tem efeito.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.cancel()
	done := s.cron.Stop()
	s.mu.Unlock()

	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for running task: %w", ctx.Err())
	}
}

// ScheduleTask registra uma tarefa e retorna seu id. Uma frequência inválida
// retorna ErrInvalidFrequency e não registra nada.
func (s *Scheduler) ScheduleTask(taskType, frequency string, params map[string]any) (string, error) {
	schedule, err := ParseFrequency(frequency)
	if err != nil {
		return "", err
	}
	if params == nil {
		params = map[string]any{}
	}

	s.mu.Lock()
	now := s.now()
	task := &models.ScheduledTask{
		ID:        s.uniqueID(taskType, now),
		Type:      taskType,
		Frequency: frequency,
		Params:    params,
		Status:    models.TaskStatusScheduled,
		CreatedAt: now.Truncate(time.Second),
	}
	s.register(task, schedule)
	snapshot := task.Clone()
	count := len(s.tasks)
	unlock := s.handOff()
	if s.cfg.Store != nil {
		if err := s.cfg.Store.SaveTask(context.Background(), snapshot); err != nil {
			s.logger.Error("failed to save task", zap.String("task", snapshot.ID), zap.Error(err))
		}
	}
	unlock()
	s.setGauge(count)

	s.logger.Info("task scheduled",
		zap.String("task", snapshot.ID),
		zap.String("type", taskType),
		zap.String("frequency", frequency),
	)
	return snapshot.ID, nil
}

// Restore registra de novo as tarefas espelhadas no store que não foram
// canceladas. Linhas com frequência inválida são ignoradas.
func (s *Scheduler) Restore(ctx context.Context) (int, error) {
	if s.cfg.Store == nil {
		return 0, nil
	}
	rows, err := s.cfg.Store.ListTasks(ctx)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	restored := 0
	for i := range rows {
		t := rows[i]
		if t.Status == models.TaskStatusCancelled {
			continue
		}
		if _, exists := s.tasks[t.ID]; exists {
			continue
		}
		schedule, err := ParseFrequency(t.Frequency)
		if err != nil {
			s.logger.Warn("skipping stored task", zap.String("task", t.ID), zap.Error(err))
			continue
		}
		// uma execução interrompida por um reinício não é retomada
		if t.Status == models.TaskStatusRunning {
			t.Status = models.TaskStatusScheduled
		}
		if t.Params == nil {
			t.Params = map[string]any{}
		}
		s.register(&t, schedule)
		restored++
	}
	count := len(s.tasks)
	s.mu.Unlock()

	s.setGauge(count)
	return restored, nil
}

// exige s.mu
func (s *Scheduler) register(task *models.ScheduledTask, schedule cron.Schedule) {
	id := task.ID
	cronID := s.cron.Schedule(schedule, cron.FuncJob(func() { s.execute(id) }))
	s.tasks[id] = &entry{task: task, cronID: cronID}
}

// exige s.mu
func (s *Scheduler) uniqueID(taskType string, now time.Time) string {
	base := taskType + "_" + now.Format(idTimeLayout)
	id := base
	for n := 2; ; n++ {
		if _, taken := s.tasks[id]; !taken {
			return id
		}
		id = base + "_" + strconv.Itoa(n)
	}
}

// GetTask retorna uma cópia de uma tarefa registrada
func (s *Scheduler) GetTask(id string) (*models.ScheduledTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return e.task.Clone(), nil
}

// ListTasks retorna cópias de todas as tarefas registradas, mais antigas primeiro
func (s *Scheduler) ListTasks() []*models.ScheduledTask {
	s.mu.Lock()
	out := make([]*models.ScheduledTask, 0, len(s.tasks))
	for _, e := range s.tasks {
		out = append(out, e.task.Clone())
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// CancelTask impede que a tarefa dispare de novo e a remove do registro
func (s *Scheduler) CancelTask(id string) error {
	s.mu.Lock()
	e, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return ErrTaskNotFound
	}
	s.cron.Remove(e.cronID)
	delete(s.tasks, id)
	e.task.Status = models.TaskStatusCancelled
	snapshot := e.task.Clone()
	count := len(s.tasks)
	unlock := s.handOff()
	s.persist(snapshot)
	unlock()
	s.setGauge(count)
	s.logger.Info("task cancelled", zap.String("task", id))
	return nil
}

// RunNow executa uma tarefa registrada imediatamente e retorna seu estado final
func (s *Scheduler) RunNow(id string) (*models.ScheduledTask, error) {
	s.mu.Lock()
	_, ok := s.tasks[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrTaskNotFound
	}

	finished := s.execute(id)
	if finished == nil {
		return nil, ErrTaskNotFound
	}
	return finished, nil
}

// execute roda uma tarefa e retorna seu estado após a execução, ou nil quando a
// tarefa não estava registrada ou foi cancelada nesse meio tempo
func (s *Scheduler) execute(id string) *models.ScheduledTask {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.mu.Lock()
	e, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		s.logger.Warn("task not found", zap.String("task", id))
		return nil
	}
	startedAt := s.now()
	lastRun := startedAt.Truncate(time.Second)
	e.task.Status = models.TaskStatusRunning
	e.task.LastRun = &lastRun
	e.task.Error = ""
	running := e.task.Clone()
	ctx := s.ctx
	unlock := s.handOff()
	s.persist(running)
	unlock()
	s.logger.Info("running task", zap.String("task", id), zap.String("type", running.Type))

	result, err := s.run(ctx, running)
	elapsed := s.now().Sub(startedAt)

	s.mu.Lock()
	e, ok = s.tasks[id]
	if !ok {
		s.mu.Unlock()
		s.logger.Info("task cancelled while running", zap.String("task", id), zap.Error(err))
		return nil
	}
	if err != nil {
		e.task.Status = models.TaskStatusError
		e.task.Error = err.Error()
	} else {
		e.task.Status = models.TaskStatusCompleted
		if result == nil {
			result = map[string]any{}
		}
		result["timestamp"] = s.now().Format(resultTimeLayout)
		e.task.LastResult = result
	}
	finished := e.task.Clone()
	unlock = s.handOff()
	s.persist(finished)
	unlock()
	if err != nil {
		s.logger.Error("task failed", zap.String("task", id), zap.Duration("elapsed", elapsed), zap.Error(err))
	} else {
		s.logger.Info("task completed", zap.String("task", id), zap.Duration("elapsed", elapsed))
	}
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.ObserveTask(finished.Type, string(finished.Status), elapsed)
	}
	if s.cfg.Notifier != nil {
		s.cfg.Notifier.TaskFinished(context.Background(), finished)
	}
	return finished
}

func (s *Scheduler) run(ctx context.Context, task *models.ScheduledTask) (result map[string]any, err error) {
	runner, ok := s.runners[task.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTaskType, task.Type)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()
	return runner.Run(runCtx, task.Params)
}

// handOff troca s.mu por s.storeMu: a gravação seguinte não pode ser
// ultrapassada por outra mudança no registro. Exige s.mu.
func (s *Scheduler) handOff() func() {
	s.storeMu.Lock()
	s.mu.Unlock()
	return s.storeMu.Unlock
}

func (s *Scheduler) persist(t *models.ScheduledTask) {
	if s.cfg.Store == nil {
		return
	}
	if err := s.cfg.Store.UpdateTask(context.Background(), t); err != nil {
		s.logger.Error("failed to update stored task", zap.String("task", t.ID), zap.Error(err))
	}
}

func (s *Scheduler) setGauge(n int) {
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.SetScheduledTasks(n)
	}
}
