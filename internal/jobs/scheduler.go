package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/ignatzorin/hvacsite/internal/goroutine"
	"github.com/ignatzorin/hvacsite/internal/logger"
)

// Sweeper удаляет устаревшие записи и возвращает их количество.
type Sweeper interface {
	Sweep() int
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler запускает фоновые задачи по расписанию.
type Scheduler struct {
	sched *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{sched: cron.New(cron.WithParser(cronParser))}
}

// AddSweep регистрирует очистку под именем name.
func (s *Scheduler) AddSweep(spec, name string, sw Sweeper) error {
	log := logger.Component("jobs").WithField("job", name)
	_, err := s.sched.AddFunc(spec, func() {
		goroutine.DefaultRecoveryHandler.Run(func() {
			if n := sw.Sweep(); n > 0 {
				log.WithField("removed", n).Debug("очистка выполнена")
			}
		})
	})
	if err != nil {
		return fmt.Errorf("jobs: не удалось добавить задачу %s: %w", name, err)
	}
	return nil
}

// Start запускает планировщик в отдельной горутине.
func (s *Scheduler) Start() {
	s.sched.Start()
}

// Stop останавливает планировщик и ждёт завершения выполняющихся задач.
func (s *Scheduler) Stop() {
	<-s.sched.Stop().Done()
}

// Len возвращает число зарегистрированных задач.
func (s *Scheduler) Len() int {
	return len(s.sched.Entries())
}
