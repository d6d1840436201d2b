package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily admin report at a fixed UTC hour.
type Scheduler struct {
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc
	reportFunc func(ctx context.Context) error
	hourUTC    int
}

func New(hourUTC int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		ctx:     ctx,
		cancel:  cancel,
		hourUTC: hourUTC,
	}
}

// SetReportFunction sets the function invoked on schedule.
func (s *Scheduler) SetReportFunction(f func(ctx context.Context) error) {
	s.reportFunc = f
}

func (s *Scheduler) Start() error {
	if s.reportFunc == nil {
		log.Println("report function not set, scheduler will not generate reports")
		return nil
	}

	spec := fmt.Sprintf("0 %d * * *", s.hourUTC)
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.reportFunc(s.ctx); err != nil {
			log.Printf("daily report generation failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("scheduler started - daily report at %02d:00 UTC", s.hourUTC)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("scheduler stopped")
}
