package main

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sw385/Semester-Schedule/internal/logger"
	"github.com/sw385/Semester-Schedule/internal/scheduler"
	"github.com/sw385/Semester-Schedule/pkg/model"
)

type jobStatus string

const (
	statusPending jobStatus = "pending"
	statusRunning jobStatus = "running"
	statusDone    jobStatus = "done"
	statusFailed  jobStatus = "failed"
)

// job is one schedule search. Result is set once, when the search finishes.
type job struct {
	ID        string
	Status    jobStatus
	CreatedAt time.Time
	Error     string
	Config    *scheduler.Configuration
	Result    *scheduler.Result
}

// report is a one line summary shown in job listings.
func (j job) report() string {
	switch j.Status {
	case statusDone:
		return fmt.Sprintf("ranked %d of %d candidate schedules, %d preferred", j.Result.Stats.Ranked, j.Result.Stats.Candidates, len(j.Result.Preferred))
	case statusFailed:
		return j.Error
	default:
		return string(j.Status)
	}
}

// selection finds an emitted schedule by its label.
func (j job) selection(label string) (scheduler.Selection, bool) {
	if j.Result == nil {
		return scheduler.Selection{}, false
	}
	for _, s := range slices.Concat(j.Result.Preferred, j.Result.Undesirable) {
		if s.Label == label {
			return s, true
		}
	}
	return scheduler.Selection{}, false
}

// jobStore keeps every job in memory for the lifetime of the process.
type jobStore struct {
	mu    sync.RWMutex
	jobs  map[string]*job
	order []string
}

func newJobStore() *jobStore {
	return &jobStore{jobs: map[string]*job{}}
}

func (s *jobStore) add(cfg *scheduler.Configuration) job {
	j := &job{
		ID:        uuid.NewString(),
		Status:    statusPending,
		CreatedAt: time.Now(),
		Config:    cfg,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.ID] = j
	s.order = append(s.order, j.ID)
	return *j
}

// get returns a copy of the job so callers never race with the runner.
func (s *jobStore) get(id string) (job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return job{}, false
	}
	return *j, true
}

func (s *jobStore) list() []job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	jobs := make([]job, 0, len(s.order))
	for _, id := range s.order {
		jobs = append(jobs, *s.jobs[id])
	}
	return jobs
}

func (s *jobStore) update(id string, fn func(j *job)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		fn(j)
	}
}

// run searches the catalog and stores the outcome on the job.
func (s *jobStore) run(id string, courses []*model.Course, cfg *scheduler.Configuration) {
	log := logger.WithField("job", id)
	s.update(id, func(j *job) { j.Status = statusRunning })

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Schedule search crashed")
			s.update(id, func(j *job) {
				j.Status = statusFailed
				j.Error = fmt.Sprint(r)
			})
		}
	}()

	start := time.Now()
	result := scheduler.NewGenerator(courses, cfg).Generate()
	s.update(id, func(j *job) {
		j.Status = statusDone
		j.Result = result
	})
	log.Info().Dur("took", time.Since(start)).Int("ranked", result.Stats.Ranked).Msg("Schedule search finished")
}
