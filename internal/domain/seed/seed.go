// Package seed bootstraps an empty store with a small demonstration ward.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ward/ward/internal/domain/clinician"
	"github.com/ward/ward/internal/domain/patient"
	"github.com/ward/ward/internal/domain/task"
	"github.com/ward/ward/internal/platform/db"
)

// LockKey is the advisory lock key held while seeding.
const LockKey int64 = 0x77617264 // "ward"

type UserCreator interface {
	AnyUser(ctx context.Context) (bool, error)
	CreateUser(ctx context.Context, u *clinician.User) error
}

type PatientCreator interface {
	CreatePatient(ctx context.Context, p *patient.Patient) error
}

type TaskCreator interface {
	CreateTask(ctx context.Context, t *task.Task) error
}

// Locker serializes concurrent loaders for the duration of the surrounding
// transaction.
type Locker interface {
	Lock(ctx context.Context) error
}

// Result reports what a Load call wrote.
type Result struct {
	Seeded   bool
	Users    int
	Patients int
	Tasks    int
}

type Loader struct {
	users    UserCreator
	patients PatientCreator
	tasks    TaskCreator
	tx       db.Transactor
	lock     Locker
	logger   zerolog.Logger
	now      func() time.Time
}

func NewLoader(users UserCreator, patients PatientCreator, tasks TaskCreator, tx db.Transactor, lock Locker, logger zerolog.Logger) *Loader {
	return &Loader{
		users:    users,
		patients: patients,
		tasks:    tasks,
		tx:       tx,
		lock:     lock,
		logger:   logger.With().Str("component", "seed").Logger(),
		now:      time.Now,
	}
}

// WithClock replaces the time source used for task due times.
func (l *Loader) WithClock(now func() time.Time) *Loader {
	l.now = now
	return l
}

// Load writes the demonstration data set when no user exists and does
// nothing otherwise. The whole sequence runs in one transaction, so a failure
// leaves the store as it was.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	var res Result
	err := l.tx.InTx(ctx, func(ctx context.Context) error {
		res = Result{}
		if l.lock != nil {
			if err := l.lock.Lock(ctx); err != nil {
				return err
			}
		}
		exists, err := l.users.AnyUser(ctx)
		if err != nil {
			return fmt.Errorf("check existing users: %w", err)
		}
		if exists {
			return nil
		}
		return l.write(ctx, &res)
	})
	if err != nil {
		return Result{}, fmt.Errorf("seed: %w", err)
	}

	if !res.Seeded {
		l.logger.Info().Msg("seed skipped, store already has users")
		return res, nil
	}
	l.logger.Info().
		Int("users", res.Users).
		Int("patients", res.Patients).
		Int("tasks", res.Tasks).
		Msg("seed completed")
	return res, nil
}

func (l *Loader) write(ctx context.Context, res *Result) error {
	user := demoUser
	if err := l.users.CreateUser(ctx, &user); err != nil {
		return err
	}
	res.Users++

	patientIDs := make([]int64, len(demoPatients))
	for i := range demoPatients {
		p := demoPatients[i]
		p.UserID = user.ID
		if err := l.patients.CreatePatient(ctx, &p); err != nil {
			return err
		}
		patientIDs[i] = p.ID
		res.Patients++
	}

	now := l.now()
	for _, dt := range demoTasks {
		due := now.Add(dt.Due)
		t := task.Task{
			Title:     dt.Title,
			Notes:     dt.Notes,
			DueTime:   &due,
			Priority:  dt.Priority,
			PatientID: patientIDs[dt.Patient],
		}
		if err := l.tasks.CreateTask(ctx, &t); err != nil {
			return err
		}
		res.Tasks++
	}

	res.Seeded = true
	return nil
}
