// Package wardtest provides an in-memory store implementing the clinician,
// patient and task repositories with foreign key checks and transactional
// rollback, for tests that exercise several domains together.
package wardtest

import (
	"context"
	"sync"

	"github.com/ward/ward/internal/domain/clinician"
	"github.com/ward/ward/internal/domain/patient"
	"github.com/ward/ward/internal/domain/task"
	"github.com/ward/ward/internal/platform/db/dbtest"
	"github.com/ward/ward/pkg/apperr"
)

type state struct {
	users    []clinician.User
	patients []patient.Patient
	tasks    []task.Task
	nextID   int64
}

func (s state) clone() state {
	return state{
		users:    append([]clinician.User(nil), s.users...),
		patients: append([]patient.Patient(nil), s.patients...),
		tasks:    append([]task.Task(nil), s.tasks...),
		nextID:   s.nextID,
	}
}

// Store holds users, patients and tasks. Its Tx restores the state taken at
// begin when a unit of work rolls back.
type Store struct {
	mu       sync.Mutex
	cur      state
	snapshot state
	writes   int

	// Fail, when set, is consulted before every insert with the entity kind
	// ("user", "patient", "task"); a non-nil result aborts the insert.
	Fail func(kind string) error

	Tx *dbtest.Transactor
}

func New() *Store {
	s := &Store{cur: state{nextID: 1}}
	s.Tx = &dbtest.Transactor{
		OnBegin: func() {
			s.mu.Lock()
			s.snapshot = s.cur.clone()
			s.mu.Unlock()
		},
		OnRollback: func() {
			s.mu.Lock()
			s.cur = s.snapshot
			s.mu.Unlock()
		},
	}
	return s
}

// Writes counts successful inserts.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Counts returns the number of stored users, patients and tasks.
func (s *Store) Counts() (users, patients, tasks int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cur.users), len(s.cur.patients), len(s.cur.tasks)
}

func (s *Store) Users() clinician.UserRepository { return userRepo{s} }
func (s *Store) Patients() patient.PatientRepository { return patientRepo{s} }
func (s *Store) Tasks() task.TaskRepository { return taskRepo{s} }

func (s *Store) insert(kind string) (int64, error) {
	if s.Fail != nil {
		if err := s.Fail(kind); err != nil {
			return 0, err
		}
	}
	id := s.cur.nextID
	s.cur.nextID++
	s.writes++
	return id, nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *clinician.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, err := r.s.insert("user")
	if err != nil {
		return err
	}
	u.ID = id
	r.s.cur.users = append(r.s.cur.users, *u)
	return nil
}

func (r userRepo) List(context.Context) ([]*clinician.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*clinician.User, 0, len(r.s.cur.users))
	for i := range r.s.cur.users {
		u := r.s.cur.users[i]
		out = append(out, &u)
	}
	return out, nil
}

func (r userRepo) Exists(context.Context) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.cur.users) > 0, nil
}

type patientRepo struct{ s *Store }

func (r patientRepo) Create(_ context.Context, p *patient.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.hasUser(p.UserID) {
		return &apperr.IntegrityError{Constraint: "patient_user_id_fkey", Detail: "user does not exist"}
	}
	id, err := r.s.insert("patient")
	if err != nil {
		return err
	}
	p.ID = id
	r.s.cur.patients = append(r.s.cur.patients, *p)
	return nil
}

func (r patientRepo) List(context.Context) ([]*patient.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*patient.Patient, 0, len(r.s.cur.patients))
	for i := range r.s.cur.patients {
		p := r.s.cur.patients[i]
		out = append(out, &p)
	}
	return out, nil
}

type taskRepo struct{ s *Store }

func (r taskRepo) Create(_ context.Context, t *task.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.hasPatient(t.PatientID) {
		return &apperr.IntegrityError{Constraint: "task_patient_id_fkey", Detail: "patient does not exist"}
	}
	id, err := r.s.insert("task")
	if err != nil {
		return err
	}
	t.ID = id
	r.s.cur.tasks = append(r.s.cur.tasks, *t)
	return nil
}

func (r taskRepo) ListByPatient(_ context.Context, patientID int64) ([]*task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*task.Task{}
	for i := range r.s.cur.tasks {
		if r.s.cur.tasks[i].PatientID == patientID {
			t := r.s.cur.tasks[i]
			out = append(out, &t)
		}
	}
	return out, nil
}

func (s *Store) hasUser(id int64) bool {
	for _, u := range s.cur.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) hasPatient(id int64) bool {
	for _, p := range s.cur.patients {
		if p.ID == id {
			return true
		}
	}
	return false
}
