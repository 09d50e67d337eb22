package workflow

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// Step is one forward action in a saga, with an optional compensating
// action that undoes it. A nil Compensate means the step leaves nothing
// behind that needs undoing (or, for edits of an existing course, that
// partial state is intentionally left in place).
type Step struct {
	Name       string
	Run        func(db *gorm.DB) error
	Compensate func(db *gorm.DB) error
}

// Saga runs an ordered list of steps. When a step fails, compensations
// run in reverse order starting with the failing step itself, since a
// step may have written rows before returning an error. Compensation is
// best-effort: a failing compensation is logged, not retried, and the
// original step error is still the one returned.
type Saga struct {
	steps []Step
}

func NewSaga() *Saga {
	return &Saga{}
}

// Append adds a step to the end of the saga
func (s *Saga) Append(step Step) {
	s.steps = append(s.steps, step)
}

// Len returns the number of steps
func (s *Saga) Len() int {
	return len(s.steps)
}

// Run executes the steps in order. On the first failure it compensates
// the failing step and every completed step in reverse order, then
// returns the failing step's error.
func (s *Saga) Run(db *gorm.DB) error {
	for i, step := range s.steps {
		if err := step.Run(db); err != nil {
			s.compensate(db, i)
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	return nil
}

func (s *Saga) compensate(db *gorm.DB, from int) {
	for i := from; i >= 0; i-- {
		if s.steps[i].Compensate == nil {
			continue
		}
		if err := s.steps[i].Compensate(db); err != nil {
			log.Printf("[AUTHORING] Compensation for step %q failed: %v", s.steps[i].Name, err)
		}
	}
}
