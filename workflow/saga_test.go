package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSagaRunsStepsInOrder(t *testing.T) {
	var order []string

	saga := NewSaga()
	for _, name := range []string{"first", "second", "third"} {
		name := name
		saga.Append(Step{
			Name: name,
			Run: func(db *gorm.DB) error {
				order = append(order, name)
				return nil
			},
		})
	}

	require.NoError(t, saga.Run(nil))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestSagaCompensatesFromFailingStepInReverse(t *testing.T) {
	var compensated []string
	boom := errors.New("boom")

	saga := NewSaga()
	for _, name := range []string{"first", "second"} {
		name := name
		saga.Append(Step{
			Name: name,
			Run:  func(db *gorm.DB) error { return nil },
			Compensate: func(db *gorm.DB) error {
				compensated = append(compensated, name)
				return nil
			},
		})
	}
	saga.Append(Step{
		Name: "failing",
		Run:  func(db *gorm.DB) error { return boom },
		Compensate: func(db *gorm.DB) error {
			compensated = append(compensated, "failing")
			return nil
		},
	})

	err := saga.Run(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing")

	// The failing step may have written rows before erroring, so its
	// compensation runs first, then the completed steps in reverse.
	assert.Equal(t, []string{"failing", "second", "first"}, compensated)
}

func TestSagaSkipsNilCompensations(t *testing.T) {
	var compensated []string

	saga := NewSaga()
	saga.Append(Step{
		Name: "with compensation",
		Run:  func(db *gorm.DB) error { return nil },
		Compensate: func(db *gorm.DB) error {
			compensated = append(compensated, "with compensation")
			return nil
		},
	})
	saga.Append(Step{
		Name: "without compensation",
		Run:  func(db *gorm.DB) error { return nil },
	})
	saga.Append(Step{
		Name: "failing",
		Run:  func(db *gorm.DB) error { return errors.New("boom") },
	})

	require.Error(t, saga.Run(nil))
	assert.Equal(t, []string{"with compensation"}, compensated)
}

func TestSagaReturnsForwardErrorWhenCompensationFails(t *testing.T) {
	boom := errors.New("forward failure")

	saga := NewSaga()
	saga.Append(Step{
		Name: "first",
		Run:  func(db *gorm.DB) error { return nil },
		Compensate: func(db *gorm.DB) error {
			return errors.New("compensation failure")
		},
	})
	saga.Append(Step{
		Name: "second",
		Run:  func(db *gorm.DB) error { return boom },
	})

	err := saga.Run(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
