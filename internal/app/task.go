package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrTaskNameRequired is returned when the task name is blank.
	ErrTaskNameRequired = errors.New("please enter a task name")
	// ErrTaskEstimateRequired is returned when no estimate was picked.
	ErrTaskEstimateRequired = errors.New("please select an estimated time")
)

// Estimate is an estimated-hours category. Zero means none selected.
type Estimate int

// EstimateOptions lists the categories offered by the intake form.
var EstimateOptions = []Estimate{1, 2, 3, 4}

// Label renders the estimate the way the intake form shows it.
func (estimate Estimate) Label() string {
	if estimate == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", int(estimate))
}

// Valid reports whether estimate is one of EstimateOptions.
func (estimate Estimate) Valid() bool {
	for _, option := range EstimateOptions {
		if option == estimate {
			return true
		}
	}
	return false
}

// ParseEstimate accepts either a label ("2 hours") or a bare number.
func ParseEstimate(value string) (Estimate, bool) {
	value = strings.TrimSpace(value)
	for _, option := range EstimateOptions {
		if value == option.Label() {
			return option, true
		}
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || !Estimate(parsed).Valid() {
		return 0, false
	}
	return Estimate(parsed), true
}

// Task is the piece of work a task-mode timer is bound to.
type Task struct {
	ID        string
	Name      string
	Estimate  Estimate
	CreatedAt time.Time
}

// Summary is the heading shown above the task timer.
func (task Task) Summary() string {
	return "Working on: " + task.Name
}

// EstimateLabel is the subheading shown above the task timer.
func (task Task) EstimateLabel() string {
	return "Estimated: " + task.Estimate.Label()
}

func validateTask(name string, estimate Estimate) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrTaskNameRequired
	}
	if !estimate.Valid() {
		return "", ErrTaskEstimateRequired
	}
	return name, nil
}
