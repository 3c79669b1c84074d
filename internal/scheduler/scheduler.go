// Package scheduler runs the hourly reminder job: learners who enabled a
// reminder hour and have not received today's words yet get a nudge through
// a Notifier.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/wordday/internal/database"
	"github.com/example/wordday/internal/dayrange"
	"github.com/example/wordday/pkg/models"
)

// Notifier sends a reminder to a learner
type Notifier interface {
	SendReminder(user models.User) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler   *gocron.Scheduler
	users       *database.UserRepository
	assignments *database.AssignmentRepository
	notifier    Notifier
	loc         *time.Location
}

// New creates a scheduler. loc is the reference timezone; reminder hours are
// interpreted in it.
func New(users *database.UserRepository, assignments *database.AssignmentRepository, notifier Notifier, loc *time.Location) *Scheduler {
	return &Scheduler{
		scheduler:   gocron.NewScheduler(loc),
		users:       users,
		assignments: assignments,
		notifier:    notifier,
		loc:         loc,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders finds learners whose reminder hour is now and who
// have no assignment inside today's window, and notifies them. Failures are
// logged and never affect the request path.
func (s *Scheduler) checkAndSendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()
	currentHour := now.In(s.loc).Hour()

	users, err := s.users.WithRemindersAt(ctx, currentHour)
	if err != nil {
		log.Printf("Error getting users for reminders: %v", err)
		return
	}

	dayStart, dayEnd := dayrange.Window(now, s.loc)
	for _, user := range users {
		count, err := s.assignments.CountBetween(ctx, user.ID, dayStart, dayEnd)
		if err != nil {
			log.Printf("Error checking today's assignment for user %d: %v", user.ID, err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := s.notifier.SendReminder(user); err != nil {
			log.Printf("Error sending reminder to user %d: %v", user.ID, err)
		}
	}
}
