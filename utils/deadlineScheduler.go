package utils

import (
	"log"
	"time"

	"sprout/database"
	"sprout/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[DEADLINE-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// processDueAssignments finds assignments due within 24 hours that have not
// been reminded yet and emails every student in the class
func processDueAssignments() {
	db := database.Database.Db
	now := time.Now()
	cutoff := now.Add(24 * time.Hour)

	var assignments []models.Assignment
	if err := db.Preload("Course").
		Where("reminder_sent = ? AND is_deleted = ? AND due_date > ? AND due_date <= ?", false, false, now, cutoff).
		Find(&assignments).Error; err != nil {
		logScheduler("Error fetching due assignments: " + err.Error())
		return
	}

	for _, assignment := range assignments {
		var memberships []models.ClassStudent
		if err := db.Preload("Student").
			Where("class_id = ?", assignment.ClassID).
			Find(&memberships).Error; err != nil {
			logScheduler("Error fetching class roster: " + err.Error())
			continue
		}

		dueDateStr := assignment.DueDate.Format("Jan 2, 2006 3:04 PM")
		for _, membership := range memberships {
			student := membership.Student
			SendAssignmentReminderEmail(student.Email, student.FirstName, assignment.Course.Title, dueDateStr)
		}

		db.Model(&models.Assignment{}).
			Where("id = ?", assignment.ID).
			Update("reminder_sent", true)

		logScheduler("Reminder sent for assignment " + assignment.Title)
	}
}

// StartDeadlineScheduler runs the due-assignment sweep every hour
func StartDeadlineScheduler(c *cron.Cron) {
	c.AddFunc("0 * * * *", func() {
		processDueAssignments()
	})
	logScheduler("Deadline scheduler started - runs hourly")
}

// InitializeSchedulers initializes all background schedulers
func InitializeSchedulers() *cron.Cron {
	c := cron.New()
	StartDeadlineScheduler(c)
	c.Start()
	logScheduler("All schedulers initialized successfully")
	return c
}
