package progression

import (
	"fmt"
	"os"
	"testing"
	"time"

	"sprout/config"
	"sprout/database"
	"sprout/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	config.LoadConfig()
	os.Exit(m.Run())
}

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	return db
}

func seedSchool(t *testing.T, db *gorm.DB) *models.School {
	t.Helper()
	school := models.School{Name: "Lincoln High", Domain: "lincoln.edu"}
	require.NoError(t, db.Create(&school).Error)
	return &school
}

// seedStudent creates a student and pins their last-activity timestamp, which
// the streak calculation reads from updated_at
func seedStudent(t *testing.T, db *gorm.DB, school *models.School, lastActivity time.Time) *models.User {
	t.Helper()
	user := models.User{
		FirstName: "Jamie",
		LastName:  "Rivera",
		Email:     fmt.Sprintf("jamie+%d@lincoln.edu", time.Now().UnixNano()),
		Password:  "hashed",
		Role:      models.RoleStudent,
		SchoolID:  school.ID,
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Model(&user).UpdateColumn("updated_at", lastActivity).Error)
	user.UpdatedAt = lastActivity
	return &user
}

// seedCourse creates a published course with the given number of lessons
func seedCourse(t *testing.T, db *gorm.DB, lessonCount int) (*models.Course, []models.Lesson) {
	t.Helper()
	course := models.Course{Title: "Budgeting Basics", Description: "Spend less than you earn", Category: "BUDGETING"}
	require.NoError(t, db.Create(&course).Error)

	lessons := make([]models.Lesson, lessonCount)
	for i := range lessons {
		lessons[i] = models.Lesson{
			CourseID:   course.ID,
			Title:      fmt.Sprintf("Lesson %d", i+1),
			OrderIndex: i + 1,
			XPReward:   10,
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
	}
	return &course, lessons
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) *models.Enrollment {
	t.Helper()
	enrollment := models.Enrollment{UserID: userID, CourseID: courseID, Status: models.EnrollmentNotStarted}
	require.NoError(t, db.Create(&enrollment).Error)
	return &enrollment
}

func seedQuiz(t *testing.T, db *gorm.DB, lessonID uint, passingScore int, questions string) *models.Quiz {
	t.Helper()
	quiz := models.Quiz{
		LessonID:     lessonID,
		Title:        "Checkpoint",
		PassingScore: passingScore,
		Questions:    []byte(questions),
	}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}

func reloadEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) *models.Enrollment {
	t.Helper()
	var enrollment models.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error)
	return &enrollment
}
