package studentController

import (
	"fmt"
	"testing"

	"sprout/database"
	"sprout/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

var seedSeq int

func seedRankedStudent(t *testing.T, db *gorm.DB, schoolID uint, points int) *models.User {
	t.Helper()
	seedSeq++
	user := models.User{
		FirstName:   "Sam",
		LastName:    "Okafor",
		Email:       fmt.Sprintf("sam+%d@lincoln.edu", seedSeq),
		Password:    "hashed",
		Role:        models.RoleStudent,
		SchoolID:    schoolID,
		TotalPoints: points,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestStudentRank(t *testing.T) {
	db := newTestDB(t)
	school := models.School{Name: "Lincoln High", Domain: "lincoln.edu"}
	require.NoError(t, db.Create(&school).Error)

	// Twelve students, 120 down to 10 points; the caller sits at the bottom
	var last *models.User
	for i := 0; i < 12; i++ {
		last = seedRankedStudent(t, db, school.ID, 120-i*10)
	}

	rank, err := studentRank(db, last)
	require.NoError(t, err)
	assert.Equal(t, 12, rank, "a student outside the top 10 still has a real rank")

	top := seedRankedStudent(t, db, school.ID, 500)
	rank, err = studentRank(db, top)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
}

func TestStudentRankScopedToSchool(t *testing.T) {
	db := newTestDB(t)
	schoolA := models.School{Name: "Lincoln High", Domain: "lincoln.edu"}
	schoolB := models.School{Name: "Roosevelt High", Domain: "roosevelt.edu"}
	require.NoError(t, db.Create(&schoolA).Error)
	require.NoError(t, db.Create(&schoolB).Error)

	// High scorers at another school must not push this student down
	seedRankedStudent(t, db, schoolB.ID, 900)
	seedRankedStudent(t, db, schoolB.ID, 800)
	user := seedRankedStudent(t, db, schoolA.ID, 50)

	rank, err := studentRank(db, user)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
}

func TestStudentRankSharedForTies(t *testing.T) {
	db := newTestDB(t)
	school := models.School{Name: "Lincoln High", Domain: "lincoln.edu"}
	require.NoError(t, db.Create(&school).Error)

	seedRankedStudent(t, db, school.ID, 200)
	a := seedRankedStudent(t, db, school.ID, 100)
	b := seedRankedStudent(t, db, school.ID, 100)

	rankA, err := studentRank(db, a)
	require.NoError(t, err)
	rankB, err := studentRank(db, b)
	require.NoError(t, err)
	assert.Equal(t, 2, rankA)
	assert.Equal(t, rankA, rankB)
}
