package studentController

import (
	"sprout/database"
	"sprout/middleware"
	"sprout/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// studentRank counts how many of the school's students outscore the user;
// standard competition ranking, so equal scores share a rank
func studentRank(db *gorm.DB, user *models.User) (int, error) {
	var ahead int64
	err := db.Model(&models.User{}).
		Where("school_id = ? AND role = ? AND is_deleted = ? AND total_points > ?",
			user.SchoolID, models.RoleStudent, false, user.TotalPoints).
		Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}

// GetLeaderboard returns the top 10 students of the caller's school by XP,
// plus the caller's own rank if they made the cut
func GetLeaderboard(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	db := database.Database.Db

	var leaders []models.User
	if err := db.Select("id, first_name, last_name, total_points, current_streak").
		Where("school_id = ? AND role = ? AND is_deleted = ?", user.SchoolID, models.RoleStudent, false).
		Order("total_points desc").
		Limit(10).
		Find(&leaders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	type leaderboardEntry struct {
		Rank          int    `json:"rank"`
		UserID        uint   `json:"user_id"`
		FirstName     string `json:"first_name"`
		LastName      string `json:"last_name"`
		TotalPoints   int    `json:"total_points"`
		CurrentStreak int    `json:"current_streak"`
		Level         int    `json:"level"`
	}

	entries := make([]leaderboardEntry, len(leaders))
	userRank := 0
	for i := range leaders {
		entries[i] = leaderboardEntry{
			Rank:          i + 1,
			UserID:        leaders[i].ID,
			FirstName:     leaders[i].FirstName,
			LastName:      leaders[i].LastName,
			TotalPoints:   leaders[i].TotalPoints,
			CurrentStreak: leaders[i].CurrentStreak,
			Level:         leaders[i].Level(),
		}
		if leaders[i].ID == user.ID {
			userRank = i + 1
		}
	}

	// Outside the top 10 the caller still gets a real rank
	if userRank == 0 {
		rank, err := studentRank(db, user)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
		}
		userRank = rank
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched successfully!", fiber.Map{
		"leaderboard": entries,
		"user_rank":   userRank,
		"user_id":     user.ID,
	})
}
