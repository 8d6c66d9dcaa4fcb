package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"match-typer/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminService is the authorization capability for admin-only operations,
// plus the audit trail and platform statistics around them.
type AdminService struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{
		db: db,
	}
}

// IsAdmin checks if a user is an admin
func (s *AdminService) IsAdmin(userID string) bool {
	var admin models.AdminUser
	result := s.db.Where("user_id = ?", userID).First(&admin)
	return result.Error == nil
}

// PromoteUser grants the admin capability to a user
func (s *AdminService) PromoteUser(userID string, role string, promotedBy string) (*models.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if role == "" {
		role = "MODERATOR"
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	var existing models.AdminUser
	if err := s.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("user is already an admin")
	}

	adminUser := models.AdminUser{
		UserID: userID,
		Role:   role,
	}

	if err := s.db.Create(&adminUser).Error; err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}

	s.LogAdminAction(promotedBy, "PROMOTE_USER", "USER", &userID, map[string]interface{}{
		"role": role,
	})

	log.Printf("User %s promoted to %s", userID, role)
	return &adminUser, nil
}

// DemoteAdmin removes admin privileges
func (s *AdminService) DemoteAdmin(userID string, demotedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Where("user_id = ?", userID).Delete(&models.AdminUser{}).Error; err != nil {
		return fmt.Errorf("failed to demote admin: %w", err)
	}

	s.LogAdminAction(demotedBy, "DEMOTE_ADMIN", "USER", &userID, nil)
	return nil
}

// LogAdminAction logs an admin action
func (s *AdminService) LogAdminAction(adminID string, action string, resourceType string,
	resourceID *string, details map[string]interface{}) error {

	adminLog := models.AdminLog{
		ID:           uuid.New(),
		AdminID:      adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      models.JSONB(details),
	}

	return s.db.Create(&adminLog).Error
}

// GetAdminLogs returns admin activity logs
func (s *AdminService) GetAdminLogs(limit int, offset int) ([]models.AdminLog, error) {
	var logs []models.AdminLog
	if err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// GetPlatformStats returns platform statistics for a date
func (s *AdminService) GetPlatformStats(date time.Time) (*models.PlatformStats, error) {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	var stats models.PlatformStats
	result := s.db.Where("date = ?", dateOnly).First(&stats)

	if result.Error == gorm.ErrRecordNotFound {
		stats = s.calculatePlatformStats(dateOnly)
		if err := s.db.Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}

	return &stats, result.Error
}

// SnapshotPlatformStats recomputes and stores today's statistics
func (s *AdminService) SnapshotPlatformStats(date time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	stats := s.calculatePlatformStats(dateOnly)

	var existing models.PlatformStats
	err := s.db.Where("date = ?", dateOnly).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return s.db.Create(&stats).Error
	}
	if err != nil {
		return err
	}

	return s.db.Model(&existing).Updates(map[string]interface{}{
		"total_users":       stats.TotalUsers,
		"open_matches":      stats.OpenMatches,
		"finished_matches":  stats.FinishedMatches,
		"total_predictions": stats.TotalPredictions,
		"points_awarded":    stats.PointsAwarded,
	}).Error
}

// calculatePlatformStats calculates platform statistics
func (s *AdminService) calculatePlatformStats(date time.Time) models.PlatformStats {
	var totalUsers int64
	var openMatches int64
	var finishedMatches int64
	var totalPredictions int64
	var pointsAwarded int64

	s.db.Model(&models.User{}).Count(&totalUsers)
	s.db.Model(&models.Match{}).Where("status = ?", models.MatchStatusUpcoming).Count(&openMatches)
	s.db.Model(&models.Match{}).Where("status = ?", models.MatchStatusFinished).Count(&finishedMatches)
	s.db.Model(&models.Prediction{}).Count(&totalPredictions)

	row := s.db.Model(&models.User{}).Select("COALESCE(SUM(points), 0)").Row()
	row.Scan(&pointsAwarded)

	return models.PlatformStats{
		Date:             date,
		TotalUsers:       int(totalUsers),
		OpenMatches:      int(openMatches),
		FinishedMatches:  int(finishedMatches),
		TotalPredictions: int(totalPredictions),
		PointsAwarded:    int(pointsAwarded),
	}
}

// GetAllUsers returns all users with optional filtering
func (s *AdminService) GetAllUsers(limit int, offset int, search string) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := s.db.Model(&models.User{})
	if search != "" {
		query = query.Where("username LIKE ?", "%"+search+"%")
	}

	query.Count(&total)
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
