package repository

import (
	"fmt"
	"time"

	"github.com/skillchain/skillchain-api/internal/constants"
	"github.com/skillchain/skillchain-api/internal/models"

	"gorm.io/gorm"
)

// StatsRepository 平台统计聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type StatsRepository interface {
	GetOverview() (StatsOverviewRow, error)
	GetActivityTrends(startAt, endAt time.Time) ([]StatsActivityTrendRow, error)
}

// StatsOverviewRow 平台总览原始统计结果
type StatsOverviewRow struct {
	TotalUsers        int64
	TotalCertificates int64
	Students          int64
	Institutes        int64
	Companies         int64
}

// StatsActivityTrendRow 按天聚合的活动趋势
type StatsActivityTrendRow struct {
	Day         string
	NewUsers    int64
	IssuedCerts int64
}

// GormStatsRepository GORM 聚合实现
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建统计仓库
func NewStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormStatsRepository) GetOverview() (StatsOverviewRow, error) {
	result := StatsOverviewRow{}

	if err := r.db.Model(&models.User{}).Count(&result.TotalUsers).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Certificate{}).Count(&result.TotalCertificates).Error; err != nil {
		return result, err
	}

	roleCounts := []struct {
		role   string
		target *int64
	}{
		{constants.RoleStudent, &result.Students},
		{constants.RoleInstitute, &result.Institutes},
		{constants.RoleCompany, &result.Companies},
	}
	for _, item := range roleCounts {
		if err := r.db.Model(&models.User{}).
			Where("role = ?", item.role).
			Count(item.target).Error; err != nil {
			return result, err
		}
	}

	return result, nil
}

// GetActivityTrends 获取活动趋势（注册与发证按天聚合）
func (r *GormStatsRepository) GetActivityTrends(startAt, endAt time.Time) ([]StatsActivityTrendRow, error) {
	type dayCountRow struct {
		Day   string
		Total int64
	}

	dayExpr := "CAST(date(created_at) AS TEXT)"

	var userRows []dayCountRow
	if err := r.db.Model(&models.User{}).
		Select(fmt.Sprintf("%s as day, COUNT(*) as total", dayExpr)).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group(dayExpr).
		Order("day asc").
		Scan(&userRows).Error; err != nil {
		return nil, err
	}

	var certRows []dayCountRow
	if err := r.db.Model(&models.Certificate{}).
		Select(fmt.Sprintf("%s as day, COUNT(*) as total", dayExpr)).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group(dayExpr).
		Order("day asc").
		Scan(&certRows).Error; err != nil {
		return nil, err
	}

	userMap := make(map[string]int64, len(userRows))
	for _, item := range userRows {
		userMap[item.Day] = item.Total
	}
	certMap := make(map[string]int64, len(certRows))
	for _, item := range certRows {
		certMap[item.Day] = item.Total
	}

	// 逐天补齐空桶，保证窗口内每天都有数据点
	result := make([]StatsActivityTrendRow, 0, 8)
	for day := startAt; day.Before(endAt); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		result = append(result, StatsActivityTrendRow{
			Day:         key,
			NewUsers:    userMap[key],
			IssuedCerts: certMap[key],
		})
	}
	return result, nil
}
