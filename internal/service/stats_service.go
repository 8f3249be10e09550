package service

import (
	"time"

	"github.com/skillchain/skillchain-api/internal/repository"
)

const statsActivityWindowDays = 7

// StatsService 平台统计服务
type StatsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService 创建统计服务
func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// RoleStats 角色分布统计
type RoleStats struct {
	Students   int64 `json:"students"`
	Institutes int64 `json:"institutes"`
	Companies  int64 `json:"companies"`
}

// ActivityStat 按天聚合的活动数据点
type ActivityStat struct {
	Name        string `json:"name"` // 星期缩写
	NewUsers    int64  `json:"newUsers"`
	IssuedCerts int64  `json:"issuedCerts"`
}

// AdminStats 管理员总览统计
type AdminStats struct {
	TotalUsers        int64          `json:"totalUsers"`
	TotalCertificates int64          `json:"totalCertificates"`
	Roles             RoleStats      `json:"roles"`
	RecentActivity    []ActivityStat `json:"recentActivity"`
}

// GetAdminStats 获取管理员总览统计（近 7 天活动趋势）
func (s *StatsService) GetAdminStats() (*AdminStats, error) {
	overview, err := s.statsRepo.GetOverview()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	endAt := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	startAt := endAt.AddDate(0, 0, -statsActivityWindowDays)

	trends, err := s.statsRepo.GetActivityTrends(startAt, endAt)
	if err != nil {
		return nil, err
	}

	activity := make([]ActivityStat, 0, len(trends))
	for _, row := range trends {
		activity = append(activity, ActivityStat{
			Name:        weekdayLabel(row.Day),
			NewUsers:    row.NewUsers,
			IssuedCerts: row.IssuedCerts,
		})
	}

	return &AdminStats{
		TotalUsers:        overview.TotalUsers,
		TotalCertificates: overview.TotalCertificates,
		Roles: RoleStats{
			Students:   overview.Students,
			Institutes: overview.Institutes,
			Companies:  overview.Companies,
		},
		RecentActivity: activity,
	}, nil
}

func weekdayLabel(day string) string {
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return parsed.Format("Mon")
}
