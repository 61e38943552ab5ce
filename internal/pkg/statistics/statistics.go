package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/VisaPilotUK/VisaPilot/app/models"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/cache"
	"github.com/VisaPilotUK/VisaPilot/internal/pkg/database"
)

const (
	CacheKeyPlansTotal = "statistics:plans:total"
	CacheKeyPlansDaily = "statistics:plans:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyUsers      = "statistics:users:total"
	CacheExpiration    = 30 * time.Minute
)

// StatisticsData holds the aggregate numbers shown on the marketing pages
type StatisticsData struct {
	TodayPlans int
	TotalUsers int
	TotalPlans int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached numbers are due for a refresh
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the statistics cache when the interval elapsed
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces a refresh on the next read
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache updates all statistics in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalPlans int64
	if err := db.Model(&models.BusinessPlan{}).Count(&totalPlans).Error; err != nil {
		log.Printf("Error counting total plans: %v", err)
		return err
	}

	var todayPlans int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.BusinessPlan{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayPlans).Error; err != nil {
		log.Printf("Error counting today's plans: %v", err)
		return err
	}

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyPlansTotal, strconv.FormatInt(totalPlans, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total plans: %v", err)
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyPlansDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayPlans, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's plans: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total users: %v", err)
		return err
	}

	log.Printf("Statistics updated in cache: Total Plans: %d, Today's Plans: %d, Total Users: %d",
		totalPlans, todayPlans, totalUsers)

	return nil
}

// GetTotalPlans returns the total number of submitted plans from cache or database
func GetTotalPlans() int {
	val, err := cache.Get(CacheKeyPlansTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.BusinessPlan{}).Count(&count).Error; err != nil {
			log.Printf("Error counting total plans: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyPlansTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total plans: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTodayPlans returns the number of plans submitted today from cache or database
func GetTodayPlans() int {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeyPlansDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		var count int64
		db := database.GetDB()
		todayStart, _ := time.Parse("2006-01-02", today)
		todayEnd := todayStart.Add(24 * time.Hour)

		if err := db.Model(&models.BusinessPlan{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&count).Error; err != nil {
			log.Printf("Error counting today's plans: %v", err)
			return 0
		}

		if err := cache.Set(dailyKey, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching today's plans: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTotalUsers returns the total number of users from cache or database
func GetTotalUsers() int {
	val, err := cache.Get(CacheKeyUsers)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
			log.Printf("Error counting total users: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyUsers, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total users: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetStatisticsData returns all statistics data as StatisticsData structure
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TodayPlans: GetTodayPlans(),
		TotalUsers: GetTotalUsers(),
		TotalPlans: GetTotalPlans(),
	}
}
