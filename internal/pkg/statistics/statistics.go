package statistics

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/internal/pkg/cache"
)

const (
	CacheKeyApprovedMembers = "statistics:members:approved"
	CacheExpiration         = 30 * time.Minute
)

// StatusCounter counts applications in one status
type StatusCounter interface {
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// StatisticsData is shown on the landing page
type StatisticsData struct {
	ApprovedMembers int
}

// GetApprovedMembers returns the number of approved applications from cache or store
func GetApprovedMembers(ctx context.Context, counter StatusCounter) int {
	if val, err := cache.Get(ctx, CacheKeyApprovedMembers); err == nil {
		if count, err := strconv.Atoi(val); err == nil {
			return count
		}
	}

	count, err := counter.CountByStatus(ctx, models.PaymentStatusApproved)
	if err != nil {
		log.Errorf("[Statistics] Error counting approved members: %v", err)
		return 0
	}
	if err := cache.Set(ctx, CacheKeyApprovedMembers, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
		log.Warnf("[Statistics] Error caching approved members: %v", err)
	}
	return int(count)
}

// Invalidate drops cached values after a moderation decision
func Invalidate(ctx context.Context) {
	if err := cache.Delete(ctx, CacheKeyApprovedMembers); err != nil {
		log.Warnf("[Statistics] Error invalidating cache: %v", err)
	}
}

// GetStatisticsData returns all landing statistics
func GetStatisticsData(ctx context.Context, counter StatusCounter) StatisticsData {
	return StatisticsData{
		ApprovedMembers: GetApprovedMembers(ctx, counter),
	}
}
