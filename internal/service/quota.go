package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"gapgap-ai/internal/domain"
)

// QuotaLimiter limita la cantidad de envíos diarios por usuario según su plan.
// El plan básico tiene un tope diario; pro y enterprise no se miden.
type QuotaLimiter interface {
	Allow(userID, plan string) bool
}

func metered(plan string) bool {
	switch plan {
	case domain.PlanPro, domain.PlanEnterprise:
		return false
	default:
		return true
	}
}

type memoryQuotaLimiter struct {
	mu    sync.Mutex
	limit int
	day   string
	hits  map[string]int
	now   func() time.Time
}

// NewQuotaLimiter crea un limitador en memoria con tope diario por usuario.
func NewQuotaLimiter(limit int) QuotaLimiter {
	if limit <= 0 {
		limit = 50
	}
	return &memoryQuotaLimiter{
		limit: limit,
		hits:  make(map[string]int),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (l *memoryQuotaLimiter) Allow(userID, plan string) bool {
	if strings.TrimSpace(userID) == "" {
		return false
	}
	if !metered(plan) {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	day := l.now().Format("2006-01-02")
	if day != l.day {
		l.day = day
		l.hits = make(map[string]int)
	}
	if l.hits[userID] >= l.limit {
		return false
	}
	l.hits[userID]++
	return true
}

type redisQuotaLimiter struct {
	client *redis.Client
	limit  int
	prefix string
}

// NewRedisQuotaLimiter crea un limitador respaldado en Redis, para que la
// cuota sobreviva reinicios y se comparta entre réplicas.
func NewRedisQuotaLimiter(client *redis.Client, limit int) QuotaLimiter {
	if client == nil {
		return nil
	}
	if limit <= 0 {
		limit = 50
	}
	return &redisQuotaLimiter{
		client: client,
		limit:  limit,
		prefix: "chat:quota:",
	}
}

func (l *redisQuotaLimiter) Allow(userID, plan string) bool {
	if strings.TrimSpace(userID) == "" {
		return false
	}
	if !metered(plan) {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	key := l.prefix + time.Now().UTC().Format("2006-01-02") + ":" + userID
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		// Si Redis no responde, no bloqueamos el envío.
		return true
	}
	if n == 1 {
		l.client.Expire(ctx, key, 48*time.Hour)
	}
	return n <= int64(l.limit)
}
