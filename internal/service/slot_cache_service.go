package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"careslot/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for cached slot views
	slotCacheKeyPrefix = "slots:"

	// Computed slot views are cheap to rebuild; keep the TTL short so a
	// missed invalidation self-heals quickly.
	slotCacheTTL = 60 * time.Second
)

// SlotCacheService caches computed available-slot views in Redis, keyed
// per (doctor, date, center). Every appointment write invalidates the
// doctor/date keys. The cache is best-effort: any Redis failure is logged
// and the caller recomputes from the database.
type SlotCacheService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotCacheService(redisClient *redis.Client, log *logrus.Logger) *SlotCacheService {
	return &SlotCacheService{
		redisClient: redisClient,
		log:         log,
	}
}

func slotCacheKey(doctorID uuid.UUID, date string, centerID *uuid.UUID) string {
	center := "any"
	if centerID != nil {
		center = centerID.String()
	}
	return fmt.Sprintf("%s%s:%s:%s", slotCacheKeyPrefix, doctorID.String(), date, center)
}

// Get returns the cached slot view, or nil on miss or Redis failure.
func (s *SlotCacheService) Get(ctx context.Context, doctorID uuid.UUID, date string, centerID *uuid.UUID) *dto.AvailableSlotsResponse {
	payload, err := s.redisClient.Get(ctx, slotCacheKey(doctorID, date, centerID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warnf("Slot cache read failed (non-fatal): %+v", err)
		}
		return nil
	}

	var cached dto.AvailableSlotsResponse
	if err := json.Unmarshal(payload, &cached); err != nil {
		s.log.Warnf("Slot cache entry corrupt, dropping: %+v", err)
		return nil
	}
	return &cached
}

// Set stores a computed slot view. Failures are non-fatal.
func (s *SlotCacheService) Set(ctx context.Context, doctorID uuid.UUID, date string, centerID *uuid.UUID, view *dto.AvailableSlotsResponse) {
	payload, err := json.Marshal(view)
	if err != nil {
		s.log.Warnf("Failed to marshal slot view for cache: %+v", err)
		return
	}
	if err := s.redisClient.Set(ctx, slotCacheKey(doctorID, date, centerID), payload, slotCacheTTL).Err(); err != nil {
		s.log.Warnf("Slot cache write failed (non-fatal): %+v", err)
	}
}

// InvalidateDay drops every cached view for a doctor/date, across centers.
// Called after any appointment write that changes slot occupancy.
func (s *SlotCacheService) InvalidateDay(ctx context.Context, doctorID uuid.UUID, date string) {
	pattern := fmt.Sprintf("%s%s:%s:*", slotCacheKeyPrefix, doctorID.String(), date)
	keys, err := s.redisClient.Keys(ctx, pattern).Result()
	if err != nil {
		s.log.Warnf("Slot cache invalidation scan failed (non-fatal): %+v", err)
		return
	}
	if len(keys) > 0 {
		if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
			s.log.Warnf("Slot cache invalidation failed (non-fatal): %+v", err)
		}
	}
}
