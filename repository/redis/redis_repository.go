package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/muhammadheryan/patient-registration/cmd/redis"
	goredis "github.com/redis/go-redis/v9"
)

// Repository caches document photos. Photos never change once stored, so
// entries only expire by TTL.
type Repository interface {
	GetPhoto(ctx context.Context, patientID uint64) ([]byte, error)
	SetPhoto(ctx context.Context, patientID uint64, photo []byte, ttl time.Duration) error
}

type redis struct{}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

func photoKey(patientID uint64) string {
	return fmt.Sprintf("patient:photo:%d", patientID)
}

// GetPhoto returns the cached photo, or nil on a miss.
func (r *redis) GetPhoto(ctx context.Context, patientID uint64) ([]byte, error) {
	client := redisclient.Get()
	if client == nil {
		return nil, nil
	}
	val, err := client.Get(ctx, photoKey(patientID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return val, nil
}

// SetPhoto stores a photo with time-to-live
func (r *redis) SetPhoto(ctx context.Context, patientID uint64, photo []byte, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Set(ctx, photoKey(patientID), photo, ttl).Err()
}
