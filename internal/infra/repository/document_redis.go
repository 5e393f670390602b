package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
)

const redisKeyPrefix = "docs:"

// DocumentRedisRepository stores a collection as one hash: field = id,
// value = JSON document.
type DocumentRedisRepository struct {
	rdb *redis.Client
}

func NewDocumentRedisRepository(rdb *redis.Client) *DocumentRedisRepository {
	return &DocumentRedisRepository{rdb: rdb}
}

func (r *DocumentRedisRepository) Create(
	ctx context.Context,
	collection string,
	fields map[string]any,
) (string, error) {

	data, err := json.Marshal(fields)
	if err != nil {
		return "", booking.RejectedError("create", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}

	if err := r.rdb.HSet(ctx, redisKeyPrefix+collection, id.String(), data).Err(); err != nil {
		return "", classifyRedis("create", err)
	}
	return id.String(), nil
}

func (r *DocumentRedisRepository) List(
	ctx context.Context,
	collection string,
) ([]booking.Record, error) {

	raw, err := r.rdb.HGetAll(ctx, redisKeyPrefix+collection).Result()
	if err != nil {
		return nil, classifyRedis("list", err)
	}

	out := make([]booking.Record, 0, len(raw))
	for id, data := range raw {
		fields, err := decodeFields([]byte(data))
		if err != nil {
			return nil, booking.RejectedError("list", err)
		}
		out = append(out, booking.Record{ID: id, Fields: fields})
	}
	return out, nil
}

func (r *DocumentRedisRepository) Delete(
	ctx context.Context,
	collection string,
	id string,
) error {

	if err := r.rdb.HDel(ctx, redisKeyPrefix+collection, id).Err(); err != nil {
		return classifyRedis("delete", err)
	}
	return nil
}

func (r *DocumentRedisRepository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// classifyRedis treats server error replies as rejections.
func classifyRedis(op string, err error) error {
	var replyErr redis.Error
	if errors.As(err, &replyErr) {
		return booking.RejectedError(op, err)
	}
	return booking.NetworkError(op, err)
}
