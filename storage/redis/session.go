package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"taxifleet/pkg/models"
	"taxifleet/storage"
)

const sessionPrefix = "taxifleet:session:"

// touch bumps the visit counter only while the session key still exists, so
// an expired session is never recreated without a TTL.
var touch = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
return redis.call('HINCRBY', KEYS[1], 'visits', 1)
`)

type sessionRepo struct {
	rdb redis.UniversalClient
}

func NewSessionRepo(rdb redis.UniversalClient) storage.ISessionStorage {
	return &sessionRepo{rdb: rdb}
}

func key(id string) string {
	return sessionPrefix + id
}

func (r *sessionRepo) Create(ctx context.Context, session *models.Session) error {
	k := key(session.ID)
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k,
			"driver_id", session.DriverID,
			"visits", session.Visits,
			"created_at", session.CreatedAt.Unix(),
			"expires_at", session.ExpiresAt.Unix(),
		)
		pipe.ExpireAt(ctx, k, session.ExpiresAt)
		return nil
	})
	return err
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	fields, err := r.rdb.HGetAll(ctx, key(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, storage.ErrNotFound
	}
	return decode(id, fields)
}

func (r *sessionRepo) Touch(ctx context.Context, id string) (*models.Session, error) {
	visits, err := touch.Run(ctx, r.rdb, []string{key(id)}).Int()
	if err != nil {
		return nil, err
	}
	if visits < 0 {
		return nil, storage.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, key(id)).Err()
}

func decode(id string, fields map[string]string) (*models.Session, error) {
	driverID, err := strconv.ParseInt(fields["driver_id"], 10, 64)
	if err != nil {
		return nil, errors.New("session " + id + ": bad driver_id")
	}
	visits, _ := strconv.Atoi(fields["visits"])
	created, _ := strconv.ParseInt(fields["created_at"], 10, 64)
	expires, _ := strconv.ParseInt(fields["expires_at"], 10, 64)

	return &models.Session{
		ID:        id,
		DriverID:  driverID,
		Visits:    visits,
		CreatedAt: time.Unix(created, 0),
		ExpiresAt: time.Unix(expires, 0),
	}, nil
}
