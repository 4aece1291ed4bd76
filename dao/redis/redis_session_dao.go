package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"es-server/db"
	"es-server/models"
)

const (
	SESSION_KEY_FORMAT_V1 = "session_v1:%s"

	// Views live under their own key so a dashboard pass never rewrites
	// the selection it read.
	VIEW_KEY_FORMAT_V1 = "session_view_v1:%s"
)

var ErrSessionNotFound = errors.New("session not found")

// RedisSessionDAO persists dashboard sessions as JSON documents.
type RedisSessionDAO struct {
	client db.RedisClient
	ttl    time.Duration
}

// NewRedisSessionDAO initializes a RedisSessionDAO; every save refreshes ttl.
func NewRedisSessionDAO(client db.RedisClient, ttl time.Duration) *RedisSessionDAO {
	return &RedisSessionDAO{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return fmt.Sprintf(SESSION_KEY_FORMAT_V1, id)
}

func viewKey(id string) string {
	return fmt.Sprintf(VIEW_KEY_FORMAT_V1, id)
}

// SaveSession stores the session, replacing any previous version.
func (dao *RedisSessionDAO) SaveSession(ctx context.Context, s *models.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", s.ID, err)
	}
	if err := dao.client.Set(ctx, sessionKey(s.ID), string(data), dao.ttl); err != nil {
		return fmt.Errorf("failed to save session in redis: %w", err)
	}
	return nil
}

// GetSession loads a session by id.
func (dao *RedisSessionDAO) GetSession(ctx context.Context, id string) (*models.Session, error) {
	str, err := dao.client.Get(ctx, sessionKey(id))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}
	var s models.Session
	if err := json.Unmarshal([]byte(str), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session JSON: %w", err)
	}
	return &s, nil
}

func (dao *RedisSessionDAO) DeleteSession(ctx context.Context, id string) error {
	if err := dao.client.Del(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if err := dao.client.Del(ctx, viewKey(id)); err != nil {
		return fmt.Errorf("failed to delete view of session %s: %w", id, err)
	}
	return nil
}

// SaveView stores the last rendered dashboard of a session.
func (dao *RedisSessionDAO) SaveView(ctx context.Context, id string, v *models.DashboardView) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal view of session %s: %w", id, err)
	}
	if err := dao.client.Set(ctx, viewKey(id), string(data), dao.ttl); err != nil {
		return fmt.Errorf("failed to save view in redis: %w", err)
	}
	return nil
}

// GetView loads the last rendered dashboard; nil when none was stored.
func (dao *RedisSessionDAO) GetView(ctx context.Context, id string) (*models.DashboardView, error) {
	str, err := dao.client.Get(ctx, viewKey(id))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get view from redis: %w", err)
	}
	var v models.DashboardView
	if err := json.Unmarshal([]byte(str), &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal view JSON: %w", err)
	}
	return &v, nil
}

// ListSessionIDs returns the ids of every live session.
func (dao *RedisSessionDAO) ListSessionIDs(ctx context.Context) ([]string, error) {
	keys, err := dao.client.Keys(ctx, sessionKey("*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list session keys: %w", err)
	}
	prefix := sessionKey("")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}
