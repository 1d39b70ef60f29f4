package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%s"
	FolloweesKeyPrefix = "followees:%s"
)

const (
	UserTTL      = 5 * time.Minute
	FolloweesTTL = 2 * time.Minute
)

func UserKey(username string) string {
	return fmt.Sprintf(UserKeyPrefix, username)
}

func FolloweesKey(username string) string {
	return fmt.Sprintf(FolloweesKeyPrefix, username)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, username string) {
	Invalidate(ctx, UserKey(username))
}

func InvalidateFollowees(ctx context.Context, usernames ...string) {
	keys := make([]string, 0, len(usernames))
	for _, u := range usernames {
		keys = append(keys, FolloweesKey(u))
	}
	Invalidate(ctx, keys...)
}
