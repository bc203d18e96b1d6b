package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	PostKeyPrefix    = "post:%d"
	ProfileKeyPrefix = "profile:user:%d"
	ProfileListKey   = "profiles:all"
	GithubKeyPrefix  = "github:repos:%s"
)

const (
	UserTTL        = 5 * time.Minute
	PostTTL        = 5 * time.Minute
	ProfileTTL     = 10 * time.Minute
	ProfileListTTL = 1 * time.Minute
	GithubTTL      = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func GithubKey(username string) string {
	return fmt.Sprintf(GithubKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateProfile drops both the per-user entry and the public listing.
func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
	Invalidate(ctx, ProfileListKey)
}
