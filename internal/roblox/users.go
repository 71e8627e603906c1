package roblox

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"altlens/internal/model"
)

// LookupUserID resolves a username to an account id.
func (c *HTTPClient) LookupUserID(ctx context.Context, username string) (int64, error) {
	if strings.TrimSpace(username) == "" {
		return 0, errors.New("empty username")
	}
	body := map[string]any{"usernames": []string{username}, "excludeBannedUsers": false}
	var raw struct {
		Data []struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := c.postJSON(ctx, "usernames", c.endpoints.Users+"/v1/usernames/users", body, &raw); err != nil {
		return 0, err
	}
	if len(raw.Data) == 0 {
		return 0, ErrUserNotFound
	}
	return raw.Data[0].ID, nil
}

// GetProfile returns the public profile of userID.
func (c *HTTPClient) GetProfile(ctx context.Context, userID int64) (model.Profile, error) {
	var raw struct {
		ID          int64     `json:"id"`
		Name        string    `json:"name"`
		DisplayName string    `json:"displayName"`
		Description string    `json:"description"`
		Created     time.Time `json:"created"`
	}
	u := fmt.Sprintf("%s/v1/users/%d", c.endpoints.Users, userID)
	if err := c.getJSON(ctx, "profile", u, "", &raw); err != nil {
		return model.Profile{}, err
	}
	return model.Profile{
		ID:          raw.ID,
		Name:        raw.Name,
		DisplayName: raw.DisplayName,
		Description: raw.Description,
		Created:     raw.Created,
	}, nil
}

// GetSocial returns friend, follower, following and group counts.
func (c *HTTPClient) GetSocial(ctx context.Context, userID int64) (model.Social, error) {
	var out model.Social
	g, ctx := errgroup.WithContext(ctx)
	count := func(endpoint, path string, dst *int) {
		g.Go(func() error {
			var raw struct {
				Count int `json:"count"`
			}
			u := fmt.Sprintf("%s/v1/users/%d/%s", c.endpoints.Friends, userID, path)
			if err := c.getJSON(ctx, endpoint, u, "", &raw); err != nil {
				return err
			}
			*dst = raw.Count
			return nil
		})
	}
	count("friends", "friends/count", &out.Friends)
	count("followers", "followers/count", &out.Followers)
	count("followings", "followings/count", &out.Following)
	g.Go(func() error {
		var raw struct {
			Data []struct{} `json:"data"`
		}
		u := fmt.Sprintf("%s/v2/users/%d/groups/roles", c.endpoints.Groups, userID)
		if err := c.getJSON(ctx, "groups", u, "", &raw); err != nil {
			return err
		}
		out.Groups = len(raw.Data)
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.Social{}, err
	}
	return out, nil
}

// GetAvatars returns the full-body and headshot renders that are available.
func (c *HTTPClient) GetAvatars(ctx context.Context, userID int64) ([]model.Avatar, error) {
	kinds := []struct{ kind, path string }{
		{"full", "avatar"},
		{"headshot", "avatar-headshot"},
	}
	var out []model.Avatar
	for _, k := range kinds {
		q := url.Values{}
		q.Set("userIds", fmt.Sprint(userID))
		q.Set("size", "420x420")
		q.Set("format", "Png")
		var raw struct {
			Data []struct {
				State    string `json:"state"`
				ImageURL string `json:"imageUrl"`
			} `json:"data"`
		}
		u := fmt.Sprintf("%s/v1/users/%s?%s", c.endpoints.Thumbnails, k.path, q.Encode())
		if err := c.getJSON(ctx, "thumbnails", u, "", &raw); err != nil {
			return out, err
		}
		if len(raw.Data) > 0 && raw.Data[0].ImageURL != "" {
			out = append(out, model.Avatar{Kind: k.kind, ImageURL: raw.Data[0].ImageURL})
		}
	}
	return out, nil
}
