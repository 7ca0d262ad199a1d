package kvikmyndir

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"showtimes/proj/internal/domain/models"
)

func (c *Client) Movies(ctx context.Context) ([]models.Movie, error) {
	return fetchList[models.Movie](ctx, c, "movies", "/movies")
}

func (c *Client) Theaters(ctx context.Context) ([]models.Theater, error) {
	return fetchList[models.Theater](ctx, c, "theaters", "/theaters")
}

func (c *Client) Upcoming(ctx context.Context) ([]models.Movie, error) {
	return fetchList[models.Movie](ctx, c, "upcoming movies", "/upcoming")
}

func fetchList[T any](ctx context.Context, c *Client, resource, endpoint string) ([]T, error) {
	const op = "kvikmyndir.Client.fetchList"
	log := c.log.With("op", op, "resource", resource)

	resp, err := c.Request(ctx, endpoint, RequestOptions{})
	if err != nil {
		log.Error("request failed", "errMsg", err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		err := &FetchError{Resource: resource, StatusCode: resp.StatusCode, Status: statusText(resp)}
		log.Error(err.Error())
		return nil, err
	}
	var items []T
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		log.Error("decode failed", "errMsg", err.Error())
		return nil, fmt.Errorf("decode %s: %w", resource, err)
	}
	if items == nil {
		items = []T{}
	}
	log.Debug("fetched", "count", len(items))
	return items, nil
}
