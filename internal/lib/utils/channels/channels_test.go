package chans_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	chans "github.com/GintGld/vam-seed/internal/lib/utils/channels"
)

func TestFeed(t *testing.T) {
	var got []int
	for i := range chans.Feed(context.Background(), []int{1, 2, 3}) {
		got = append(got, i)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestFeedCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	ch := chans.Feed(ctx, []int{1, 2, 3})
	assert.Equal(t, 1, <-ch)
	cancel()

	// drains without blocking forever
	for range ch {
	}
}
