package cache

import (
	"context"
	"testing"

	"go-floor-inventory/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_DisabledWithoutAddr(t *testing.T) {
	assert.Nil(t, NewRedisClient("", "", 0))
}

func TestNoopCatalogCache(t *testing.T) {
	c := NewNoopCatalogCache()
	c.Set(context.Background(), &model.Product{ProductNumber: "12345-67890-71"})

	_, ok := c.Get(context.Background(), "12345-67890-71")
	assert.False(t, ok)
}
