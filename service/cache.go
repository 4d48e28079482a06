package service

import (
	"sync"
	"time"
)

// SummaryCache 摘要读缓存：分钟级 TTL，写后显式失效。
// 单用户系统，写操作后的下一次读绝不能命中旧值（write-then-invalidate）。
type SummaryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	value   interface{}
	expires time.Time
}

// NewSummaryCache 创建缓存，ttl <= 0 时禁用缓存（每次都未命中）
func NewSummaryCache(ttl time.Duration) *SummaryCache {
	return &SummaryCache{ttl: ttl}
}

// Get 返回缓存值；过期或未设置时 ok 为 false
func (c *SummaryCache) Get(now time.Time) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil || now.After(c.expires) {
		return nil, false
	}
	return c.value, true
}

// Set 写入缓存值
func (c *SummaryCache) Set(value interface{}, now time.Time) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.expires = now.Add(c.ttl)
}

// Invalidate 使缓存失效，任何写路径完成后必须调用
func (c *SummaryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
}
