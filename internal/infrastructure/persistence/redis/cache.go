package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ErrCacheMiss 缓存未命中
// 调用方据此回源数据库,不是异常路径
var ErrCacheMiss = errors.New("cache miss")

// ReportCache 报表缓存
// 设计说明:
// 1. 仪表盘/榜单查询涉及多表聚合,读多写少,适合短TTL缓存
// 2. 值用JSON序列化(结构体变更时旧缓存解析失败按miss处理)
// 3. Key设计:report:{name},统一命名空间便于批量失效
type ReportCache struct {
	client *redis.Client
}

// NewReportCache 创建报表缓存
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// Get 读取缓存并反序列化到dest
// 未命中或反序列化失败返回ErrCacheMiss
func (c *ReportCache) Get(ctx context.Context, name string, dest interface{}) error {
	key := fmt.Sprintf("report:%s", name)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return apperrors.Wrap(err, "读取报表缓存失败")
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// 旧版本的缓存结构,当作未命中处理
		return ErrCacheMiss
	}

	return nil
}

// Set 序列化并写入缓存
func (c *ReportCache) Set(ctx context.Context, name string, value interface{}, ttl time.Duration) error {
	key := fmt.Sprintf("report:%s", name)

	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(err, "序列化报表缓存失败")
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入报表缓存失败")
	}

	return nil
}
