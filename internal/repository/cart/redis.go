package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/redis/go-redis/v9"

	"zafago-storefront/internal/domain"
)

const (
	keyPrefix     = "cart:"
	updateChannel = "cart-updates"
)

type redisRepo struct {
	client *redis.Client
	logger *log.Logger
}

func NewRedis(client *redis.Client, logger *log.Logger) *redisRepo {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &redisRepo{client: client, logger: logger}
}

func (r *redisRepo) Load(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	raw, err := r.client.Get(ctx, keyPrefix+cartID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Printf("cart repo: load id=%s error=%v", cartID, err)
		return nil, err
	}

	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		r.logger.Printf("cart repo: load id=%s malformed payload: %v", cartID, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrCartCorrupt, err)
	}
	return lines, nil
}

func (r *redisRepo) Save(ctx context.Context, cartID string, lines []domain.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+cartID, raw, 0).Err(); err != nil {
		r.logger.Printf("cart repo: save id=%s error=%v", cartID, err)
		return err
	}
	return nil
}

func (r *redisRepo) Clear(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, keyPrefix+cartID).Err(); err != nil {
		r.logger.Printf("cart repo: clear id=%s error=%v", cartID, err)
		return err
	}
	return nil
}

func (r *redisRepo) Publish(ctx context.Context, cartID string) error {
	return r.client.Publish(ctx, updateChannel, cartID).Err()
}

func (r *redisRepo) Updates(ctx context.Context) (<-chan string, func(), error) {
	pubsub := r.client.Subscribe(ctx, updateChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	stop := func() { pubsub.Close() }
	return out, stop, nil
}
