// Package store persists form instances between per-field triggers so that a
// stateless HTTP host can keep one aggregate validation state per rendered
// form.
//
// Two implementations are provided:
//
//   - MemoryStore keeps records in a bounded LRU cache with optional expiry.
//   - RedisStore keeps one JSON-encoded key per record with an optional TTL.
//
// Both return ErrNotFound for unknown or expired IDs and copy records on the
// way in and out, so callers can mutate what they hold.
//
//	client, err := store.Connect(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	forms := store.NewRedisStore(client, store.WithRedisTTL(time.Hour))
package store
