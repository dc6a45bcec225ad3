package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the command surface the document repository uses. Single
// instance and cluster clients both satisfy it, as does a client dialed
// against miniredis in tests.
type Client interface {
	redis.UniversalClient
}
