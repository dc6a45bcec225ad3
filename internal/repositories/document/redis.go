package document

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/mixtli/dungeon-lab-sub000/internal/entities/document"
	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	redisclient "github.com/mixtli/dungeon-lab-sub000/internal/redis"
)

const (
	documentKeyPrefix = "document:"
	categoryKeyPrefix = "document:category:"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis document repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed document repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if len(input.Documents) == 0 {
		return &SaveOutput{}, nil
	}

	vb := errors.NewValidationBuilder()
	for i, doc := range input.Documents {
		field := fmt.Sprintf("documents.%d", i)
		switch {
		case doc == nil:
			vb.Field(field, "cannot be nil")
		case doc.Slug == "":
			vb.RequiredField(field + ".slug")
		case doc.DocumentKind == "":
			vb.RequiredField(field + ".document_kind")
		case doc.Category == "":
			vb.RequiredField(field + ".category")
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	for _, doc := range input.Documents {
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal document %s", doc.IdentityKey())
		}

		identity := doc.IdentityKey()
		pipe.Set(ctx, GetKey(identity), data, 0)
		pipe.SAdd(ctx, GetCategoryKey(doc.Category), identity)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save %d documents", len(input.Documents))
	}

	slog.Debug("Saved documents", "count", len(input.Documents))
	return &SaveOutput{Saved: len(input.Documents)}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if input.Kind == "" {
		vb.RequiredField("kind")
	}
	if input.Slug == "" {
		vb.RequiredField("slug")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	identity := document.IdentityKey(input.Kind, input.Source, input.Slug)
	result, err := r.client.Get(ctx, GetKey(identity)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("document %s not found", identity)
		}
		return nil, errors.Wrapf(err, "failed to get document %s", identity)
	}

	var doc document.Document
	if err := json.Unmarshal([]byte(result), &doc); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to unmarshal document %s", identity)
	}

	return &GetOutput{Document: &doc}, nil
}

func (r *redisRepository) ListByCategory(ctx context.Context, input *ListByCategoryInput) (*ListByCategoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.Category == "" {
		return nil, errors.InvalidArgument("category cannot be empty")
	}

	identities, err := r.client.SMembers(ctx, GetCategoryKey(input.Category)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s documents", input.Category)
	}
	if len(identities) == 0 {
		return &ListByCategoryOutput{}, nil
	}
	sort.Strings(identities)

	keys := make([]string, len(identities))
	for i, identity := range identities {
		keys[i] = GetKey(identity)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s documents", input.Category)
	}

	docs := make([]*document.Document, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// index entry outlived its document
			slog.Warn("Skipping missing document", "identity", identities[i])
			continue
		}

		var doc document.Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to unmarshal document %s", identities[i])
		}
		docs = append(docs, &doc)
	}

	return &ListByCategoryOutput{Documents: docs}, nil
}

func (r *redisRepository) Verify(ctx context.Context, input *VerifyInput) (*VerifyOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	output := &VerifyOutput{}
	iter := r.client.Scan(ctx, 0, documentKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasPrefix(key, categoryKeyPrefix) {
			continue
		}
		output.Checked++

		data, err := r.client.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}

		var doc document.Document
		if err := json.Unmarshal([]byte(data), &doc); err != nil {
			slog.Warn("Corrupted document", "key", key, "error", err)
			output.Corrupt = append(output.Corrupt, key)
			continue
		}
		if GetKey(doc.IdentityKey()) != key {
			slog.Warn("Document stored under the wrong key", "key", key, "identity", doc.IdentityKey())
			output.Corrupt = append(output.Corrupt, key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan documents")
	}
	sort.Strings(output.Corrupt)

	if !input.Delete || len(output.Corrupt) == 0 {
		return output, nil
	}

	categoryKeys, err := r.categoryKeys(ctx)
	if err != nil {
		return nil, err
	}
	pipe := r.client.TxPipeline()
	for _, key := range output.Corrupt {
		pipe.Del(ctx, key)
		identity := strings.TrimPrefix(key, documentKeyPrefix)
		for _, categoryKey := range categoryKeys {
			pipe.SRem(ctx, categoryKey, identity)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete %d corrupted documents", len(output.Corrupt))
	}
	output.Deleted = len(output.Corrupt)

	slog.Info("Deleted corrupted documents", "count", output.Deleted)
	return output, nil
}

func (r *redisRepository) categoryKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, categoryKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan category indexes")
	}
	return keys, nil
}

// GetKey returns the Redis key for a document identity key
// Exposed for testing purposes
func GetKey(identity string) string {
	return documentKeyPrefix + identity
}

// GetCategoryKey returns the Redis set key indexing a category
func GetCategoryKey(category document.Category) string {
	return categoryKeyPrefix + string(category)
}
