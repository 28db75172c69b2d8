// Package mongo — хранилище деревьев комментариев поверх MongoDB.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mclhub/poke-board/internal/config"
)

const (
	commentsCollection = "comments"
	defaultDBName      = "pokeboard"
)

// Mongo — тонкий адаптер подключения и коллекций MongoDB.
type Mongo struct {
	limits   config.LimitsConfig
	client   *mongodriver.Client
	db       *mongodriver.Database
	comments *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение и готовит индексы.
// Имя базы берётся из конфигурации, при пустом значении — из пути URI.
func New(ctx context.Context, cfg config.MongoConfig, limits config.LimitsConfig) (*Mongo, error) {
	const op = "storage.mongo.New"

	if cfg.URI == "" {
		return nil, fmt.Errorf("%s: empty mongo uri", op)
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%s: connect: %w", op, err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	dbName := cfg.Database
	if dbName == "" {
		dbName = databaseFromURI(cfg.URI)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = commentsCollection
	}

	db := cli.Database(dbName)

	m := &Mongo{
		limits:   limits,
		client:   cli,
		db:       db,
		comments: db.Collection(collection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		m.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

func (m *Mongo) Close() {
	_ = m.client.Disconnect(context.Background())
}

// ensureIndexes создаёт индексы под запросы выдачи:
//   - корневые комментарии цели: target_kind + target_idx + parent_id + created_at(desc);
//   - ответы ветки: parent_id + created_at(asc).
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	models := []mongodriver.IndexModel{
		{
			Keys: bson.D{
				{Key: "target_kind", Value: 1},
				{Key: "target_idx", Value: 1},
				{Key: "parent_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("target_parent_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "parent_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("parent_created_asc"),
		},
	}

	if _, err := m.comments.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы из пути mongodb-URI,
// при его отсутствии возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}
