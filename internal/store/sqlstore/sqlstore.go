package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mobilebazar/internal/models"
	"mobilebazar/internal/store"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds SQL connection details.
type Config struct {
	Driver         string
	DSN            string
	ConnectTimeout time.Duration
}

// documentRow is one document of any collection.
// Email is copied out of the body so the email filter can use an index.
type documentRow struct {
	ID         string `gorm:"primaryKey;type:varchar(24)"`
	Collection string `gorm:"index;type:varchar(64);not null"`
	Email      string `gorm:"index;type:varchar(255)"`
	Body       string `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (documentRow) TableName() string { return "documents" }

// Store is a store.Store that keeps documents as JSON rows in a single table.
type Store struct {
	db *gorm.DB
}

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

// Open connects with the configured driver, pings and migrates the documents table.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty")
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown sql driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.Driver == DriverPostgres {
		configurePool(sqlDB)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return New(db)
}

// New wraps an open gorm connection and migrates the documents table.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Find(ctx context.Context, collection string, filter bson.M) ([]models.Document, error) {
	q, err := scope(s.db.WithContext(ctx), collection, filter)
	if err != nil {
		return nil, err
	}
	var rows []documentRow
	if err := q.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find in %s: %w", collection, err)
	}

	docs := make([]models.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := row.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Store) FindOne(ctx context.Context, collection string, filter bson.M) (models.Document, error) {
	row, err := first(s.db.WithContext(ctx), collection, filter)
	if err != nil {
		return nil, err
	}
	return row.document()
}

func (s *Store) InsertOne(ctx context.Context, collection string, doc models.Document) (*store.InsertResult, error) {
	id := primitive.NewObjectID()
	row, err := newRow(id, collection, models.WithoutID(doc))
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return &store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *Store) UpdateOne(ctx context.Context, collection string, filter, set bson.M, opts store.UpdateOptions) (*store.UpdateResult, error) {
	res := &store.UpdateResult{Acknowledged: true}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := first(tx, collection, filter)
		if errors.Is(err, store.ErrNotFound) {
			if !opts.Upsert {
				return nil
			}
			return upsertRow(tx, collection, filter, set, res)
		}
		if err != nil {
			return err
		}

		res.MatchedCount = 1
		doc, err := row.document()
		if err != nil {
			return err
		}
		for k, v := range set {
			if k != models.IDField {
				doc[k] = v
			}
		}
		updated, err := newRow(primitive.NilObjectID, collection, models.WithoutID(doc))
		if err != nil {
			return err
		}
		if updated.Body == row.Body {
			return nil
		}

		row.Body = updated.Body
		row.Email = updated.Email
		if err := tx.Save(row).Error; err != nil {
			return fmt.Errorf("failed to update %s: %w", collection, err)
		}
		res.ModifiedCount = 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) DeleteOne(ctx context.Context, collection string, filter bson.M) (*store.DeleteResult, error) {
	res := &store.DeleteResult{Acknowledged: true}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := first(tx, collection, filter)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		del := tx.Delete(&documentRow{}, "id = ?", row.ID)
		if del.Error != nil {
			return fmt.Errorf("failed to delete from %s: %w", collection, del.Error)
		}
		res.DeletedCount = del.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func upsertRow(tx *gorm.DB, collection string, filter, set bson.M, res *store.UpdateResult) error {
	doc := models.Document{}
	for k, v := range filter {
		doc[k] = v
	}
	for k, v := range set {
		doc[k] = v
	}
	id, ok := doc[models.IDField].(primitive.ObjectID)
	if !ok {
		id = primitive.NewObjectID()
	}
	row, err := newRow(id, collection, models.WithoutID(doc))
	if err != nil {
		return err
	}
	if err := tx.Create(row).Error; err != nil {
		return fmt.Errorf("failed to upsert into %s: %w", collection, err)
	}
	res.UpsertedCount = 1
	res.UpsertedID = id
	return nil
}

// scope narrows q to a collection and translates the filter into column conditions.
// Only _id and email can be filtered on.
func scope(q *gorm.DB, collection string, filter bson.M) (*gorm.DB, error) {
	q = q.Model(&documentRow{}).Where("collection = ?", collection)
	for key, value := range filter {
		switch key {
		case models.IDField:
			id, err := hexID(value)
			if err != nil {
				return nil, err
			}
			q = q.Where("id = ?", id)
		case "email":
			email, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: email must be a string", store.ErrUnsupportedFilter)
			}
			q = q.Where("email = ?", email)
		default:
			return nil, fmt.Errorf("%w: %s", store.ErrUnsupportedFilter, key)
		}
	}
	return q, nil
}

func first(q *gorm.DB, collection string, filter bson.M) (*documentRow, error) {
	q, err := scope(q, collection, filter)
	if err != nil {
		return nil, err
	}
	var row documentRow
	if err := q.Order("created_at ASC, id ASC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find one in %s: %w", collection, err)
	}
	return &row, nil
}

func hexID(value any) (string, error) {
	switch v := value.(type) {
	case primitive.ObjectID:
		return v.Hex(), nil
	case string:
		id, err := store.ParseID(v)
		if err != nil {
			return "", err
		}
		return id.Hex(), nil
	default:
		return "", fmt.Errorf("%w: _id of type %T", store.ErrUnsupportedFilter, value)
	}
}

func newRow(id primitive.ObjectID, collection string, doc models.Document) (*documentRow, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return &documentRow{
		ID:         id.Hex(),
		Collection: collection,
		Email:      models.StringField(doc, "email"),
		Body:       string(body),
	}, nil
}

func (r *documentRow) document() (models.Document, error) {
	doc := models.Document{}
	if err := json.Unmarshal([]byte(r.Body), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", r.ID, err)
	}
	id, err := primitive.ObjectIDFromHex(r.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt document id %q: %w", r.ID, err)
	}
	doc[models.IDField] = id
	return doc, nil
}
