package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator"
	"go.akpain.net/cfger"

	"github.com/SergeyParamoshkin/articles/internal/model"
)

// Record store backends.
const (
	RecordStoreDynamoDB = "dynamodb"
	RecordStoreSQLite   = "sqlite"
	RecordStoreMongo    = "mongo"
	RecordStoreMemory   = "memory"
)

// Content store backends.
const (
	ContentStoreS3     = "s3"
	ContentStoreDir    = "dir"
	ContentStoreMemory = "memory"
)

type Config struct {
	BodyMode      model.BodyMode `validate:"required,oneof=markdown file"`
	Table         string         `validate:"required"`
	RecordStore   string         `validate:"required,oneof=dynamodb sqlite mongo memory"`
	SQLitePath    string
	MongoURI      string
	MongoDatabase string
	ContentStore  string `validate:"required,oneof=s3 dir memory"`
	Bucket        string
	ContentDir    string
	HTTPAddress   string
	DiagAddress   string
}

var validate = validator.New()

// Get reads the configuration from ARTICLES_* environment variables.
func Get() (*Config, error) {
	cl := cfger.New()
	var conf = &Config{
		BodyMode:      model.BodyMode(cl.GetEnv("ARTICLES_BODY_MODE").WithDefault(string(model.BodyMarkdown)).AsString()),
		Table:         cl.GetEnv("ARTICLES_TABLE").WithDefault("articles").AsString(),
		RecordStore:   cl.GetEnv("ARTICLES_RECORD_STORE").WithDefault(RecordStoreDynamoDB).AsString(),
		SQLitePath:    cl.GetEnv("ARTICLES_SQLITE_PATH").WithDefault("articles.sqlite3.db").AsString(),
		MongoURI:      cl.GetEnv("ARTICLES_MONGO_URI").WithDefault("mongodb://localhost:27017").AsString(),
		MongoDatabase: cl.GetEnv("ARTICLES_MONGO_DATABASE").WithDefault("articles").AsString(),
		ContentStore:  cl.GetEnv("ARTICLES_CONTENT_STORE").WithDefault(ContentStoreS3).AsString(),
		Bucket:        cl.GetEnv("ARTICLES_BUCKET").WithDefault("").AsString(),
		ContentDir:    cl.GetEnv("ARTICLES_CONTENT_DIR").WithDefault("content").AsString(),
		HTTPAddress:   cl.GetEnv("ARTICLES_ADDR").WithDefault(":3333").AsString(),
		DiagAddress:   cl.GetEnv("ARTICLES_DIAG_ADDR").WithDefault(":9999").AsString(),
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// Validate checks field values and the combinations between them.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.BodyMode == model.BodyFile && c.ContentStore == ContentStoreS3 && c.Bucket == "" {
		return errors.New("invalid configuration: ARTICLES_BUCKET not set")
	}

	return nil
}
