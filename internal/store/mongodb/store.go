// Package mongodb stores recipes and users in MongoDB, one document per
// record with the canonical nested field names.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/search"
	"github.com/pageza/recipe-chatbot/backend/internal/store"
)

const (
	recipesCollection = "recipes"
	usersCollection   = "users"

	connectTimeout = 10 * time.Second
)

// Store is a MongoDB-backed store.Store.
type Store struct {
	client  *mongo.Client
	recipes *mongo.Collection
	users   *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// Connect dials uri, verifies the connection and ensures the unique email index.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(clientOptions(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("could not ping MongoDB: %w", err)
	}

	s := New(client, database)
	if err := s.ensureIndexes(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// clientOptions decodes ObjectID keys as hex strings so documents inserted
// outside this service still load into model.Recipe.
func clientOptions(uri string) *options.ClientOptions {
	return options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{ObjectIDAsHexString: true})
}

// New wraps an already connected client.
func New(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:  client,
		recipes: db.Collection(recipesCollection),
		users:   db.Collection(usersCollection),
	}
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// FindRecipes returns matching recipes in natural order.
func (s *Store) FindRecipes(ctx context.Context, f search.Filter, limit int) ([]model.Recipe, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.recipes.Find(ctx, filterDocument(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find recipes: %w", err)
	}
	defer cursor.Close(ctx)

	recipes := []model.Recipe{}
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}
	return recipes, nil
}

func (s *Store) CreateRecipe(ctx context.Context, r *model.Recipe) error {
	if _, err := s.recipes.InsertOne(ctx, r); err != nil {
		return translate(err, "failed to insert recipe")
	}
	return nil
}

func (s *Store) InsertRecipes(ctx context.Context, recipes []model.Recipe) (int, error) {
	if len(recipes) == 0 {
		return 0, nil
	}
	res, err := s.recipes.InsertMany(ctx, recipes, options.InsertMany().SetOrdered(true))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	if err != nil {
		return inserted, translate(err, "failed to insert recipes")
	}
	return inserted, nil
}

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	doc := *u
	if doc.Favorites == nil {
		// $push needs an array to append to.
		doc.Favorites = []model.Recipe{}
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return translate(err, "failed to insert user")
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) AppendFavorite(ctx context.Context, userID string, r model.Recipe) ([]model.Recipe, error) {
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "favorites", Value: r}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u model.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return u.Favorites, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*model.User, error) {
	var u model.User
	if err := s.users.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// filterDocument translates a search filter into a query document. Terms are
// quoted so they match literally.
func filterDocument(f search.Filter) bson.D {
	doc := bson.D{}

	if f.HasTerm() {
		pattern := regexp.QuoteMeta(f.Term)
		or := bson.A{}
		for _, field := range f.Fields {
			or = append(or, bson.D{{Key: string(field), Value: bson.Regex{Pattern: pattern, Options: "i"}}})
		}
		doc = append(doc, bson.E{Key: "$or", Value: or})
	}

	if len(f.AllIngredients) > 0 {
		all := bson.A{}
		for _, ing := range f.AllIngredients {
			exact := `^\s*` + regexp.QuoteMeta(strings.TrimSpace(ing)) + `\s*$`
			all = append(all, bson.Regex{Pattern: exact, Options: "i"})
		}
		doc = append(doc, bson.E{Key: "ingredients", Value: bson.D{{Key: "$all", Value: all}}})
	}

	return doc
}

func translate(err error, msg string) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", msg, store.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
