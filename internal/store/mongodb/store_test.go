package mongodb

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/search"
	"github.com/pageza/recipe-chatbot/backend/internal/store"
	"github.com/pageza/recipe-chatbot/backend/internal/testhelpers"
)

func TestFilterDocumentEmpty(t *testing.T) {
	assert.Equal(t, bson.D{}, filterDocument(search.Build("  ")))
}

func TestFilterDocumentTerm(t *testing.T) {
	got := filterDocument(search.Build("mac (and) cheese"))

	want := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "title", Value: bson.Regex{Pattern: `mac \(and\) cheese`, Options: "i"}}},
		bson.D{{Key: "ingredients", Value: bson.Regex{Pattern: `mac \(and\) cheese`, Options: "i"}}},
		bson.D{{Key: "combined", Value: bson.Regex{Pattern: `mac \(and\) cheese`, Options: "i"}}},
	}}}
	assert.Equal(t, want, got)
}

func TestFilterDocumentAllIngredients(t *testing.T) {
	got := filterDocument(search.Filter{AllIngredients: []string{"chicken", "olive oil"}})

	want := bson.D{{Key: "ingredients", Value: bson.D{{Key: "$all", Value: bson.A{
		bson.Regex{Pattern: `^\s*chicken\s*$`, Options: "i"},
		bson.Regex{Pattern: `^\s*olive oil\s*$`, Options: "i"},
	}}}}}
	assert.Equal(t, want, got)
}

func TestAllIngredientsPatternToleratesPadding(t *testing.T) {
	doc := filterDocument(search.Filter{AllIngredients: []string{" Chicken "}})
	all := doc[0].Value.(bson.D)[0].Value.(bson.A)
	re := regexp.MustCompile("(?i)" + all[0].(bson.Regex).Pattern)

	assert.True(t, re.MatchString("chicken "))
	assert.True(t, re.MatchString("  CHICKEN"))
	assert.False(t, re.MatchString("chicken stock"))
}

func TestClientOptionsDecodeObjectIDs(t *testing.T) {
	opts := clientOptions("mongodb://localhost:27017")
	require.NotNil(t, opts.BSONOptions)
	assert.True(t, opts.BSONOptions.ObjectIDAsHexString)

	oid := bson.NewObjectID()
	raw, err := bson.Marshal(bson.D{{Key: "_id", Value: oid}, {Key: "title", Value: "Chicken Soup"}})
	require.NoError(t, err)

	dec := bson.NewDecoder(bson.NewDocumentReader(bytes.NewReader(raw)))
	dec.ObjectIDAsHexString()
	var r model.Recipe
	require.NoError(t, dec.Decode(&r))
	assert.Equal(t, oid.Hex(), r.ID)
	assert.Equal(t, "Chicken Soup", r.Title)
}

func TestStoreIntegration(t *testing.T) {
	uri := testhelpers.SetupMongo(t)
	ctx := context.Background()

	s, err := Connect(ctx, uri, "recipes_test")
	require.NoError(t, err)
	defer s.Close(ctx)

	require.NoError(t, s.Ping(ctx))

	n, err := s.InsertRecipes(ctx, []model.Recipe{testhelpers.ChickenSoup(), testhelpers.VegCurry()})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := s.FindRecipes(ctx, search.Build("Chicken"), 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Chicken Soup", got[0].Title)
	assert.Equal(t, model.Steps{"boil chicken", "add onion", "simmer"}, got[0].Directions)

	got, err = s.FindRecipes(ctx, search.Filter{AllIngredients: []string{"CHICKEN", "onion"}}, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)

	oid := bson.NewObjectID()
	_, err = s.recipes.InsertOne(ctx, bson.D{
		{Key: "_id", Value: oid},
		{Key: "title", Value: "Imported Stew"},
		{Key: "ingredients", Value: bson.A{"beef ", "carrot"}},
	})
	require.NoError(t, err)
	imported, err := s.FindRecipes(ctx, search.Filter{AllIngredients: []string{"beef"}}, 5)
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, oid.Hex(), imported[0].ID)

	dup := got[0]
	assert.ErrorIs(t, s.CreateRecipe(ctx, &dup), store.ErrDuplicate)

	require.NoError(t, s.CreateUser(ctx, &model.User{ID: "u1", Email: "cook@example.com", Password: "pw"}))
	assert.ErrorIs(t, s.CreateUser(ctx, &model.User{ID: "u2", Email: "cook@example.com"}), store.ErrDuplicate)

	favs, err := s.AppendFavorite(ctx, "u1", testhelpers.VegCurry())
	require.NoError(t, err)
	assert.Len(t, favs, 1)

	u, err := s.FindUserByEmail(ctx, "cook@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Len(t, u.Favorites, 1)

	_, err = s.FindUserByID(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.AppendFavorite(ctx, "nope", testhelpers.VegCurry())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
