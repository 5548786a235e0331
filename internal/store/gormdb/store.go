// Package gormdb implements the recipe store on a relational database through
// GORM. Postgres is used in deployments and SQLite in tests and local runs.
package gormdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
	"github.com/pageza/recipe-chatbot/backend/internal/search"
	"github.com/pageza/recipe-chatbot/backend/internal/store"
)

const insertBatchSize = 100

var columns = map[search.Field]string{
	search.FieldTitle:       "title",
	search.FieldIngredients: "ingredients",
	search.FieldCombined:    "combined",
	search.FieldTags:        "tags",
}

// jsonColumns hold encoded JSON arrays rather than plain text and are matched
// element by element.
var jsonColumns = map[string]bool{"ingredients": true, "tags": true}

// Store is a GORM-backed store.Store.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// New wraps db and creates the tables the store needs. db should be opened
// with TranslateError enabled so unique violations map to store.ErrDuplicate.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&recipeRow{}, &userRow{}, &favoriteRow{}); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &Store{db: db}, nil
}

// FindRecipes translates f into LIKE conditions. Terms are matched literally.
func (s *Store) FindRecipes(ctx context.Context, f search.Filter, limit int) ([]model.Recipe, error) {
	db := s.db.WithContext(ctx)
	q := db.Model(&recipeRow{}).Order("seq ASC")
	dialect := db.Dialector.Name()

	if f.HasTerm() {
		var conds []string
		var args []interface{}
		for _, field := range f.Fields {
			col, ok := columns[field]
			if !ok {
				continue
			}
			if jsonColumns[col] {
				conds = append(conds, anyElement(dialect, col, "LOWER(value) LIKE ? ESCAPE '\\'"))
			} else {
				conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", col))
			}
			args = append(args, "%"+escapeLike(strings.ToLower(f.Term))+"%")
		}
		if len(conds) > 0 {
			q = q.Where(strings.Join(conds, " OR "), args...)
		}
	}

	// Each wanted ingredient must equal some trimmed array element.
	for _, ing := range f.AllIngredients {
		q = q.Where(anyElement(dialect, "ingredients", "LOWER(TRIM(value)) = ?"), strings.ToLower(strings.TrimSpace(ing)))
	}

	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []recipeRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find recipes: %w", err)
	}

	recipes := make([]model.Recipe, len(rows))
	for i, row := range rows {
		recipes[i] = row.toModel()
	}
	return recipes, nil
}

func (s *Store) CreateRecipe(ctx context.Context, r *model.Recipe) error {
	row := toRecipeRow(r)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, "failed to create recipe")
	}
	return nil
}

func (s *Store) InsertRecipes(ctx context.Context, recipes []model.Recipe) (int, error) {
	if len(recipes) == 0 {
		return 0, nil
	}
	rows := make([]recipeRow, len(recipes))
	for i := range recipes {
		rows[i] = toRecipeRow(&recipes[i])
	}
	result := s.db.WithContext(ctx).CreateInBatches(rows, insertBatchSize)
	if result.Error != nil {
		return int(result.RowsAffected), translate(result.Error, "failed to insert recipes")
	}
	return int(result.RowsAffected), nil
}

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := userRow{ID: u.ID, Email: u.Email, Password: u.Password}
		if err := tx.Create(&row).Error; err != nil {
			return translate(err, "failed to create user")
		}
		for _, fav := range u.Favorites {
			if err := tx.Create(&favoriteRow{UserID: u.ID, Recipe: jsonRecipe(fav)}).Error; err != nil {
				return fmt.Errorf("failed to store favorite: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findUser(ctx, "email = ?", email)
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

func (s *Store) AppendFavorite(ctx context.Context, userID string, r model.Recipe) ([]model.Recipe, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&userRow{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if count == 0 {
		return nil, store.ErrNotFound
	}

	if err := db.Create(&favoriteRow{UserID: userID, Recipe: jsonRecipe(r)}).Error; err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return s.favorites(db, userID)
}

// Ping checks the underlying connection pool.
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
		return err
	}
	return sqlDB.Close()
}

func (s *Store) findUser(ctx context.Context, query string, arg string) (*model.User, error) {
	db := s.db.WithContext(ctx)

	var row userRow
	if err := db.Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	favs, err := s.favorites(db, row.ID)
	if err != nil {
		return nil, err
	}
	return &model.User{ID: row.ID, Email: row.Email, Password: row.Password, Favorites: favs}, nil
}

func (s *Store) favorites(db *gorm.DB, userID string) ([]model.Recipe, error) {
	var rows []favoriteRow
	if err := db.Where("user_id = ?", userID).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	favs := make([]model.Recipe, len(rows))
	for i, row := range rows {
		favs[i] = model.Recipe(row.Recipe)
	}
	return favs, nil
}

func translate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", msg, store.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// anyElement wraps cond, written against a column named value, in an EXISTS
// over the elements of the JSON array stored in col.
func anyElement(dialect, col, cond string) string {
	if dialect == "postgres" {
		return fmt.Sprintf("EXISTS (SELECT 1 FROM json_array_elements_text(recipes.%s::json) AS e(value) WHERE %s)", col, cond)
	}
	return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(recipes.%s) WHERE %s)", col, cond)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
