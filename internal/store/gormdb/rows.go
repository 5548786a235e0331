package gormdb

import (
	"time"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
)

// recipeRow is the relational shape of model.Recipe. Seq preserves insertion
// order, which is the order search results are returned in.
type recipeRow struct {
	Seq            uint     `gorm:"primaryKey;autoIncrement"`
	ID             string   `gorm:"type:varchar(36);uniqueIndex;not null"`
	Title          string   `gorm:"type:text;not null"`
	Ingredients    jsonList `gorm:"type:text;not null"`
	Directions     jsonList `gorm:"type:text;not null"`
	Cuisine        string   `gorm:"size:100"`
	Dietary        string   `gorm:"size:100"`
	URL            string   `gorm:"type:text"`
	Details        jsonMap  `gorm:"type:text"`
	NutritionFacts jsonMap  `gorm:"type:text"`
	AuthorName     string   `gorm:"size:255"`
	AuthorLink     string   `gorm:"type:text"`
	AuthorBio      string   `gorm:"type:text"`
	Tags           jsonList `gorm:"type:text;not null"`
	Combined       string   `gorm:"type:text"`
	UpdateDate     string   `gorm:"size:10"`
}

func (recipeRow) TableName() string { return "recipes" }

type userRow struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	CreatedAt time.Time
}

func (userRow) TableName() string { return "users" }

type favoriteRow struct {
	Seq       uint       `gorm:"primaryKey;autoIncrement"`
	UserID    string     `gorm:"type:varchar(36);index;not null"`
	Recipe    jsonRecipe `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (favoriteRow) TableName() string { return "user_favorites" }

func toRecipeRow(r *model.Recipe) recipeRow {
	row := recipeRow{
		ID:             r.ID,
		Title:          r.Title,
		Ingredients:    jsonList(r.Ingredients),
		Directions:     jsonList(r.Directions),
		Cuisine:        r.Cuisine,
		Dietary:        r.Dietary,
		URL:            r.URL,
		Details:        jsonMap(r.Details),
		NutritionFacts: jsonMap(r.NutritionFacts),
		Tags:           jsonList(r.Tags),
		Combined:       r.Combined,
		UpdateDate:     r.UpdateDate,
	}
	if r.AuthorInfo != nil {
		row.AuthorName = r.AuthorInfo.Name
		row.AuthorLink = r.AuthorInfo.Link
		row.AuthorBio = r.AuthorInfo.Bio
	}
	return row
}

func (row recipeRow) toModel() model.Recipe {
	r := model.Recipe{
		ID:          row.ID,
		Title:       row.Title,
		Ingredients: []string(row.Ingredients),
		Directions:  model.Steps(row.Directions),
		Cuisine:     row.Cuisine,
		Dietary:     row.Dietary,
		URL:         row.URL,
		Combined:    row.Combined,
		UpdateDate:  row.UpdateDate,
	}
	if len(row.Details) > 0 {
		r.Details = map[string]string(row.Details)
	}
	if len(row.NutritionFacts) > 0 {
		r.NutritionFacts = map[string]string(row.NutritionFacts)
	}
	if len(row.Tags) > 0 {
		r.Tags = []string(row.Tags)
	}
	if row.AuthorName != "" || row.AuthorLink != "" || row.AuthorBio != "" {
		r.AuthorInfo = &model.AuthorInfo{Name: row.AuthorName, Link: row.AuthorLink, Bio: row.AuthorBio}
	}
	return r
}
