package gormdb

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pageza/recipe-chatbot/backend/internal/model"
)

// jsonList stores a string slice as a JSON array in a text column.
type jsonList []string

// Value implements the driver.Valuer interface
func (l jsonList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return encodeJSON([]string(l))
}

// Scan implements the sql.Scanner interface
func (l *jsonList) Scan(value interface{}) error {
	if value == nil {
		*l = jsonList{}
		return nil
	}
	raw, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, l)
}

// jsonMap stores a string map as a JSON object in a text column.
type jsonMap map[string]string

// Value implements the driver.Valuer interface
func (m jsonMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return encodeJSON(map[string]string(m))
}

// Scan implements the sql.Scanner interface
func (m *jsonMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	raw, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, m)
}

// jsonRecipe stores a full recipe snapshot.
type jsonRecipe model.Recipe

// Value implements the driver.Valuer interface
func (r jsonRecipe) Value() (driver.Value, error) {
	return encodeJSON(model.Recipe(r))
}

// Scan implements the sql.Scanner interface
func (r *jsonRecipe) Scan(value interface{}) error {
	raw, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, (*model.Recipe)(r))
}

// encodeJSON leaves <, > and & unescaped so LIKE patterns can match the
// stored text directly.
func encodeJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func scanBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", value)
	}
}
