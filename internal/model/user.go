package model

// User is a registered account. Password holds whatever the auth service
// decided to persist: the literal password in plaintext mode, a bcrypt hash otherwise.
type User struct {
	ID        string   `json:"id" bson:"_id"`
	Email     string   `json:"email" bson:"email"`
	Password  string   `json:"password" bson:"password"`
	Favorites []Recipe `json:"favorites" bson:"favorites"`
}
