package domain

// User represents an account holder. Users are created out of band (seeding),
// there is no registration endpoint. The APIKey is the bearer credential carried
// in the api-key request header, compared exact-match against the stored value.
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name" gorm:"size:100;not null"`
	APIKey string `json:"-" gorm:"size:100;uniqueIndex;not null"`

	Tweets []Tweet `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// UserRef is the short id+name rendering of a user, used inside follower,
// following and liker lists.
type UserRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Profile is a user together with its fully materialized followers and
// following lists. Both lists are fetched by explicit queries when the
// profile is built, never lazily.
type Profile struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Followers []UserRef `json:"followers"`
	Following []UserRef `json:"following"`
}

// UserService is a set of methods to manipulate and work with the User model.
type UserService interface {
	ByAPIKey(key string) (*User, error)
	ByID(id int) (*Profile, error)
	Create(user *User) error
}
