package domain

// Follow represents a self-referential many-to-many relationship between two
// users. The FollowerID is the user that follows, the FollowingID is the user
// being followed. The composite primary key makes a (follower, following)
// pair unique at the store level, so concurrent duplicate attempts have
// exactly one winner.
type Follow struct {
	FollowerID  int  `json:"follower_id" gorm:"primaryKey"`
	FollowingID int  `json:"following_id" gorm:"primaryKey"`
	Follower    User `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following   User `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}

// FollowService is a set of methods to manipulate and work with the Follow model.
type FollowService interface {
	Create(follow *Follow) error
	// Delete is idempotent: removing an absent follow is a no-op success.
	Delete(follow *Follow) error
}
