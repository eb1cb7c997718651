package common

// Maximum lengths of various user-submitted fields
const (
	MaxLenUserID   = 30
	MaxLenPassword = 100
	MaxLenStatus   = 100
	MaxLenAbout    = 1000
	MaxLenContact  = 100
)

// Username substituted for authors whose account no longer exists
const (
	DeletedUserName        = "Deleted User"
	DeletedUserDescription = "This account was deleted."
)
