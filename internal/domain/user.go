package domain

// UserInfo holds a creator's public profile.
type UserInfo struct {
	Mid       int64  `json:"mid"`
	Name      string `json:"name"`
	Sign      string `json:"sign"`
	Level     int    `json:"level"`
	Follower  int64  `json:"follower"`
	Following int64  `json:"following"`
}
