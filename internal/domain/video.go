package domain

// VideoStats holds the public interaction counters of a single video.
// Counters missing from an API response unmarshal to zero.
type VideoStats struct {
	Bvid      string `json:"bvid"`
	Views     int64  `json:"view"`
	Likes     int64  `json:"like"`
	Coins     int64  `json:"coin"`
	Favorites int64  `json:"favorite"`
	Comments  int64  `json:"reply"`
	Shares    int64  `json:"share"`
	Danmaku   int64  `json:"danmaku"`
}

type Owner struct {
	Mid  int64  `json:"mid"`
	Name string `json:"name"`
}

// VideoDetail is a fully resolved video record: descriptive metadata plus
// its statistics snapshot.
type VideoDetail struct {
	Bvid     string     `json:"bvid"`
	Title    string     `json:"title"`
	Owner    Owner      `json:"owner"`
	PubDate  int64      `json:"pubdate"`
	Duration int        `json:"duration"`
	Stats    VideoStats `json:"stat"`
}

// VideoRef is a lightweight entry from a creator's upload list.
type VideoRef struct {
	Bvid    string `json:"bvid"`
	Title   string `json:"title"`
	Created int64  `json:"created"`
}
