package domain

type Profile struct {
	User   Identity
	Videos []FeedItem
}
