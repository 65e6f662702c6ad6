package share

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=share.go -destination=mocks/mock.go

// Client hands a message to whatever share target the host has.
type Client interface {
	Share(ctx context.Context, message string) error
}
