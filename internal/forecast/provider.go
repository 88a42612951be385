package forecast

import "context"

// RawResponse is a decoded provider payload. Each provider shape has its own
// implementation and knows how to flatten itself into a Table.
type RawResponse interface {
	Provider() ProviderID
	Normalize() (Table, error)
}

// Provider abstracts an upstream forecast source (NASA POWER, Meteomatics).
type Provider interface {
	Name() ProviderID
	Fetch(ctx context.Context, q Query) (RawResponse, error)
}
