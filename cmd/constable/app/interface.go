package app

import (
	"github.com/axicon-labs/constable/cmd/application"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
