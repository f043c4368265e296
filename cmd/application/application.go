// Package application provides the application interface for constable commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Design Principles:
//   - Accept interfaces, return structs (Go proverb)
//   - Define interfaces where they're used, not where they're implemented
//   - Keep interfaces small and focused
//
// Usage in Commands:
//
//	import (
//	    "context"
//	    "github.com/axicon-labs/constable/cmd/application"
//	)
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            ctx := cmd.Context() // context.Context from cobra
//	            engine, err := app.Engine()
//	            if err != nil {
//	                return err
//	            }
//	            // ... use engine
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    EngineFunc: func(opts ...constable.Option) (constable.Engine, error) {
//	        return testEngine, nil
//	    },
//	    LoggerFunc: func() *zerolog.Logger {
//	        logger := zerolog.Nop()
//	        return &logger
//	    },
//	}
//	cmd := NewCommand(mock)
//	// ... test command behavior
package application

import (
	"github.com/rs/zerolog"

	"github.com/axicon-labs/constable"
	"github.com/axicon-labs/constable/pkg/registry"
)

// Application provides the application interface that commands need.
// The App struct from cmd/constable/app automatically implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Engine returns the reconciliation engine with optional configuration.
	// When called without options, returns the default cached instance
	// (lazy-initialized, thread-safe). When called with options, creates a
	// new instance layered over the configured defaults (no caching).
	//
	// Examples:
	//   eng, err := app.Engine()                    // default instance (cached)
	//   eng, err := app.Engine(opt1, opt2)          // custom instance (new)
	Engine(opts ...constable.Option) (constable.Engine, error)

	// Registry returns the loaded registry index from the default engine.
	// This is a convenience method for commands that only inspect the
	// registry and never touch documents.
	Registry() (*registry.Index, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	// Commands that support different output formats should use this.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
