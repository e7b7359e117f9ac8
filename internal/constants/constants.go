package constants

// Agent constants
const (
	// DefaultAgentName is the name the agent introduces itself with
	DefaultAgentName = "MovieGraph"
)

// Agent execution constants
const (
	// MaxToolTurns is the maximum number of think/act cycles for a single
	// question. This prevents infinite loops when tool results keep
	// triggering additional tool calls.
	MaxToolTurns = 5

	// MaxToolResultChars caps the serialized tool output fed back to the
	// model on the next turn. Dense hub nodes can produce very large
	// neighbor lists.
	MaxToolResultChars = 8000
)
