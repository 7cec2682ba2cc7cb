package offerpdf

// RenderMode selects the confidentiality level of the generated document
type RenderMode string

const (
	// ModeClient produces the client-facing document: purchase prices and
	// margins are removed from the working model before any layout happens.
	ModeClient RenderMode = "client"

	// ModeInternal produces the internal document including purchase and
	// margin figures. Callers must have verified the requester's role.
	ModeInternal RenderMode = "internal"
)

// ParseMode parses a caller-supplied mode selector. The empty string maps to
// ModeClient, the safe default.
func ParseMode(s string) (RenderMode, error) {
	switch s {
	case "", string(ModeClient):
		return ModeClient, nil
	case string(ModeInternal):
		return ModeInternal, nil
	default:
		return "", NewError(KindInvalidMode, "unknown render mode: "+s, nil)
	}
}
