package compose

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// snapshot is a plain, JSON-friendly projection of a composition subtree,
// used only for debug/introspection output — never for persistence or
// round-tripping, unlike gotio's schema-tagged MarshalJSON/UnmarshalJSON
// pair. It plays the same role decode_sonic.go's sonic.Unmarshal call
// plays there: a fast, allocation-light JSON path alongside the stdlib one
// used for genuine (un)marshaling (here, Clip's MediaReference round-trip
// need, via encoding/json, in clip_json.go).
type snapshot struct {
	Kind              string     `json:"kind"`
	Name              string     `json:"name"`
	PresentationStart float64    `json:"presentation_start"`
	PresentationEnd   float64    `json:"presentation_end"`
	Children          []snapshot `json:"children,omitempty"`
	MediaReference    string     `json:"media_reference,omitempty"`
}

func kindOf(n Node) string {
	switch n.(type) {
	case *Timeline:
		return "Timeline"
	case *Stack:
		return "Stack"
	case *Track:
		return "Track"
	case *Clip:
		return "Clip"
	case *Gap:
		return "Gap"
	case *Warp:
		return "Warp"
	default:
		return fmt.Sprintf("%T", n)
	}
}

func snapshotOf(n Node) snapshot {
	bounds := n.PresentationBounds()
	s := snapshot{
		Kind:              kindOf(n),
		Name:              n.Name(),
		PresentationStart: float64(bounds.Start),
		PresentationEnd:   float64(bounds.End),
	}
	switch v := n.(type) {
	case *Clip:
		s.MediaReference = v.MediaReference()
	case *Track:
		for _, c := range v.Children() {
			s.Children = append(s.Children, snapshotOf(c))
		}
	case *Stack:
		for _, c := range v.Children() {
			s.Children = append(s.Children, snapshotOf(c))
		}
	case *Warp:
		s.Children = []snapshot{snapshotOf(v.Child())}
	case *Timeline:
		s.Children = []snapshot{snapshotOf(v.Tracks())}
	}
	return s
}

// DebugJSON renders a composition subtree as indented JSON for
// inspection/logging, via sonic for the same fast-path-encoding role
// bytedance/sonic plays in gotio's decode_sonic.go.
func DebugJSON(n Node) ([]byte, error) {
	return sonic.MarshalIndent(snapshotOf(n), "", "  ")
}
