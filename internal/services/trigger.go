package services

import (
	"fmt"
	"math"
)

// Viewport is what a load trigger gets to look at.
type Viewport struct {
	// DistanceFromBottom in pixels; NoScroll when the caller has no scroll
	// position to report.
	DistanceFromBottom int
	// Remaining jobs still in the list.
	Remaining int
}

const NoScroll = math.MaxInt

// LoadTrigger decides whether a viewport change should load the next page.
type LoadTrigger interface {
	ShouldLoad(v Viewport) bool
	Name() string
}

// ScrollTrigger loads when the user scrolls within Threshold of the bottom.
type ScrollTrigger struct {
	Threshold int
}

func (t ScrollTrigger) ShouldLoad(v Viewport) bool {
	return v.DistanceFromBottom != NoScroll && v.DistanceFromBottom <= t.Threshold
}

func (t ScrollTrigger) Name() string { return "scroll" }

// SwipeStackTrigger ignores scrolling and loads once the card stack is empty.
type SwipeStackTrigger struct{}

func (SwipeStackTrigger) ShouldLoad(v Viewport) bool { return v.Remaining == 0 }

func (SwipeStackTrigger) Name() string { return "swipe" }

// NewLoadTrigger resolves a trigger by its configured name.
func NewLoadTrigger(name string, scrollThreshold int) (LoadTrigger, error) {
	switch name {
	case "scroll":
		return ScrollTrigger{Threshold: scrollThreshold}, nil
	case "swipe", "":
		return SwipeStackTrigger{}, nil
	default:
		return nil, fmt.Errorf("unknown load trigger %q", name)
	}
}
