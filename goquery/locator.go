package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Locator defaults. Containers are capped to bound downstream extraction
// work on pages whose navigation chrome carries many detail links.
const (
	DefaultMaxContainers    = 50
	DefaultMaxAncestors     = 5
	DefaultMinContainerText = 100
)

// Locator finds the minimal set of DOM subtrees that each plausibly
// enclose one record. Record containers are never directly identifiable
// by a stable selector, so the locator anchors on detail links and widens
// upward: the smallest enclosing block with enough text to be a real
// record.
type Locator struct {
	// MaxContainers bounds the number of containers returned.
	// Defaults to DefaultMaxContainers when zero.
	MaxContainers int

	// MaxAncestors bounds the upward walk from each detail anchor.
	// Defaults to DefaultMaxAncestors when zero.
	MaxAncestors int

	// MinContainerText is the flattened text length an ancestor must
	// exceed to keep the walk ascending.
	// Defaults to DefaultMinContainerText when zero.
	MinContainerText int
}

// NewLocator returns a Locator with default bounds.
func NewLocator() *Locator {
	return &Locator{
		MaxContainers:    DefaultMaxContainers,
		MaxAncestors:     DefaultMaxAncestors,
		MinContainerText: DefaultMinContainerText,
	}
}

// Locate returns candidate record containers in document order, capped at
// MaxContainers. When multiple anchors widen to the same ancestor, the
// container appears once.
func (l *Locator) Locate(doc *goquery.Document) []*goquery.Selection {
	maxContainers := l.MaxContainers
	if maxContainers == 0 {
		maxContainers = DefaultMaxContainers
	}

	seen := make(map[*html.Node]bool)
	var containers []*goquery.Selection

	doc.Find(DetailLinkSelector).Each(func(_ int, anchor *goquery.Selection) {
		container := l.widen(anchor)
		if len(container.Nodes) == 0 {
			return
		}
		node := container.Nodes[0]
		if seen[node] {
			return
		}
		seen[node] = true
		containers = append(containers, container)
	})

	if len(containers) > maxContainers {
		containers = containers[:maxContainers]
	}
	return containers
}

// widen ascends from the anchor while each ancestor's flattened text
// exceeds the threshold, up to MaxAncestors levels. It returns the last
// ancestor that passed, or the anchor itself if none did.
func (l *Locator) widen(anchor *goquery.Selection) *goquery.Selection {
	maxAncestors := l.MaxAncestors
	if maxAncestors == 0 {
		maxAncestors = DefaultMaxAncestors
	}
	minText := l.MinContainerText
	if minText == 0 {
		minText = DefaultMinContainerText
	}

	container := anchor
	for i := 0; i < maxAncestors; i++ {
		parent := container.Parent()
		if parent.Length() == 0 {
			break
		}
		if len(parent.Text()) <= minText {
			break
		}
		container = parent
	}
	return container
}
