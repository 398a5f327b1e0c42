package uiwait

// By is the lookup strategy a Locator carries. The core does not know
// which strategies a given driver supports; an unrecognized strategy
// surfaces as an UnsupportedStrategyErr at lookup time.
type By int8

// revive:disable:var-naming
const (
	ByID By = iota + 1
	ByName
	ByCSS
	ByXPath
	ByAccessibilityID
	ByPredicateString
	ByClassChain
)

func (b By) String() string {
	switch b {
	case ByID:
		return "id"
	case ByName:
		return "name"
	case ByCSS:
		return "css"
	case ByXPath:
		return "xpath"
	case ByAccessibilityID:
		return "accessibility id"
	case ByPredicateString:
		return "predicate string"
	case ByClassChain:
		return "class chain"
	}
	return "unknown"
}

// Locator describes how to find a UI element. It is an immutable value;
// only the active Finder knows whether the strategy resolves.
type Locator struct {
	By    By
	Value string
}

// NewLocator for a strategy/value pair
func NewLocator(by By, value string) Locator {
	return Locator{By: by, Value: value}
}

func (l Locator) String() string {
	return l.By.String() + "=" + l.Value
}
