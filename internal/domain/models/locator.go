package models

import "strings"

type Strategy string

const (
	StrategyID    Strategy = "id"
	StrategyClass Strategy = "class"
	StrategyCSS   Strategy = "css"
)

type Locator struct {
	Strategy Strategy
	Value    string
}

func ByID(id string) Locator {
	return Locator{Strategy: StrategyID, Value: id}
}

func ByClass(class string) Locator {
	return Locator{Strategy: StrategyClass, Value: class}
}

func ByCSS(selector string) Locator {
	return Locator{Strategy: StrategyCSS, Value: selector}
}

// Selector renders the locator as a CSS selector.
func (l Locator) Selector() string {
	value := strings.TrimSpace(l.Value)
	switch l.Strategy {
	case StrategyID:
		return "#" + strings.TrimPrefix(value, "#")
	case StrategyClass:
		classes := strings.Fields(strings.ReplaceAll(value, ".", " "))
		if len(classes) == 0 {
			return ""
		}
		return "." + strings.Join(classes, ".")
	default:
		return value
	}
}

func (l Locator) String() string {
	return string(l.Strategy) + "=" + l.Value
}
