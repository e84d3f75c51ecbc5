package types

import "fmt"

// AuthTab is the active form on the auth page
type AuthTab string

const (
	AuthTabLogin    AuthTab = "login"
	AuthTabRegister AuthTab = "register"
)

// AllAuthTabs returns all valid tabs in display order
func AllAuthTabs() []AuthTab {
	return []AuthTab{
		AuthTabLogin,
		AuthTabRegister,
	}
}

// IsValid checks if the tab is valid
func (t AuthTab) IsValid() bool {
	switch t {
	case AuthTabLogin,
		AuthTabRegister:
		return true
	default:
		return false
	}
}

// String returns the string representation of the tab
func (t AuthTab) String() string {
	return string(t)
}

// ParseAuthTab parses a string into an AuthTab
func ParseAuthTab(s string) (AuthTab, error) {
	tab := AuthTab(s)
	if !tab.IsValid() {
		return "", fmt.Errorf("invalid auth tab: %s", s)
	}
	return tab, nil
}
