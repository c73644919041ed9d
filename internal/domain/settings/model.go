package settings

import "time"

// Style describes how one taxonomy value is presented.
type Style struct {
	Label      string `json:"label"`
	Badge      string `json:"badge"`
	BadgeClass string `json:"badgeClass"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
}

// Settings is the document stored at config.json.
type Settings struct {
	AppName         string           `json:"appName"`
	Version         string           `json:"version"`
	ProjectStatuses map[string]Style `json:"projectStatuses"`
	Priorities      map[string]Style `json:"priorities"`
	BlockerTypes    map[string]Style `json:"blockerTypes"`
	Theme           string           `json:"theme"`
	LastUpdated     time.Time        `json:"lastUpdated"`
}
