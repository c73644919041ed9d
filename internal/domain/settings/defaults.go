package settings

import (
	"time"

	"github.com/ganot/dx-portfolio/internal/domain/project"
)

const (
	DefaultAppName = "Portafolio DX"
	DefaultVersion = "1.0.0"
	DefaultTheme   = "system"
)

// Default returns the configuration written on first run.
func Default(now time.Time) Settings {
	return Settings{
		AppName: DefaultAppName,
		Version: DefaultVersion,
		ProjectStatuses: map[string]Style{
			string(project.StatusDiscovery): {Label: "Discovery", Badge: "Discovery", BadgeClass: "badge-discovery", Color: "#9D00FF", Icon: "🔍"},
			string(project.StatusDecision):  {Label: "Decision", Badge: "Decision", BadgeClass: "badge-decision", Color: "#00D9FF", Icon: "✓"},
			string(project.StatusDevelop):   {Label: "Develop", Badge: "Develop", BadgeClass: "badge-develop", Color: "#FF6B00", Icon: "⚙"},
			string(project.StatusPilot):     {Label: "Pilot", Badge: "Pilot", BadgeClass: "badge-pilot", Color: "#FFD600", Icon: "🚀"},
			string(project.StatusComplete):  {Label: "Complete", Badge: "Complete", BadgeClass: "badge-complete", Color: "#00FF85", Icon: "🏁"},
		},
		Priorities: map[string]Style{
			string(project.PriorityHigh):   {Label: "Alta", Badge: "Alta Prioridad", BadgeClass: "badge-priority-high", Color: "#FF0000", Icon: "▲"},
			string(project.PriorityMedium): {Label: "Media", Badge: "Prioridad Media", BadgeClass: "badge-priority-medium", Color: "#FFA500", Icon: "■"},
			string(project.PriorityLow):    {Label: "Baja", Badge: "Baja Prioridad", BadgeClass: "badge-priority-low", Color: "#00FF00", Icon: "▼"},
		},
		BlockerTypes: map[string]Style{
			"technical":    {Label: "Técnico", Badge: "Bloqueo Técnico", BadgeClass: "badge-blocker-technical", Color: "#FF6B00", Icon: "⚙️"},
			"resources":    {Label: "Recursos", Badge: "Falta de Recursos", BadgeClass: "badge-blocker-resources", Color: "#00D9FF", Icon: "👥"},
			"dependencies": {Label: "Dependencias", Badge: "Dependencias", BadgeClass: "badge-blocker-dependencies", Color: "#9D00FF", Icon: "🔗"},
			"approval":     {Label: "Aprobación", Badge: "Pendiente de Aprobación", BadgeClass: "badge-blocker-approval", Color: "#FFD600", Icon: "✋"},
		},
		Theme:       DefaultTheme,
		LastUpdated: now,
	}
}
