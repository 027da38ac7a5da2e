package models

// StatusCount is one row of the projects-by-status grouping.
type StatusCount struct {
	Status ProjectStatus `json:"status" db:"status"`
	Count  int           `json:"count" db:"count"`
}

type Dashboard struct {
	TotalClients      int           `json:"totalClients"`
	TotalProjects     int           `json:"totalProjects"`
	UpcomingReminders []Reminder    `json:"upcomingReminders"`
	ProjectsByStatus  []StatusCount `json:"projectsByStatus"`
}
