package domain

import "time"

// GuildConfig holds per-guild channel and role bindings. The guild is the
// tenancy boundary for all data in the service.
type GuildConfig struct {
	GuildID                string
	StaffChannelID         string
	CaseCategoryID         string
	AnnouncementsChannelID string
	ClientRoleID           string
	StaffRoleIDs           map[StaffRole]string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
