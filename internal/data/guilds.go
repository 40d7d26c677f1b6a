// Package data holds the community guild roster. Update when guilds join
// or retire; everything else about a season is resolved from the live APIs.
package data

import "raid-progress/internal/domain"

// Community is the Warcraft Logs community team. Not an actual guild, so
// it can't be resolved through raider.io; its progress is reconciled from
// combat logs alone.
var Community = domain.GuildInfo{
	RID:         domain.SyntheticGuildRID,
	Name:        "CWG",
	DisplayName: "CWG Community",
	Slug:        "cwg",
	Realm:       "Eldre'Thalas",
	Region:      "us",
	Faction:     "alliance",
}

// Guilds is the raiding roster tracked by the site.
var Guilds = []domain.GuildInfo{
	Community,
	{RID: 282491, Name: "By His Stripes", Slug: "by-his-stripes", Realm: "Thunderhorn", Region: "us", Faction: "alliance"},
	{RID: 291784, Name: "Faith As A Mustard Seed", Slug: "faith-as-a-mustard-seed", Realm: "Illidan", Region: "us", Faction: "horde"},
	{RID: 300312, Name: "Is Saved By Grace", Slug: "is-saved-by-grace", Realm: "Medivh", Region: "us", Faction: "alliance"},
	{RID: 268930, Name: "IXOYE", Slug: "ixoye", Realm: "Medivh", Region: "us", Faction: "alliance"},
	{RID: 274551, Name: "Narrow Path", Slug: "narrow-path", Realm: "Thunderhorn", Region: "us", Faction: "alliance"},
	{RID: 310982, Name: "Renewed Hope", Slug: "renewed-hope", Realm: "Alexstrasza", Region: "us", Faction: "alliance"},
	{RID: 287556, Name: "Salvations Dawn", Slug: "salvations-dawn", Realm: "Arathor", Region: "us", Faction: "horde"},
	{RID: 295407, Name: "Salt and Light", Slug: "salt-and-light", Realm: "Arathor", Region: "us", Faction: "alliance"},
	{RID: 302218, Name: "The Fish and Bread Trick", Slug: "the-fish-and-bread-trick", Realm: "Dalaran", Region: "us", Faction: "horde"},
}
