package service

import (
	"strings"

	"github.com/mmynk/friendsmeet/internal/models"
	"github.com/mmynk/friendsmeet/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	return &api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func toAPIMember(m *models.Member) *api.Member {
	return &api.Member{
		ID:       m.ID,
		GroupID:  m.GroupID,
		Name:     m.Name,
		UserID:   m.UserID,
		JoinedAt: m.JoinedAt,
	}
}

func toAPIPreference(p *models.Preference) *api.Preference {
	return &api.Preference{
		ID:         p.ID,
		GroupID:    p.GroupID,
		MemberID:   p.MemberID,
		MemberName: p.MemberName,
		Dates:      nonNil(p.Dates),
		Times:      nonNil(p.Times),
		Locations:  nonNil(p.Locations),
		UpdatedAt:  p.UpdatedAt,
	}
}

func toAPISuggestion(s *models.Suggestion) *api.Suggestion {
	return &api.Suggestion{
		ID:        s.ID,
		GroupID:   s.GroupID,
		Date:      s.Date,
		Time:      s.Time,
		Location:  s.Location,
		Score:     s.Score,
		Rank:      s.Rank,
		CreatedAt: s.CreatedAt,
	}
}

func toAPIMembers(members []*models.Member) []*api.Member {
	out := make([]*api.Member, 0, len(members))
	for _, m := range members {
		out = append(out, toAPIMember(m))
	}
	return out
}

func toAPISuggestions(suggestions []*models.Suggestion) []*api.Suggestion {
	out := make([]*api.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, toAPISuggestion(s))
	}
	return out
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// cleanList trims every value, drops blanks and keeps only the first
// occurrence of each value.
func cleanList(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
