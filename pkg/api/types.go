// Package api defines the request and response messages of the Friends Meet
// RPC services. Messages travel as JSON; field names follow the camelCase
// convention of protobuf JSON.
package api

// User is a registered account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

// Group is a circle of friends planning a meetup.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"createdBy"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// Member is one participant of a group.
type Member struct {
	ID       string `json:"id"`
	GroupID  string `json:"groupId"`
	Name     string `json:"name"`
	UserID   string `json:"userId,omitempty"`
	JoinedAt int64  `json:"joinedAt"`
}

// Preference is one member's acceptable dates, times and locations.
type Preference struct {
	ID         string   `json:"id"`
	GroupID    string   `json:"groupId"`
	MemberID   string   `json:"memberId"`
	MemberName string   `json:"memberName"`
	Dates      []string `json:"dates"`
	Times      []string `json:"times"`
	Locations  []string `json:"locations"`
	UpdatedAt  int64    `json:"updatedAt"`
}

// Suggestion is one ranked meetup candidate.
type Suggestion struct {
	ID        string `json:"id"`
	GroupID   string `json:"groupId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	Score     int    `json:"score"`
	Rank      int    `json:"rank"`
	CreatedAt int64  `json:"createdAt"`
}

// MeetupService messages

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

type CreateGroupResponse struct {
	Group   *Group  `json:"group"`
	Creator *Member `json:"creator"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type GetGroupResponse struct {
	Group       *Group        `json:"group"`
	Members     []*Member     `json:"members"`
	Suggestions []*Suggestion `json:"suggestions"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type DeleteGroupResponse struct{}

type AddMemberRequest struct {
	GroupID string `json:"groupId" validate:"required"`
	Name    string `json:"name" validate:"required,max=100"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type ListMembersRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

// SavePreferencesRequest replaces all three lists of the member's record.
// Dates are YYYY-MM-DD and times are 24h HH:MM.
type SavePreferencesRequest struct {
	GroupID   string   `json:"groupId" validate:"required"`
	MemberID  string   `json:"memberId" validate:"required"`
	Dates     []string `json:"dates" validate:"max=50,dive,datetime=2006-01-02"`
	Times     []string `json:"times" validate:"max=50,dive,datetime=15:04"`
	Locations []string `json:"locations" validate:"max=50,dive,required,max=200"`
}

type SavePreferencesResponse struct {
	Preference *Preference `json:"preference"`
}

type GetPreferencesRequest struct {
	GroupID  string `json:"groupId" validate:"required"`
	MemberID string `json:"memberId" validate:"required"`
}

// GetPreferencesResponse carries a nil Preference when the member has not
// saved any yet.
type GetPreferencesResponse struct {
	Preference *Preference `json:"preference,omitempty"`
}

type ListPreferencesRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type ListPreferencesResponse struct {
	Preferences []*Preference `json:"preferences"`
}

type GenerateSuggestionsRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type GenerateSuggestionsResponse struct {
	Suggestions []*Suggestion `json:"suggestions"`
}

type ListSuggestionsRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type ListSuggestionsResponse struct {
	Suggestions []*Suggestion `json:"suggestions"`
}

// AuthService messages

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"required,max=100"`
	Password    string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
