package service

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/friendsmeet/internal/auth"
	"github.com/mmynk/friendsmeet/internal/middleware"
	"github.com/mmynk/friendsmeet/internal/models"
	"github.com/mmynk/friendsmeet/internal/storage"
	"github.com/mmynk/friendsmeet/internal/suggest"
	"github.com/mmynk/friendsmeet/pkg/api"
	"github.com/mmynk/friendsmeet/pkg/api/apiconnect"
)

var _ apiconnect.MeetupServiceHandler = (*MeetupService)(nil)

// MeetupService implements the Connect MeetupService.
type MeetupService struct {
	store     storage.Store
	generator *suggest.Generator
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewMeetupService creates a MeetupService backed by store. Suggestions are
// produced by generator, which should share the same store.
func NewMeetupService(store storage.Store, generator *suggest.Generator, logger *slog.Logger) *MeetupService {
	return &MeetupService{
		store:     store,
		generator: generator,
		validate:  newValidator(),
		logger:    logger,
	}
}

// newValidator reports field names as they appear in JSON.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// CreateGroup creates a group with the caller as its first member.
func (s *MeetupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	req.Msg.Name = strings.TrimSpace(req.Msg.Name)
	req.Msg.Description = strings.TrimSpace(req.Msg.Description)
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	s.logger.Info("CreateGroup request received", "name", req.Msg.Name, "user_id", userID)

	creatorName := middleware.GetName(ctx)
	if creatorName == "" {
		creatorName = middleware.GetEmail(ctx)
	}

	group := &models.Group{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		CreatedBy:   userID,
	}
	creator := &models.Member{
		Name:   creatorName,
		UserID: userID,
	}

	if err := s.store.CreateGroup(ctx, group, creator); err != nil {
		s.logger.Error("CreateGroup failed", "error", err)
		return nil, s.storeError("CreateGroup", err)
	}

	s.logger.Info("Group created", "group_id", group.ID, "creator_member_id", creator.ID)

	return connect.NewResponse(&api.CreateGroupResponse{
		Group:   toAPIGroup(group),
		Creator: toAPIMember(creator),
	}), nil
}

// GetGroup returns a group with its members and current suggestions.
func (s *MeetupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	groupID := req.Msg.GroupID
	s.logger.Info("GetGroup request received", "group_id", groupID)

	var (
		group       *models.Group
		members     []*models.Member
		suggestions []*models.Suggestion
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		group, err = s.store.GetGroup(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.store.ListMembers(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		suggestions, err = s.store.ListSuggestions(gctx, groupID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("GetGroup failed", "group_id", groupID, "error", err)
		return nil, s.storeError("GetGroup", err)
	}

	return connect.NewResponse(&api.GetGroupResponse{
		Group:       toAPIGroup(group),
		Members:     toAPIMembers(members),
		Suggestions: toAPISuggestions(suggestions),
	}), nil
}

// ListGroups returns all groups, newest first.
func (s *MeetupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		s.logger.Error("ListGroups failed", "error", err)
		return nil, s.storeError("ListGroups", err)
	}

	out := make([]*api.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, toAPIGroup(g))
	}

	s.logger.Info("ListGroups successful", "count", len(out))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// DeleteGroup deletes a group. Only its creator may do so.
func (s *MeetupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	userID := middleware.GetUserID(ctx)
	groupID := req.Msg.GroupID

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, s.storeError("DeleteGroup", err)
	}
	if group.CreatedBy != userID {
		s.logger.Warn("DeleteGroup denied", "group_id", groupID, "user_id", userID)
		return nil, toConnectError(ErrNotGroupCreator)
	}

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		s.logger.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return nil, s.storeError("DeleteGroup", err)
	}

	s.logger.Info("Group deleted", "group_id", groupID, "user_id", userID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddMember adds a named participant to a group.
func (s *MeetupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	req.Msg.Name = strings.TrimSpace(req.Msg.Name)
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, s.storeError("AddMember", err)
	}

	member := &models.Member{
		GroupID: req.Msg.GroupID,
		Name:    req.Msg.Name,
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		s.logger.Error("AddMember failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, s.storeError("AddMember", err)
	}

	s.logger.Info("Member added", "group_id", member.GroupID, "member_id", member.ID)
	return connect.NewResponse(&api.AddMemberResponse{Member: toAPIMember(member)}), nil
}

// ListMembers returns a group's members in join order.
func (s *MeetupService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, s.storeError("ListMembers", err)
	}

	members, err := s.store.ListMembers(ctx, req.Msg.GroupID)
	if err != nil {
		s.logger.Error("ListMembers failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, s.storeError("ListMembers", err)
	}

	return connect.NewResponse(&api.ListMembersResponse{Members: toAPIMembers(members)}), nil
}

// SavePreferences replaces a member's dates, times and locations. Values are
// trimmed and de-duplicated before validation.
func (s *MeetupService) SavePreferences(ctx context.Context, req *connect.Request[api.SavePreferencesRequest]) (*connect.Response[api.SavePreferencesResponse], error) {
	msg := req.Msg
	msg.Dates = cleanList(msg.Dates)
	msg.Times = cleanList(msg.Times)
	msg.Locations = cleanList(msg.Locations)
	if err := s.validate.Struct(msg); err != nil {
		return nil, validationError(err)
	}

	s.logger.Info("SavePreferences request received",
		"group_id", msg.GroupID,
		"member_id", msg.MemberID,
		"dates", len(msg.Dates),
		"times", len(msg.Times),
		"locations", len(msg.Locations),
	)

	member, err := s.store.GetMember(ctx, msg.GroupID, msg.MemberID)
	if err != nil {
		return nil, s.storeError("SavePreferences", err)
	}

	pref := &models.Preference{
		GroupID:    msg.GroupID,
		MemberID:   member.ID,
		MemberName: member.Name,
		Dates:      msg.Dates,
		Times:      msg.Times,
		Locations:  msg.Locations,
	}
	if err := s.store.UpsertPreference(ctx, pref); err != nil {
		s.logger.Error("SavePreferences failed", "group_id", msg.GroupID, "member_id", msg.MemberID, "error", err)
		return nil, s.storeError("SavePreferences", err)
	}

	return connect.NewResponse(&api.SavePreferencesResponse{Preference: toAPIPreference(pref)}), nil
}

// GetPreferences returns one member's preferences, or none if not saved yet.
func (s *MeetupService) GetPreferences(ctx context.Context, req *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.GetPreferencesResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.store.GetMember(ctx, req.Msg.GroupID, req.Msg.MemberID); err != nil {
		return nil, s.storeError("GetPreferences", err)
	}

	pref, err := s.store.GetPreference(ctx, req.Msg.GroupID, req.Msg.MemberID)
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewResponse(&api.GetPreferencesResponse{}), nil
	}
	if err != nil {
		return nil, s.storeError("GetPreferences", err)
	}

	return connect.NewResponse(&api.GetPreferencesResponse{Preference: toAPIPreference(pref)}), nil
}

// ListPreferences returns every member's preferences for a group.
func (s *MeetupService) ListPreferences(ctx context.Context, req *connect.Request[api.ListPreferencesRequest]) (*connect.Response[api.ListPreferencesResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, s.storeError("ListPreferences", err)
	}

	prefs, err := s.store.ListPreferences(ctx, req.Msg.GroupID)
	if err != nil {
		s.logger.Error("ListPreferences failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, s.storeError("ListPreferences", err)
	}

	out := make([]*api.Preference, 0, len(prefs))
	for _, p := range prefs {
		out = append(out, toAPIPreference(p))
	}
	return connect.NewResponse(&api.ListPreferencesResponse{Preferences: out}), nil
}

// GenerateSuggestions recomputes a group's suggestions from its members'
// preferences and returns the new set in rank order.
func (s *MeetupService) GenerateSuggestions(ctx context.Context, req *connect.Request[api.GenerateSuggestionsRequest]) (*connect.Response[api.GenerateSuggestionsResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	groupID := req.Msg.GroupID
	s.logger.Info("GenerateSuggestions request received", "group_id", groupID)

	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, s.storeError("GenerateSuggestions", err)
	}

	suggestions, err := s.generator.Generate(ctx, groupID)
	if err != nil {
		if suggest.IsPreconditionError(err) {
			s.logger.Info("GenerateSuggestions skipped", "group_id", groupID, "reason", err)
		} else {
			s.logger.Error("GenerateSuggestions failed", "group_id", groupID, "error", err)
		}
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GenerateSuggestionsResponse{
		Suggestions: toAPISuggestions(suggestions),
	}), nil
}

// ListSuggestions returns the stored suggestions, highest score first.
func (s *MeetupService) ListSuggestions(ctx context.Context, req *connect.Request[api.ListSuggestionsRequest]) (*connect.Response[api.ListSuggestionsResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, s.storeError("ListSuggestions", err)
	}

	suggestions, err := s.store.ListSuggestions(ctx, req.Msg.GroupID)
	if err != nil {
		s.logger.Error("ListSuggestions failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, s.storeError("ListSuggestions", err)
	}

	return connect.NewResponse(&api.ListSuggestionsResponse{
		Suggestions: toAPISuggestions(suggestions),
	}), nil
}

// storeError converts a store failure for the response. Outages are logged
// here because the response only carries a generic message.
func (s *MeetupService) storeError(op string, err error) *connect.Error {
	err = fromStore(err)
	if errors.Is(err, storage.ErrUnavailable) {
		s.logger.Error("Store failure", "op", op, "error", err)
	}
	return toConnectError(err)
}
