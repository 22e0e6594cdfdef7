package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/friendsmeet/pkg/api"
)

// MeetupServiceName is the fully-qualified name of the MeetupService service.
const MeetupServiceName = "friendsmeet.v1.MeetupService"

// Procedure names of the MeetupService RPCs, as HTTP paths.
const (
	MeetupServiceCreateGroupProcedure         = "/friendsmeet.v1.MeetupService/CreateGroup"
	MeetupServiceGetGroupProcedure            = "/friendsmeet.v1.MeetupService/GetGroup"
	MeetupServiceListGroupsProcedure          = "/friendsmeet.v1.MeetupService/ListGroups"
	MeetupServiceDeleteGroupProcedure         = "/friendsmeet.v1.MeetupService/DeleteGroup"
	MeetupServiceAddMemberProcedure           = "/friendsmeet.v1.MeetupService/AddMember"
	MeetupServiceListMembersProcedure         = "/friendsmeet.v1.MeetupService/ListMembers"
	MeetupServiceSavePreferencesProcedure     = "/friendsmeet.v1.MeetupService/SavePreferences"
	MeetupServiceGetPreferencesProcedure      = "/friendsmeet.v1.MeetupService/GetPreferences"
	MeetupServiceListPreferencesProcedure     = "/friendsmeet.v1.MeetupService/ListPreferences"
	MeetupServiceGenerateSuggestionsProcedure = "/friendsmeet.v1.MeetupService/GenerateSuggestions"
	MeetupServiceListSuggestionsProcedure     = "/friendsmeet.v1.MeetupService/ListSuggestions"
)

// MeetupServiceClient is a client for the friendsmeet.v1.MeetupService service.
type MeetupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	SavePreferences(context.Context, *connect.Request[api.SavePreferencesRequest]) (*connect.Response[api.SavePreferencesResponse], error)
	GetPreferences(context.Context, *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.GetPreferencesResponse], error)
	ListPreferences(context.Context, *connect.Request[api.ListPreferencesRequest]) (*connect.Response[api.ListPreferencesResponse], error)
	GenerateSuggestions(context.Context, *connect.Request[api.GenerateSuggestionsRequest]) (*connect.Response[api.GenerateSuggestionsResponse], error)
	ListSuggestions(context.Context, *connect.Request[api.ListSuggestionsRequest]) (*connect.Response[api.ListSuggestionsResponse], error)
}

// NewMeetupServiceClient constructs a client for the friendsmeet.v1.MeetupService
// service. The JSON codec is always used; opts may add interceptors.
func NewMeetupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) MeetupServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &meetupServiceClient{
		createGroup:         connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+MeetupServiceCreateGroupProcedure, opts...),
		getGroup:            connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+MeetupServiceGetGroupProcedure, opts...),
		listGroups:          connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+MeetupServiceListGroupsProcedure, opts...),
		deleteGroup:         connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+MeetupServiceDeleteGroupProcedure, opts...),
		addMember:           connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+MeetupServiceAddMemberProcedure, opts...),
		listMembers:         connect.NewClient[api.ListMembersRequest, api.ListMembersResponse](httpClient, baseURL+MeetupServiceListMembersProcedure, opts...),
		savePreferences:     connect.NewClient[api.SavePreferencesRequest, api.SavePreferencesResponse](httpClient, baseURL+MeetupServiceSavePreferencesProcedure, opts...),
		getPreferences:      connect.NewClient[api.GetPreferencesRequest, api.GetPreferencesResponse](httpClient, baseURL+MeetupServiceGetPreferencesProcedure, opts...),
		listPreferences:     connect.NewClient[api.ListPreferencesRequest, api.ListPreferencesResponse](httpClient, baseURL+MeetupServiceListPreferencesProcedure, opts...),
		generateSuggestions: connect.NewClient[api.GenerateSuggestionsRequest, api.GenerateSuggestionsResponse](httpClient, baseURL+MeetupServiceGenerateSuggestionsProcedure, opts...),
		listSuggestions:     connect.NewClient[api.ListSuggestionsRequest, api.ListSuggestionsResponse](httpClient, baseURL+MeetupServiceListSuggestionsProcedure, opts...),
	}
}

type meetupServiceClient struct {
	createGroup         *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup            *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups          *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	deleteGroup         *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	addMember           *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	listMembers         *connect.Client[api.ListMembersRequest, api.ListMembersResponse]
	savePreferences     *connect.Client[api.SavePreferencesRequest, api.SavePreferencesResponse]
	getPreferences      *connect.Client[api.GetPreferencesRequest, api.GetPreferencesResponse]
	listPreferences     *connect.Client[api.ListPreferencesRequest, api.ListPreferencesResponse]
	generateSuggestions *connect.Client[api.GenerateSuggestionsRequest, api.GenerateSuggestionsResponse]
	listSuggestions     *connect.Client[api.ListSuggestionsRequest, api.ListSuggestionsResponse]
}

func (c *meetupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *meetupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *meetupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *meetupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *meetupServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *meetupServiceClient) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *meetupServiceClient) SavePreferences(ctx context.Context, req *connect.Request[api.SavePreferencesRequest]) (*connect.Response[api.SavePreferencesResponse], error) {
	return c.savePreferences.CallUnary(ctx, req)
}

func (c *meetupServiceClient) GetPreferences(ctx context.Context, req *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.GetPreferencesResponse], error) {
	return c.getPreferences.CallUnary(ctx, req)
}

func (c *meetupServiceClient) ListPreferences(ctx context.Context, req *connect.Request[api.ListPreferencesRequest]) (*connect.Response[api.ListPreferencesResponse], error) {
	return c.listPreferences.CallUnary(ctx, req)
}

func (c *meetupServiceClient) GenerateSuggestions(ctx context.Context, req *connect.Request[api.GenerateSuggestionsRequest]) (*connect.Response[api.GenerateSuggestionsResponse], error) {
	return c.generateSuggestions.CallUnary(ctx, req)
}

func (c *meetupServiceClient) ListSuggestions(ctx context.Context, req *connect.Request[api.ListSuggestionsRequest]) (*connect.Response[api.ListSuggestionsResponse], error) {
	return c.listSuggestions.CallUnary(ctx, req)
}

// MeetupServiceHandler is implemented by the friendsmeet.v1.MeetupService server.
type MeetupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	SavePreferences(context.Context, *connect.Request[api.SavePreferencesRequest]) (*connect.Response[api.SavePreferencesResponse], error)
	GetPreferences(context.Context, *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.GetPreferencesResponse], error)
	ListPreferences(context.Context, *connect.Request[api.ListPreferencesRequest]) (*connect.Response[api.ListPreferencesResponse], error)
	GenerateSuggestions(context.Context, *connect.Request[api.GenerateSuggestionsRequest]) (*connect.Response[api.GenerateSuggestionsResponse], error)
	ListSuggestions(context.Context, *connect.Request[api.ListSuggestionsRequest]) (*connect.Response[api.ListSuggestionsResponse], error)
}

// NewMeetupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewMeetupServiceHandler(svc MeetupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	handlers := map[string]http.Handler{
		MeetupServiceCreateGroupProcedure:         connect.NewUnaryHandler(MeetupServiceCreateGroupProcedure, svc.CreateGroup, opts...),
		MeetupServiceGetGroupProcedure:            connect.NewUnaryHandler(MeetupServiceGetGroupProcedure, svc.GetGroup, opts...),
		MeetupServiceListGroupsProcedure:          connect.NewUnaryHandler(MeetupServiceListGroupsProcedure, svc.ListGroups, opts...),
		MeetupServiceDeleteGroupProcedure:         connect.NewUnaryHandler(MeetupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...),
		MeetupServiceAddMemberProcedure:           connect.NewUnaryHandler(MeetupServiceAddMemberProcedure, svc.AddMember, opts...),
		MeetupServiceListMembersProcedure:         connect.NewUnaryHandler(MeetupServiceListMembersProcedure, svc.ListMembers, opts...),
		MeetupServiceSavePreferencesProcedure:     connect.NewUnaryHandler(MeetupServiceSavePreferencesProcedure, svc.SavePreferences, opts...),
		MeetupServiceGetPreferencesProcedure:      connect.NewUnaryHandler(MeetupServiceGetPreferencesProcedure, svc.GetPreferences, opts...),
		MeetupServiceListPreferencesProcedure:     connect.NewUnaryHandler(MeetupServiceListPreferencesProcedure, svc.ListPreferences, opts...),
		MeetupServiceGenerateSuggestionsProcedure: connect.NewUnaryHandler(MeetupServiceGenerateSuggestionsProcedure, svc.GenerateSuggestions, opts...),
		MeetupServiceListSuggestionsProcedure:     connect.NewUnaryHandler(MeetupServiceListSuggestionsProcedure, svc.ListSuggestions, opts...),
	}

	return "/" + MeetupServiceName + "/", route(handlers)
}

// route dispatches on the exact procedure path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}
