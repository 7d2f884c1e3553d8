package brgrrapi

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// BuilderServiceName is the fully-qualified name of the builder service.
const BuilderServiceName = "brgrr.v1.BuilderService"

// Procedure paths of the builder service.
const (
	BuilderServiceStartSessionProcedure  = "/brgrr.v1.BuilderService/StartSession"
	BuilderServiceGetCatalogProcedure    = "/brgrr.v1.BuilderService/GetCatalog"
	BuilderServiceLoginProcedure         = "/brgrr.v1.BuilderService/Login"
	BuilderServiceGetStateProcedure      = "/brgrr.v1.BuilderService/GetState"
	BuilderServiceSelectBunProcedure     = "/brgrr.v1.BuilderService/SelectBun"
	BuilderServiceClearBunProcedure      = "/brgrr.v1.BuilderService/ClearBun"
	BuilderServiceToggleToppingProcedure = "/brgrr.v1.BuilderService/ToggleTopping"
	BuilderServiceConfirmBunProcedure    = "/brgrr.v1.BuilderService/ConfirmBun"
	BuilderServiceSaveFavoriteProcedure  = "/brgrr.v1.BuilderService/SaveFavorite"
	BuilderServiceApplyFavoriteProcedure = "/brgrr.v1.BuilderService/ApplyFavorite"
	BuilderServiceRepeatLastProcedure    = "/brgrr.v1.BuilderService/RepeatLast"
	BuilderServiceCheckoutProcedure      = "/brgrr.v1.BuilderService/Checkout"
	BuilderServiceListHistoryProcedure   = "/brgrr.v1.BuilderService/ListHistory"
	BuilderServiceEndSessionProcedure    = "/brgrr.v1.BuilderService/EndSession"
)

// PublicProcedures can be called without a session token.
var PublicProcedures = map[string]bool{
	BuilderServiceStartSessionProcedure: true,
	BuilderServiceGetCatalogProcedure:   true,
}

// BuilderServiceHandler is implemented by the server.
type BuilderServiceHandler interface {
	StartSession(context.Context, *connect.Request[StartSessionRequest]) (*connect.Response[StartSessionResponse], error)
	GetCatalog(context.Context, *connect.Request[GetCatalogRequest]) (*connect.Response[GetCatalogResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[StateResponse], error)
	GetState(context.Context, *connect.Request[GetStateRequest]) (*connect.Response[StateResponse], error)
	SelectBun(context.Context, *connect.Request[SelectBunRequest]) (*connect.Response[StateResponse], error)
	ClearBun(context.Context, *connect.Request[ClearBunRequest]) (*connect.Response[StateResponse], error)
	ToggleTopping(context.Context, *connect.Request[ToggleToppingRequest]) (*connect.Response[StateResponse], error)
	ConfirmBun(context.Context, *connect.Request[ConfirmBunRequest]) (*connect.Response[StateResponse], error)
	SaveFavorite(context.Context, *connect.Request[SaveFavoriteRequest]) (*connect.Response[StateResponse], error)
	ApplyFavorite(context.Context, *connect.Request[ApplyFavoriteRequest]) (*connect.Response[StateResponse], error)
	RepeatLast(context.Context, *connect.Request[RepeatLastRequest]) (*connect.Response[StateResponse], error)
	Checkout(context.Context, *connect.Request[CheckoutRequest]) (*connect.Response[CheckoutResponse], error)
	ListHistory(context.Context, *connect.Request[ListHistoryRequest]) (*connect.Response[ListHistoryResponse], error)
	EndSession(context.Context, *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error)
}

// NewBuilderServiceHandler builds an HTTP handler serving every builder
// procedure. It returns the path prefix to mount the handler on.
func NewBuilderServiceHandler(svc BuilderServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	startSessionHandler := connect.NewUnaryHandler(BuilderServiceStartSessionProcedure, svc.StartSession, opts...)
	getCatalogHandler := connect.NewUnaryHandler(BuilderServiceGetCatalogProcedure, svc.GetCatalog, opts...)
	loginHandler := connect.NewUnaryHandler(BuilderServiceLoginProcedure, svc.Login, opts...)
	getStateHandler := connect.NewUnaryHandler(BuilderServiceGetStateProcedure, svc.GetState, opts...)
	selectBunHandler := connect.NewUnaryHandler(BuilderServiceSelectBunProcedure, svc.SelectBun, opts...)
	clearBunHandler := connect.NewUnaryHandler(BuilderServiceClearBunProcedure, svc.ClearBun, opts...)
	toggleToppingHandler := connect.NewUnaryHandler(BuilderServiceToggleToppingProcedure, svc.ToggleTopping, opts...)
	confirmBunHandler := connect.NewUnaryHandler(BuilderServiceConfirmBunProcedure, svc.ConfirmBun, opts...)
	saveFavoriteHandler := connect.NewUnaryHandler(BuilderServiceSaveFavoriteProcedure, svc.SaveFavorite, opts...)
	applyFavoriteHandler := connect.NewUnaryHandler(BuilderServiceApplyFavoriteProcedure, svc.ApplyFavorite, opts...)
	repeatLastHandler := connect.NewUnaryHandler(BuilderServiceRepeatLastProcedure, svc.RepeatLast, opts...)
	checkoutHandler := connect.NewUnaryHandler(BuilderServiceCheckoutProcedure, svc.Checkout, opts...)
	listHistoryHandler := connect.NewUnaryHandler(BuilderServiceListHistoryProcedure, svc.ListHistory, opts...)
	endSessionHandler := connect.NewUnaryHandler(BuilderServiceEndSessionProcedure, svc.EndSession, opts...)

	return "/" + BuilderServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BuilderServiceStartSessionProcedure:
			startSessionHandler.ServeHTTP(w, r)
		case BuilderServiceGetCatalogProcedure:
			getCatalogHandler.ServeHTTP(w, r)
		case BuilderServiceLoginProcedure:
			loginHandler.ServeHTTP(w, r)
		case BuilderServiceGetStateProcedure:
			getStateHandler.ServeHTTP(w, r)
		case BuilderServiceSelectBunProcedure:
			selectBunHandler.ServeHTTP(w, r)
		case BuilderServiceClearBunProcedure:
			clearBunHandler.ServeHTTP(w, r)
		case BuilderServiceToggleToppingProcedure:
			toggleToppingHandler.ServeHTTP(w, r)
		case BuilderServiceConfirmBunProcedure:
			confirmBunHandler.ServeHTTP(w, r)
		case BuilderServiceSaveFavoriteProcedure:
			saveFavoriteHandler.ServeHTTP(w, r)
		case BuilderServiceApplyFavoriteProcedure:
			applyFavoriteHandler.ServeHTTP(w, r)
		case BuilderServiceRepeatLastProcedure:
			repeatLastHandler.ServeHTTP(w, r)
		case BuilderServiceCheckoutProcedure:
			checkoutHandler.ServeHTTP(w, r)
		case BuilderServiceListHistoryProcedure:
			listHistoryHandler.ServeHTTP(w, r)
		case BuilderServiceEndSessionProcedure:
			endSessionHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BuilderServiceClient calls the builder service.
type BuilderServiceClient interface {
	StartSession(context.Context, *connect.Request[StartSessionRequest]) (*connect.Response[StartSessionResponse], error)
	GetCatalog(context.Context, *connect.Request[GetCatalogRequest]) (*connect.Response[GetCatalogResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[StateResponse], error)
	GetState(context.Context, *connect.Request[GetStateRequest]) (*connect.Response[StateResponse], error)
	SelectBun(context.Context, *connect.Request[SelectBunRequest]) (*connect.Response[StateResponse], error)
	ClearBun(context.Context, *connect.Request[ClearBunRequest]) (*connect.Response[StateResponse], error)
	ToggleTopping(context.Context, *connect.Request[ToggleToppingRequest]) (*connect.Response[StateResponse], error)
	ConfirmBun(context.Context, *connect.Request[ConfirmBunRequest]) (*connect.Response[StateResponse], error)
	SaveFavorite(context.Context, *connect.Request[SaveFavoriteRequest]) (*connect.Response[StateResponse], error)
	ApplyFavorite(context.Context, *connect.Request[ApplyFavoriteRequest]) (*connect.Response[StateResponse], error)
	RepeatLast(context.Context, *connect.Request[RepeatLastRequest]) (*connect.Response[StateResponse], error)
	Checkout(context.Context, *connect.Request[CheckoutRequest]) (*connect.Response[CheckoutResponse], error)
	ListHistory(context.Context, *connect.Request[ListHistoryRequest]) (*connect.Response[ListHistoryResponse], error)
	EndSession(context.Context, *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error)
}

type builderServiceClient struct {
	startSession  *connect.Client[StartSessionRequest, StartSessionResponse]
	getCatalog    *connect.Client[GetCatalogRequest, GetCatalogResponse]
	login         *connect.Client[LoginRequest, StateResponse]
	getState      *connect.Client[GetStateRequest, StateResponse]
	selectBun     *connect.Client[SelectBunRequest, StateResponse]
	clearBun      *connect.Client[ClearBunRequest, StateResponse]
	toggleTopping *connect.Client[ToggleToppingRequest, StateResponse]
	confirmBun    *connect.Client[ConfirmBunRequest, StateResponse]
	saveFavorite  *connect.Client[SaveFavoriteRequest, StateResponse]
	applyFavorite *connect.Client[ApplyFavoriteRequest, StateResponse]
	repeatLast    *connect.Client[RepeatLastRequest, StateResponse]
	checkout      *connect.Client[CheckoutRequest, CheckoutResponse]
	listHistory   *connect.Client[ListHistoryRequest, ListHistoryResponse]
	endSession    *connect.Client[EndSessionRequest, EndSessionResponse]
}

// NewBuilderServiceClient creates a client for the service at baseURL.
// Pass connect.WithInterceptors to attach the session token.
func NewBuilderServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BuilderServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &builderServiceClient{
		startSession:  connect.NewClient[StartSessionRequest, StartSessionResponse](httpClient, baseURL+BuilderServiceStartSessionProcedure, opts...),
		getCatalog:    connect.NewClient[GetCatalogRequest, GetCatalogResponse](httpClient, baseURL+BuilderServiceGetCatalogProcedure, opts...),
		login:         connect.NewClient[LoginRequest, StateResponse](httpClient, baseURL+BuilderServiceLoginProcedure, opts...),
		getState:      connect.NewClient[GetStateRequest, StateResponse](httpClient, baseURL+BuilderServiceGetStateProcedure, opts...),
		selectBun:     connect.NewClient[SelectBunRequest, StateResponse](httpClient, baseURL+BuilderServiceSelectBunProcedure, opts...),
		clearBun:      connect.NewClient[ClearBunRequest, StateResponse](httpClient, baseURL+BuilderServiceClearBunProcedure, opts...),
		toggleTopping: connect.NewClient[ToggleToppingRequest, StateResponse](httpClient, baseURL+BuilderServiceToggleToppingProcedure, opts...),
		confirmBun:    connect.NewClient[ConfirmBunRequest, StateResponse](httpClient, baseURL+BuilderServiceConfirmBunProcedure, opts...),
		saveFavorite:  connect.NewClient[SaveFavoriteRequest, StateResponse](httpClient, baseURL+BuilderServiceSaveFavoriteProcedure, opts...),
		applyFavorite: connect.NewClient[ApplyFavoriteRequest, StateResponse](httpClient, baseURL+BuilderServiceApplyFavoriteProcedure, opts...),
		repeatLast:    connect.NewClient[RepeatLastRequest, StateResponse](httpClient, baseURL+BuilderServiceRepeatLastProcedure, opts...),
		checkout:      connect.NewClient[CheckoutRequest, CheckoutResponse](httpClient, baseURL+BuilderServiceCheckoutProcedure, opts...),
		listHistory:   connect.NewClient[ListHistoryRequest, ListHistoryResponse](httpClient, baseURL+BuilderServiceListHistoryProcedure, opts...),
		endSession:    connect.NewClient[EndSessionRequest, EndSessionResponse](httpClient, baseURL+BuilderServiceEndSessionProcedure, opts...),
	}
}

func (c *builderServiceClient) StartSession(ctx context.Context, req *connect.Request[StartSessionRequest]) (*connect.Response[StartSessionResponse], error) {
	return c.startSession.CallUnary(ctx, req)
}

func (c *builderServiceClient) GetCatalog(ctx context.Context, req *connect.Request[GetCatalogRequest]) (*connect.Response[GetCatalogResponse], error) {
	return c.getCatalog.CallUnary(ctx, req)
}

func (c *builderServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[StateResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *builderServiceClient) GetState(ctx context.Context, req *connect.Request[GetStateRequest]) (*connect.Response[StateResponse], error) {
	return c.getState.CallUnary(ctx, req)
}

func (c *builderServiceClient) SelectBun(ctx context.Context, req *connect.Request[SelectBunRequest]) (*connect.Response[StateResponse], error) {
	return c.selectBun.CallUnary(ctx, req)
}

func (c *builderServiceClient) ClearBun(ctx context.Context, req *connect.Request[ClearBunRequest]) (*connect.Response[StateResponse], error) {
	return c.clearBun.CallUnary(ctx, req)
}

func (c *builderServiceClient) ToggleTopping(ctx context.Context, req *connect.Request[ToggleToppingRequest]) (*connect.Response[StateResponse], error) {
	return c.toggleTopping.CallUnary(ctx, req)
}

func (c *builderServiceClient) ConfirmBun(ctx context.Context, req *connect.Request[ConfirmBunRequest]) (*connect.Response[StateResponse], error) {
	return c.confirmBun.CallUnary(ctx, req)
}

func (c *builderServiceClient) SaveFavorite(ctx context.Context, req *connect.Request[SaveFavoriteRequest]) (*connect.Response[StateResponse], error) {
	return c.saveFavorite.CallUnary(ctx, req)
}

func (c *builderServiceClient) ApplyFavorite(ctx context.Context, req *connect.Request[ApplyFavoriteRequest]) (*connect.Response[StateResponse], error) {
	return c.applyFavorite.CallUnary(ctx, req)
}

func (c *builderServiceClient) RepeatLast(ctx context.Context, req *connect.Request[RepeatLastRequest]) (*connect.Response[StateResponse], error) {
	return c.repeatLast.CallUnary(ctx, req)
}

func (c *builderServiceClient) Checkout(ctx context.Context, req *connect.Request[CheckoutRequest]) (*connect.Response[CheckoutResponse], error) {
	return c.checkout.CallUnary(ctx, req)
}

func (c *builderServiceClient) ListHistory(ctx context.Context, req *connect.Request[ListHistoryRequest]) (*connect.Response[ListHistoryResponse], error) {
	return c.listHistory.CallUnary(ctx, req)
}

func (c *builderServiceClient) EndSession(ctx context.Context, req *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error) {
	return c.endSession.CallUnary(ctx, req)
}
