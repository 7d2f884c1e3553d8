package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/brgrr/internal/auth"
	"github.com/mmynk/brgrr/internal/middleware"
	"github.com/mmynk/brgrr/internal/session"
	pb "github.com/mmynk/brgrr/pkg/brgrrapi"
)

// Ensure BuilderService implements the Connect handler interface
var _ pb.BuilderServiceHandler = (*BuilderService)(nil)

// BuilderService implements the Connect BuilderService
type BuilderService struct {
	sessions   *session.Manager
	jwtManager *auth.JWTManager
}

// NewBuilderService creates a new BuilderService backed by the given session manager.
func NewBuilderService(sessions *session.Manager, jwtManager *auth.JWTManager) *BuilderService {
	return &BuilderService{sessions: sessions, jwtManager: jwtManager}
}

// controller resolves the session bound to the request's token.
func (s *BuilderService) controller(ctx context.Context) (*session.Controller, error) {
	sessionID := middleware.GetSessionID(ctx)
	if sessionID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	ctrl, err := s.sessions.Get(ctx, sessionID, middleware.GetDeviceID(ctx))
	if errors.Is(err, session.ErrSessionEnded) {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	if errors.Is(err, session.ErrDeviceMismatch) {
		return nil, connect.NewError(connect.CodePermissionDenied, err)
	}
	if err != nil {
		slog.Error("Failed to load session", "session_id", sessionID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return ctrl, nil
}

// operationError converts a controller error for the wire. A session ended
// while the call waited is unauthenticated; anything else is a storage fault.
func operationError(op string, ctrl *session.Controller, err error) error {
	if errors.Is(err, session.ErrSessionEnded) {
		return connect.NewError(connect.CodeUnauthenticated, err)
	}
	slog.Error(op+" failed", "session_id", ctrl.ID(), "error", err)
	return connect.NewError(connect.CodeInternal, fmt.Errorf("%s: %w", op, err))
}

func stateResponse(state session.State) *connect.Response[pb.StateResponse] {
	return connect.NewResponse(&pb.StateResponse{State: toProtoState(state)})
}

// StartSession opens a tab session and returns its token.
func (s *BuilderService) StartSession(ctx context.Context, req *connect.Request[pb.StartSessionRequest]) (*connect.Response[pb.StartSessionResponse], error) {
	ctrl := s.sessions.Start(req.Msg.DeviceID)

	token, err := s.jwtManager.Generate(ctrl.ID(), ctrl.DeviceID())
	if err != nil {
		slog.Error("Failed to generate token", "session_id", ctrl.ID(), "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&pb.StartSessionResponse{
		Token:    token,
		DeviceID: ctrl.DeviceID(),
		State:    toProtoState(ctrl.State()),
	}), nil
}

// GetCatalog returns the menu.
func (s *BuilderService) GetCatalog(ctx context.Context, req *connect.Request[pb.GetCatalogRequest]) (*connect.Response[pb.GetCatalogResponse], error) {
	return connect.NewResponse(toProtoCatalog(s.sessions.Catalog())), nil
}

// Login sets the session identity.
func (s *BuilderService) Login(ctx context.Context, req *connect.Request[pb.LoginRequest]) (*connect.Response[pb.StateResponse], error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	state, err := ctrl.Login(ctx, req.Msg.Name)
	if err != nil {
		return nil, operationError("Login", ctrl, err)
	}
	if state.User != nil {
		slog.Info("User logged in", "session_id", ctrl.ID(), "name", *state.User)
	}
	return stateResponse(state), nil
}

// GetState returns the current builder state.
func (s *BuilderService) GetState(ctx context.Context, req *connect.Request[pb.GetStateRequest]) (*connect.Response[pb.StateResponse], error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	return stateResponse(ctrl.State()), nil
}

// SelectBun chooses a bun.
func (s *BuilderService) SelectBun(ctx context.Context, req *connect.Request[pb.SelectBunRequest]) (*connect.Response[pb.StateResponse], error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("SelectBun", "session_id", ctrl.ID(), "bun_id", req.Msg.BunID)
	return stateResponse(ctrl.SelectBun(req.Msg.BunID)), nil
}

// ClearBun resets the bun selection.
func (s *BuilderService) ClearBun(ctx context.Context, req *connect.Request[pb.ClearBunRequest]) (*connect.Response[pb.StateResponse], error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	return stateResponse(ctrl.ClearBun()), nil
}

// ToggleTopping adds or removes a topping.
func (s *BuilderService) ToggleTopping(ctx context.Context, req *connect.Request[pb.ToggleToppingRequest]) (*connect.Response[pb.StateResponse], error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("ToggleTopping", "session_id", ctrl.ID(), "topping_id", req.Msg.ToppingID)
	return stateResponse(ctrl.ToggleTopping(req.Msg.ToppingID)), nil
}

// ConfirmBun locks the bun.
func (s *BuilderService) ConfirmBun(ctx context.Context, req *connect.Request[pb.ConfirmBunRequest]) (*connect.Response[pb.StateResponse], error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	return stateResponse(ctrl.ConfirmBun()), nil
}

// SaveFavorite stores the current selection as the device favorite.
func (s *BuilderService) SaveFavorite(ctx context.Context, req *connect.Request[pb.SaveFavoriteRequest]) (*connect.Response[pb.StateResponse], error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	state, err := ctrl.SaveFavorite(ctx)
	if err != nil {
		return nil, operationError("SaveFavorite", ctrl, err)
	}
	return stateResponse(state), nil
}

// ApplyFavorite loads the device favorite into the draft.
func (s *BuilderService) ApplyFavorite(ctx context.Context, req *connect.Request[pb.ApplyFavoriteRequest]) (*connect.Response[pb.StateResponse], error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	state, err := ctrl.ApplyFavorite(ctx)
	if err != nil {
		return nil, operationError("ApplyFavorite", ctrl, err)
	}
	return stateResponse(state), nil
}

// RepeatLast loads the session's last order into the draft.
func (s *BuilderService) RepeatLast(ctx context.Context, req *connect.Request[pb.RepeatLastRequest]) (*connect.Response[pb.StateResponse], error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	state, err := ctrl.RepeatLast(ctx)
	if err != nil {
		return nil, operationError("RepeatLast", ctrl, err)
	}
	return stateResponse(state), nil
}

// Checkout places the current draft.
func (s *BuilderService) Checkout(ctx context.Context, req *connect.Request[pb.CheckoutRequest]) (*connect.Response[pb.CheckoutResponse], error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	res, err := ctrl.Checkout(ctx)
	if err != nil {
		return nil, operationError("Checkout", ctrl, err)
	}

	resp := &pb.CheckoutResponse{State: toProtoState(res.State)}
	if res.Summary != nil {
		summary := toProtoSummary(*res.Summary)
		resp.Order = &summary
	}
	return connect.NewResponse(resp), nil
}

// ListHistory returns the session's orders, newest first.
func (s *BuilderService) ListHistory(ctx context.Context, req *connect.Request[pb.ListHistoryRequest]) (*connect.Response[pb.ListHistoryResponse], error) {
	ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	summaries, err := ctrl.History(ctx)
	if err != nil {
		return nil, operationError("ListHistory", ctrl, err)
	}

	orders := make([]pb.OrderSummary, len(summaries))
	for i, sum := range summaries {
		orders[i] = toProtoSummary(sum)
	}
	return connect.NewResponse(&pb.ListHistoryResponse{Orders: orders}), nil
}

// EndSession closes the tab session and drops its session-scoped data.
func (s *BuilderService) EndSession(ctx context.Context, req *connect.Request[pb.EndSessionRequest]) (*connect.Response[pb.EndSessionResponse], error) {
	sessionID := middleware.GetSessionID(ctx)
	if sessionID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	err := s.sessions.End(ctx, sessionID, middleware.GetDeviceID(ctx))
	if errors.Is(err, session.ErrDeviceMismatch) {
		return nil, connect.NewError(connect.CodePermissionDenied, err)
	}
	if err != nil {
		slog.Error("EndSession failed", "session_id", sessionID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&pb.EndSessionResponse{}), nil
}
