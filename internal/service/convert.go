package service

import (
	"github.com/mmynk/brgrr/internal/catalog"
	"github.com/mmynk/brgrr/internal/orderlog"
	"github.com/mmynk/brgrr/internal/pricing"
	"github.com/mmynk/brgrr/internal/session"
	pb "github.com/mmynk/brgrr/pkg/brgrrapi"
)

func toProtoState(s session.State) pb.State {
	out := pb.State{
		SessionID:  s.SessionID,
		User:       s.User,
		Welcome:    s.Welcome,
		BunState:   s.BunState.String(),
		BunLocked:  s.BunLocked,
		CanConfirm: s.CanConfirm,
		Toppings:   s.Toppings,
		Lines:      make([]pb.LineItem, len(s.Quote.Lines)),
		Total:      pricing.FormatPrice(s.Quote.Total),
		Ready:      s.Ready,
		Feedback:   make([]pb.Feedback, len(s.FeedbackList)),
	}
	if s.Bun != nil {
		out.BunID = s.Bun.ID
	}
	if out.Toppings == nil {
		out.Toppings = []string{}
	}
	for i, l := range s.Quote.Lines {
		out.Lines[i] = pb.LineItem{ID: l.ID, Label: l.Label, Price: pricing.FormatPrice(l.Price)}
	}
	for i, f := range s.FeedbackList {
		out.Feedback[i] = pb.Feedback{Field: string(f.Field), Level: string(f.Level), Message: f.Message}
	}
	return out
}

func toProtoSummary(s orderlog.Summary) pb.OrderSummary {
	toppings := s.Toppings
	if toppings == nil {
		toppings = []string{}
	}
	return pb.OrderSummary{
		Customer: s.Customer,
		BunName:  s.BunName,
		Toppings: toppings,
		Total:    s.Total,
		PlacedAt: s.PlacedAt.UnixMilli(),
	}
}

func toProtoCatalog(c *catalog.Catalog) *pb.GetCatalogResponse {
	resp := &pb.GetCatalogResponse{}
	for _, b := range c.Buns() {
		resp.Buns = append(resp.Buns, pb.Bun{ID: b.ID, Name: b.Name, Price: pricing.FormatPrice(b.Price)})
	}
	for _, t := range c.Toppings() {
		resp.Toppings = append(resp.Toppings, pb.Topping{ID: t.ID, Name: t.Name, Price: pricing.FormatPrice(t.Price)})
	}
	return resp
}
