package handler

import (
	"context"

	"logotherapy-booking/internal/rpc"
)

func (h *Handler) DailyQuote(ctx context.Context, _ *rpc.Empty) (*rpc.Quote, error) {
	q := h.content.DailyQuote(ctx)
	return &rpc.Quote{Text: q.Text, Author: q.Author}, nil
}

func (h *Handler) Articles(ctx context.Context, req *rpc.ArticlesRequest) (*rpc.ArticlesResponse, error) {
	page, err := h.content.ArticlesPage(ctx, int(req.Page), int(req.Limit))
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	out := &rpc.ArticlesResponse{Items: make([]*rpc.Article, 0, len(page.Items)), Total: int32(page.Total)}
	for _, a := range page.Items {
		out.Items = append(out.Items, &rpc.Article{Title: a.Title, Body: a.Body})
	}
	return out, nil
}
