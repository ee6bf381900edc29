// internal/app/features/organizations/list.go
package organizations

import (
	"context"
	"net/http"
	"regexp"
	"strconv"

	"github.com/dalemusser/orghub/internal/app/system/httpjson"
	"github.com/dalemusser/orghub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const defaultPageSize = 50

// ServeList handles GET /organizations. Supports ?q= name prefix
// search, ?limit= and ?offset=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if q := r.URL.Query().Get("q"); q != "" {
		folded := regexp.QuoteMeta(text.Fold(q))
		filter["name_ci"] = bson.M{"$regex": primitive.Regex{Pattern: "^" + folded}}
	}

	limit := parseIntParam(r, "limit", defaultPageSize)
	offset := parseIntParam(r, "offset", 0)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := options.Find().
		SetSort(bson.M{"name_ci": 1}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	orgs, err := h.Orgs.Find(ctx, filter, opts)
	if err != nil {
		h.Log.Error("organization list failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}
	total, err := h.Orgs.Count(ctx, filter)
	if err != nil {
		h.Log.Error("organization count failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.OK(w, map[string]any{
		"organizations": orgs,
		"total":         total,
	})
}

func parseIntParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	if name == "limit" && (n == 0 || n > 500) {
		return def
	}
	return n
}
