// internal/app/features/users/list.go
package users

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

// ServeList handles GET /users (admin only). Supports ?q= name/email
// prefix search, ?limit= and ?offset=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if q := r.URL.Query().Get("q"); q != "" {
		folded := regexp.QuoteMeta(text.Fold(q))
		filter["$or"] = bson.A{
			bson.M{"full_name_ci": bson.M{"$regex": primitive.Regex{Pattern: "^" + folded}}},
			bson.M{"email_ci": bson.M{"$regex": primitive.Regex{Pattern: "^" + folded}}},
		}
	}

	limit := parseIntParam(r, "limit", defaultPageSize)
	offset := parseIntParam(r, "offset", 0)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := options.Find().
		SetSort(bson.M{"full_name_ci": 1}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	users, err := h.Users.Find(ctx, filter, opts)
	if err != nil {
		h.Log.Error("user list failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}
	total, err := h.Users.Count(ctx, filter)
	if err != nil {
		h.Log.Error("user count failed", zap.Error(err))
		httpjson.ServerError(w)
		return
	}

	httpjson.OK(w, map[string]any{
		"users": users,
		"total": total,
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
