// Copyright (C) 2024 Dhrumil Mistry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmdhrumilmistry/chitragupta/shared"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
)

const listCacheSize = 512

type cachedResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// ListCache memoizes filtered list responses. Entries are keyed by path,
// the declared filter parameters, pagination and a per-entity version token,
// so a bump of the token orphans every previously cached page at once
// instead of requiring explicit invalidation.
type ListCache struct {
	store    *lru.Cache[string, cachedResponse]
	versions shared.CacheVersionService
}

func NewListCache(versions shared.CacheVersionService) (*ListCache, error) {
	store, err := lru.New[string, cachedResponse](listCacheSize)
	if err != nil {
		return nil, err
	}
	return &ListCache{store: store, versions: versions}, nil
}

// cacheKey builds the lookup key from the request path and only the filter
// parameters the endpoint declares. Undeclared query parameters never
// fragment the cache.
func (l *ListCache) cacheKey(ctx echo.Context, entityKind string, filterParams []string) string {
	var b strings.Builder
	b.WriteString(ctx.Path())
	for _, name := range filterParams {
		b.WriteString("&")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(ctx.QueryParam(name))
	}
	b.WriteString("&page=")
	b.WriteString(ctx.QueryParam("page"))
	b.WriteString("&pageSize=")
	b.WriteString(ctx.QueryParam("pageSize"))
	b.WriteString("&v=")
	b.WriteString(l.versions.CurrentVersion(entityKind))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Middleware caches successful GET responses for one list endpoint.
func (l *ListCache) Middleware(entityKind string, filterParams ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if ctx.Request().Method != http.MethodGet {
				return next(ctx)
			}

			key := l.cacheKey(ctx, entityKind, filterParams)
			if cached, ok := l.store.Get(key); ok {
				return ctx.Blob(cached.Status, cached.ContentType, cached.Body)
			}

			recorder := &responseRecorder{ResponseWriter: ctx.Response().Writer}
			ctx.Response().Writer = recorder

			if err := next(ctx); err != nil {
				return err
			}

			if ctx.Response().Status == http.StatusOK {
				l.store.Add(key, cachedResponse{
					Status:      ctx.Response().Status,
					ContentType: ctx.Response().Header().Get(echo.HeaderContentType),
					Body:        recorder.body.Bytes(),
				})
				slog.Debug("cached list response", "entityKind", entityKind, "key", key)
			}
			return nil
		}
	}
}

// responseRecorder tees the response body so it can be cached after the
// handler has already streamed it to the client.
type responseRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
