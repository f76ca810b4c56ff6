package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"hotel_listings/internal/app"
	"hotel_listings/internal/storage/images"
)

// maxFieldBytes caps each non-file part of a multipart body.
const maxFieldBytes = 1 << 20

// UploadRule names the only form field allowed to carry files on a route.
type UploadRule struct {
	Field    string
	MaxFiles int // 0 = unlimited
}

type upload struct {
	paths  []string
	values url.Values
}

type uploadKey struct{}

func uploadFrom(ctx context.Context) (*upload, bool) {
	up, ok := ctx.Value(uploadKey{}).(*upload)
	return up, ok
}

type rejection struct {
	status int
	msg    string
	err    error
}

// Uploads streams the file parts of a multipart/form-data request into store
// before next runs. Other content types pass through untouched. A rejected
// request never reaches next and keeps none of its files.
func Uploads(store *images.Store, rule UploadRule, out Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || mt != "multipart/form-data" {
				next.ServeHTTP(w, r)
				return
			}

			up, rej := receive(r, store, rule)
			if rej != nil {
				app.RemoveImages(r.Context(), store, up.paths)
				log.Warn().Err(rej.err).Int("status", rej.status).Str("path", r.URL.Path).Msg("upload rejected")
				out.Fail(w, r, rej.status, rej.msg, rej.err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), uploadKey{}, up)))
		})
	}
}

func receive(r *http.Request, store *images.Store, rule UploadRule) (*upload, *rejection) {
	up := &upload{values: url.Values{}}
	mr, err := r.MultipartReader()
	if err != nil {
		return up, &rejection{http.StatusBadRequest, "Malformed multipart body", err}
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return up, nil
		}
		if err != nil {
			return up, &rejection{http.StatusBadRequest, "Malformed multipart body", err}
		}
		name := part.FormName()

		if part.FileName() == "" {
			b, err := io.ReadAll(io.LimitReader(part, maxFieldBytes+1))
			part.Close()
			if err != nil {
				return up, &rejection{http.StatusBadRequest, "Malformed multipart body", err}
			}
			if len(b) > maxFieldBytes {
				return up, &rejection{http.StatusRequestEntityTooLarge, "Field value too long",
					fmt.Errorf("field %q exceeds %d bytes", name, maxFieldBytes)}
			}
			up.values.Add(name, string(b))
			continue
		}

		if name != rule.Field {
			part.Close()
			return up, &rejection{http.StatusBadRequest, "Unexpected field",
				fmt.Errorf("unexpected file field %q", name)}
		}
		if rule.MaxFiles > 0 && len(up.paths) >= rule.MaxFiles {
			part.Close()
			return up, &rejection{http.StatusBadRequest, "Too many files",
				fmt.Errorf("field %q accepts at most %d file(s)", name, rule.MaxFiles)}
		}

		p, err := store.Save(r.Context(), part.FileName(), part)
		part.Close()
		switch {
		case errors.Is(err, images.ErrTooLarge):
			return up, &rejection{http.StatusRequestEntityTooLarge, "File too large", err}
		case err != nil:
			return up, &rejection{http.StatusInternalServerError, "Error storing file", err}
		}
		up.paths = append(up.paths, p)
	}
}
